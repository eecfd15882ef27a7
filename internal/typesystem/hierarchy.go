package typesystem

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// Graph is the subtype hierarchy: nodes are atomic or instantiated parametric
// types, edges are direct is-a facts. Each node keeps the transitive closure of
// its ancestors so reachability is a set lookup.
//
// Graph is not synchronized; the owner serializes writes.
type Graph struct {
	nodes     map[string]Type
	parents   map[string]*set.Set[string]
	ancestors map[string]*set.Set[string]
}

// NewGraph returns an empty hierarchy.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]Type),
		parents:   make(map[string]*set.Set[string]),
		ancestors: make(map[string]*set.Set[string]),
	}
}

// AddNode registers t without edges. Adding an existing node is a no-op.
func (g *Graph) AddNode(t Type) {
	key := t.Key()
	if _, ok := g.nodes[key]; ok {
		return
	}
	g.nodes[key] = t
	g.parents[key] = set.New[string](0)
	g.ancestors[key] = set.New[string](0)
}

// HasNode reports whether t is in the graph.
func (g *Graph) HasNode(t Type) bool {
	_, ok := g.nodes[t.Key()]
	return ok
}

// AddEdge records sub <: super, adding missing nodes, and extends the closure of
// every node that already reaches sub.
func (g *Graph) AddEdge(sub, super Type) {
	g.AddNode(sub)
	g.AddNode(super)
	subKey, superKey := sub.Key(), super.Key()
	if !g.parents[subKey].Insert(superKey) {
		return
	}

	gained := set.New[string](g.ancestors[superKey].Size() + 1)
	gained.Insert(superKey)
	gained.InsertSet(g.ancestors[superKey])

	for key, anc := range g.ancestors {
		if key == subKey || anc.Contains(subKey) {
			anc.InsertSet(gained)
		}
	}
}

// Reachable reports whether a path of zero or more edges leads from sub to super.
func (g *Graph) Reachable(sub, super Type) bool {
	subKey, superKey := sub.Key(), super.Key()
	if subKey == superKey {
		return true
	}
	anc, ok := g.ancestors[subKey]
	return ok && anc.Contains(superKey)
}

// Parents returns the direct supertypes of t, sorted by key.
func (g *Graph) Parents(t Type) []Type {
	return g.resolve(g.parents[t.Key()])
}

// Ancestors returns every proper supertype of t, sorted by key.
func (g *Graph) Ancestors(t Type) []Type {
	return g.resolve(g.ancestors[t.Key()])
}

// Nodes returns all types in the graph, sorted by key.
func (g *Graph) Nodes() []Type {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Type, len(keys))
	for i, k := range keys {
		out[i] = g.nodes[k]
	}
	return out
}

func (g *Graph) resolve(keys *set.Set[string]) []Type {
	if keys == nil || keys.Empty() {
		return nil
	}
	sorted := keys.Slice()
	sort.Strings(sorted)
	out := make([]Type, len(sorted))
	for i, k := range sorted {
		out[i] = g.nodes[k]
	}
	return out
}
