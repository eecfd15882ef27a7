package ast

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

// VarRef identifies a variable by surface name and session id.
type VarRef struct {
	Name string
	ID   int
}

func (r VarRef) String() string { return fmt.Sprintf("?%s#%d", r.Name, r.ID) }

// Substitution maps variables to replacement terms.
type Substitution map[VarRef]Node

// Bind adds v -> n and returns the substitution for chaining.
func (s Substitution) Bind(v *Variable, n Node) Substitution {
	s[v.Ref()] = n
	return s
}

// Substitute replaces free occurrences of the mapped variables in n.
//
// Substitution is capture-avoiding. A binder whose variable shares a name with
// a free variable of some replacement term is alpha-renamed first: the bound
// variable gets a fresh id, one past the largest id seen in n and in every
// replacement, and the name "<name>_<id>".
func Substitute(n Node, sub Substitution) Node {
	if n == nil || len(sub) == 0 {
		return n
	}
	next := MaxVarID(n)
	for ref, r := range sub {
		next = max(next, ref.ID, MaxVarID(r))
	}
	s := &substituter{next: next + 1}
	return s.apply(n, sub)
}

type substituter struct {
	next int
}

func (s *substituter) fresh(v *Variable) *Variable {
	id := s.next
	s.next++
	return &Variable{Name: fmt.Sprintf("%s_%d", v.Name, id), ID: id, typ: v.typ, meta: v.meta}
}

func (s *substituter) apply(n Node, sub Substitution) Node {
	switch n := n.(type) {
	case *Variable:
		if r, ok := sub[n.Ref()]; ok {
			return r
		}
		return n

	case *Application:
		op := s.apply(n.Operator, sub)
		args, changed := s.applyAll(n.Args, sub)
		if !changed && op == n.Operator {
			return n
		}
		c := *n
		c.Operator, c.Args = op, args
		return &c

	case *Quantifier:
		vars, scope := s.binder(n.Vars, n.Scope, sub)
		if scope == n.Scope {
			return n
		}
		c := *n
		c.Vars, c.Scope = vars, scope
		return &c

	case *Lambda:
		vars, body := s.binder(n.Vars, n.Body, sub)
		if body == n.Body {
			return n
		}
		c := *n
		c.Vars, c.Body = vars, body
		return &c

	case *Connective:
		ops, changed := s.applyAll(n.Operands, sub)
		if !changed {
			return n
		}
		c := *n
		c.Operands = ops
		return &c

	case *ModalOp:
		prop := s.apply(n.Proposition, sub)
		var agent Node
		if n.AgentOrWorld != nil {
			agent = s.apply(n.AgentOrWorld, sub)
		}
		if prop == n.Proposition && agent == n.AgentOrWorld {
			return n
		}
		c := *n
		c.Proposition, c.AgentOrWorld = prop, agent
		return &c

	case *Definition:
		body := s.apply(n.Body, sub)
		if body == n.Body {
			return n
		}
		c := *n
		c.Body = body
		return &c
	}
	return n
}

func (s *substituter) applyAll(nodes []Node, sub Substitution) ([]Node, bool) {
	out := make([]Node, len(nodes))
	changed := false
	for i, c := range nodes {
		out[i] = s.apply(c, sub)
		changed = changed || out[i] != c
	}
	return out, changed
}

// binder substitutes into the body of a quantifier or lambda. Mappings for the
// bound variables are dropped, then colliding binders are renamed.
func (s *substituter) binder(vars []*Variable, body Node, sub Substitution) ([]*Variable, Node) {
	inner := make(Substitution, len(sub))
	for ref, r := range sub {
		inner[ref] = r
	}
	for _, v := range vars {
		delete(inner, v.Ref())
	}
	for ref := range inner {
		if !containsRef(body, ref) {
			delete(inner, ref)
		}
	}
	if len(inner) == 0 {
		return vars, body
	}

	captured := set.New[string](0)
	for _, r := range inner {
		for _, fv := range FreeVariables(r) {
			captured.Insert(fv.Name)
		}
	}

	renaming := Substitution{}
	out := make([]*Variable, len(vars))
	for i, v := range vars {
		out[i] = v
		if captured.Contains(v.Name) {
			out[i] = s.fresh(v)
			renaming[v.Ref()] = out[i]
		}
	}
	if len(renaming) > 0 {
		body = s.apply(body, renaming)
	}
	return out, s.apply(body, inner)
}

// ContainsVariable reports whether v occurs free in n. An occurrence under a
// binder of the same variable does not count.
func ContainsVariable(n Node, v *Variable) bool {
	if n == nil || v == nil {
		return false
	}
	return containsRef(n, v.Ref())
}

func containsRef(n Node, ref VarRef) bool {
	switch n := n.(type) {
	case *Variable:
		return n.Ref() == ref
	case *Quantifier:
		return !bindsRef(n.Vars, ref) && containsRef(n.Scope, ref)
	case *Lambda:
		return !bindsRef(n.Vars, ref) && containsRef(n.Body, ref)
	case nil:
		return false
	}
	for _, c := range n.Children() {
		if containsRef(c, ref) {
			return true
		}
	}
	return false
}

func bindsRef(vars []*Variable, ref VarRef) bool {
	for _, v := range vars {
		if v.Ref() == ref {
			return true
		}
	}
	return false
}

// FreeVariables lists the free variables of n in order of first occurrence.
func FreeVariables(n Node) []*Variable {
	var out []*Variable
	seen := set.New[VarRef](0)
	collectFree(n, set.New[VarRef](0), seen, &out)
	return out
}

func collectFree(n Node, bound, seen *set.Set[VarRef], out *[]*Variable) {
	switch n := n.(type) {
	case nil:
		return
	case *Variable:
		ref := n.Ref()
		if !bound.Contains(ref) && seen.Insert(ref) {
			*out = append(*out, n)
		}
		return
	case *Quantifier:
		collectFree(n.Scope, withBound(bound, n.Vars), seen, out)
		return
	case *Lambda:
		collectFree(n.Body, withBound(bound, n.Vars), seen, out)
		return
	}
	for _, c := range n.Children() {
		collectFree(c, bound, seen, out)
	}
}

func withBound(bound *set.Set[VarRef], vars []*Variable) *set.Set[VarRef] {
	next := bound.Copy()
	for _, v := range vars {
		next.Insert(v.Ref())
	}
	return next
}

// MaxVarID is the largest variable id anywhere in n, bound or free, or 0.
func MaxVarID(n Node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case *Variable:
		return n.ID
	}
	m := 0
	for _, c := range n.Children() {
		m = max(m, MaxVarID(c))
	}
	return m
}
