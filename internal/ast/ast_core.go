package ast

import (
	"sort"

	"github.com/funvibe/godel/internal/typesystem"
)

// Node is the base interface for all typed logical-expression nodes.
//
// Nodes are immutable values: transformations such as WithMetadata or
// Substitute return new nodes and share unchanged children.
type Node interface {
	// Type is the type attached at construction.
	Type() typesystem.Type
	Metadata() Metadata
	// WithMetadata returns a copy of the node with key set; children are shared.
	WithMetadata(key string, value any) Node
	Accept(v Visitor)
	// Children lists direct sub-nodes in source order.
	Children() []Node
	// String renders the node in surface syntax the parser accepts.
	String() string
	node()
}

// Visitor dispatches on the eight node kinds.
type Visitor interface {
	VisitConstant(n *Constant)
	VisitVariable(n *Variable)
	VisitApplication(n *Application)
	VisitQuantifier(n *Quantifier)
	VisitConnective(n *Connective)
	VisitModalOp(n *ModalOp)
	VisitLambda(n *Lambda)
	VisitDefinition(n *Definition)
}

// Metadata is an immutable key/value map attached to a node.
// The zero value is an empty map.
type Metadata struct {
	entries map[string]any
}

// NewMetadata builds metadata from a plain map, copying it.
func NewMetadata(entries map[string]any) Metadata {
	if len(entries) == 0 {
		return Metadata{}
	}
	m := make(map[string]any, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Metadata{entries: m}
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Len is the number of entries.
func (m Metadata) Len() int { return len(m.entries) }

// Keys returns the keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns new metadata with key set. The receiver is left untouched.
func (m Metadata) With(key string, value any) Metadata {
	next := make(map[string]any, len(m.entries)+1)
	for k, v := range m.entries {
		next[k] = v
	}
	next[key] = value
	return Metadata{entries: next}
}

// QuantifierKind distinguishes universal and existential binders.
type QuantifierKind string

const (
	Forall QuantifierKind = "FORALL"
	Exists QuantifierKind = "EXISTS"
)

// ConnectiveKind is a propositional connective.
type ConnectiveKind string

const (
	And     ConnectiveKind = "AND"
	Or      ConnectiveKind = "OR"
	Not     ConnectiveKind = "NOT"
	Implies ConnectiveKind = "IMPLIES"
	Equiv   ConnectiveKind = "EQUIV"
)

// ModalOperator qualifies a proposition epistemically, alethically,
// probabilistically or defeasibly.
type ModalOperator string

const (
	Knows       ModalOperator = "KNOWS"
	Believes    ModalOperator = "BELIEVES"
	Possible    ModalOperator = "POSSIBLE"
	Necessary   ModalOperator = "NECESSARY"
	Probability ModalOperator = "PROBABILITY"
	Defeasible  ModalOperator = "DEFEASIBLE"
)

// IsEpistemic reports whether the operator's qualifier must be an agent.
func (op ModalOperator) IsEpistemic() bool {
	return op == Knows || op == Believes
}
