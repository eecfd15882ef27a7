package ast

import (
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/typesystem"
)

// Constant is a named individual, predicate symbol or literal.
// Value holds the literal payload (int64, float64, string or bool) when the
// constant came from a literal, and nil otherwise.
type Constant struct {
	Name  string
	Value any
	typ   typesystem.Type
	meta  Metadata
}

// NewConstant creates a constant of type typ.
func NewConstant(name string, typ typesystem.Type, value any) *Constant {
	return &Constant{Name: name, Value: value, typ: typ}
}

func (n *Constant) node()                 {}
func (n *Constant) Type() typesystem.Type { return n.typ }
func (n *Constant) Metadata() Metadata    { return n.meta }
func (n *Constant) Accept(v Visitor)      { v.VisitConstant(n) }
func (n *Constant) Children() []Node      { return nil }
func (n *Constant) String() string        { return Format(n) }
func (n *Constant) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Variable is a logical variable. ID is unique within one parse session and
// distinguishes variables that share a surface name.
type Variable struct {
	Name string
	ID   int
	typ  typesystem.Type
	meta Metadata
}

// NewVariable creates a variable with the given session-unique id.
func NewVariable(name string, id int, typ typesystem.Type) *Variable {
	return &Variable{Name: name, ID: id, typ: typ}
}

func (n *Variable) node()                 {}
func (n *Variable) Type() typesystem.Type { return n.typ }
func (n *Variable) Metadata() Metadata    { return n.meta }
func (n *Variable) Accept(v Visitor)      { v.VisitVariable(n) }
func (n *Variable) Children() []Node      { return nil }
func (n *Variable) String() string        { return Format(n) }
func (n *Variable) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Ref identifies the variable for substitution and scoping.
func (n *Variable) Ref() VarRef { return VarRef{Name: n.Name, ID: n.ID} }

// Application applies an operator to ordered arguments.
type Application struct {
	Operator Node
	Args     []Node
	typ      typesystem.Type
	meta     Metadata
}

// NewApplication creates operator(args...) with result type typ.
func NewApplication(operator Node, args []Node, typ typesystem.Type) *Application {
	return &Application{Operator: operator, Args: append([]Node(nil), args...), typ: typ}
}

func (n *Application) node()                 {}
func (n *Application) Type() typesystem.Type { return n.typ }
func (n *Application) Metadata() Metadata    { return n.meta }
func (n *Application) Accept(v Visitor)      { v.VisitApplication(n) }
func (n *Application) String() string        { return Format(n) }
func (n *Application) Children() []Node {
	return append([]Node{n.Operator}, n.Args...)
}
func (n *Application) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Quantifier binds Vars over Scope.
type Quantifier struct {
	Kind  QuantifierKind
	Vars  []*Variable
	Scope Node
	typ   typesystem.Type
	meta  Metadata
}

// NewQuantifier creates a FORALL or EXISTS node.
func NewQuantifier(kind QuantifierKind, vars []*Variable, scope Node, typ typesystem.Type) *Quantifier {
	return &Quantifier{Kind: kind, Vars: append([]*Variable(nil), vars...), Scope: scope, typ: typ}
}

func (n *Quantifier) node()                 {}
func (n *Quantifier) Type() typesystem.Type { return n.typ }
func (n *Quantifier) Metadata() Metadata    { return n.meta }
func (n *Quantifier) Accept(v Visitor)      { v.VisitQuantifier(n) }
func (n *Quantifier) String() string        { return Format(n) }
func (n *Quantifier) Children() []Node {
	return append(varNodes(n.Vars), n.Scope)
}
func (n *Quantifier) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Connective combines propositions. NOT has exactly one operand.
type Connective struct {
	Kind     ConnectiveKind
	Operands []Node
	typ      typesystem.Type
	meta     Metadata
}

// NewConnective creates a connective over operands.
func NewConnective(kind ConnectiveKind, operands []Node, typ typesystem.Type) *Connective {
	return &Connective{Kind: kind, Operands: append([]Node(nil), operands...), typ: typ}
}

func (n *Connective) node()                 {}
func (n *Connective) Type() typesystem.Type { return n.typ }
func (n *Connective) Metadata() Metadata    { return n.meta }
func (n *Connective) Accept(v Visitor)      { v.VisitConnective(n) }
func (n *Connective) Children() []Node      { return n.Operands }
func (n *Connective) String() string        { return Format(n) }
func (n *Connective) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// ModalOp wraps a proposition with a modal operator. AgentOrWorld is nil when
// the operator carries no agent or world qualifier.
type ModalOp struct {
	Operator     ModalOperator
	Proposition  Node
	AgentOrWorld Node
	typ          typesystem.Type
	meta         Metadata
}

// NewModalOp creates a modal node; agentOrWorld may be nil and meta may be empty.
func NewModalOp(op ModalOperator, proposition Node, typ typesystem.Type, agentOrWorld Node, meta Metadata) *ModalOp {
	return &ModalOp{Operator: op, Proposition: proposition, AgentOrWorld: agentOrWorld, typ: typ, meta: meta}
}

func (n *ModalOp) node()                 {}
func (n *ModalOp) Type() typesystem.Type { return n.typ }
func (n *ModalOp) Metadata() Metadata    { return n.meta }
func (n *ModalOp) Accept(v Visitor)      { v.VisitModalOp(n) }
func (n *ModalOp) String() string        { return Format(n) }
func (n *ModalOp) Children() []Node {
	if n.AgentOrWorld == nil {
		return []Node{n.Proposition}
	}
	return []Node{n.AgentOrWorld, n.Proposition}
}
func (n *ModalOp) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Probability returns the value of prob[v]. It is part of the formula, so
// unlike other metadata it takes part in Equal and Key.
func (n *ModalOp) Probability() (float64, bool) {
	if n.Operator != Probability {
		return 0, false
	}
	v, ok := n.meta.Get(config.MetaProbability)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Lambda abstracts Body over Vars.
type Lambda struct {
	Vars []*Variable
	Body Node
	typ  typesystem.Type
	meta Metadata
}

// NewLambda creates a lambda abstraction.
func NewLambda(vars []*Variable, body Node, typ typesystem.Type) *Lambda {
	return &Lambda{Vars: append([]*Variable(nil), vars...), Body: body, typ: typ}
}

func (n *Lambda) node()                 {}
func (n *Lambda) Type() typesystem.Type { return n.typ }
func (n *Lambda) Metadata() Metadata    { return n.meta }
func (n *Lambda) Accept(v Visitor)      { v.VisitLambda(n) }
func (n *Lambda) String() string        { return Format(n) }
func (n *Lambda) Children() []Node {
	return append(varNodes(n.Vars), n.Body)
}
func (n *Lambda) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

// Definition introduces Symbol with declared SymbolType and defining Body.
type Definition struct {
	Symbol     string
	SymbolType typesystem.Type
	Body       Node
	typ        typesystem.Type
	meta       Metadata
}

// NewDefinition creates a definition node.
func NewDefinition(symbol string, symbolType typesystem.Type, body Node, typ typesystem.Type) *Definition {
	return &Definition{Symbol: symbol, SymbolType: symbolType, Body: body, typ: typ}
}

func (n *Definition) node()                 {}
func (n *Definition) Type() typesystem.Type { return n.typ }
func (n *Definition) Metadata() Metadata    { return n.meta }
func (n *Definition) Accept(v Visitor)      { v.VisitDefinition(n) }
func (n *Definition) Children() []Node      { return []Node{n.Body} }
func (n *Definition) String() string        { return Format(n) }
func (n *Definition) WithMetadata(key string, value any) Node {
	c := *n
	c.meta = n.meta.With(key, value)
	return &c
}

func varNodes(vars []*Variable) []Node {
	out := make([]Node, len(vars), len(vars)+1)
	for i, v := range vars {
		out[i] = v
	}
	return out
}
