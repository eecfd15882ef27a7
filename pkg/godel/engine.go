// Package godel is the embedding API of the logic front end.
//
// An Engine owns a type system. Formulas are parsed against it, and their
// types are inferred and checked against its hierarchy:
//
//	e := godel.New()
//	_ = e.DefineSignature("Human", "(Entity) -> Boolean")
//	node, diags, err := e.Parse("forall ?x. Human(?x) implies Mortal(?x)")
//	t, diags := e.Infer(node)
//
// An Engine is safe for concurrent use. Registration blocks queries while it
// runs, so register types and signatures before parsing where possible.
package godel

import (
	"github.com/funvibe/godel/internal/analyzer"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/lexer"
	"github.com/funvibe/godel/internal/ontology"
	"github.com/funvibe/godel/internal/parser"
	"github.com/funvibe/godel/internal/pipeline"
	"github.com/funvibe/godel/internal/symbols"
)

// Engine wraps a type system and parses and analyzes formulas against it.
type Engine struct {
	types *symbols.TypeSystem
}

// New returns an engine holding only the built-in types.
func New() *Engine {
	return &Engine{types: symbols.New()}
}

// NewWithTypes returns an engine over an existing type system.
func NewWithTypes(ts *TypeSystem) *Engine {
	return &Engine{types: ts}
}

// Types exposes the underlying type system.
func (e *Engine) Types() *TypeSystem { return e.types }

// DefineType registers an atomic type with its direct supertypes.
func (e *Engine) DefineType(name string, supertypes ...string) error {
	_, err := e.types.DefineAtomicType(name, supertypes...)
	return err
}

// DefineParametricType registers a type constructor with named parameters.
func (e *Engine) DefineParametricType(name string, params ...string) error {
	_, err := e.types.DefineParametricType(name, params...)
	return err
}

// DefineSignature gives symbol the type written in annotation syntax, for
// example "(Agent, Entity) -> Boolean" or "List[Entity]".
func (e *Engine) DefineSignature(symbol, typeText string) error {
	t, err := e.ParseType(typeText)
	if err != nil {
		return errors.Wrapf(err, "signature of %q", symbol)
	}
	return e.types.DefineSignature(symbol, t)
}

// DeclareSubtype records sub <: super, both written in annotation syntax.
func (e *Engine) DeclareSubtype(sub, super string) error {
	subT, err := e.ParseType(sub)
	if err != nil {
		return err
	}
	superT, err := e.ParseType(super)
	if err != nil {
		return err
	}
	return e.types.DeclareSubtype(subT, superT)
}

// LoadOntology registers the types and signatures of a YAML ontology file.
func (e *Engine) LoadOntology(path string) error {
	return ontology.LoadInto(e.types, path)
}

// LoadOntologyBytes is LoadOntology for content already in memory.
func (e *Engine) LoadOntologyBytes(data []byte, name string) error {
	o, err := ontology.Parse(data, name)
	if err != nil {
		return err
	}
	return o.Apply(e.types)
}

// ParseType parses a type expression against the registered types.
func (e *Engine) ParseType(text string) (Type, error) {
	t, diags, err := parser.New(e.types).ParseType(text)
	if err != nil {
		return nil, err
	}
	if err := diags.Err(); err != nil {
		return nil, errors.Wrapf(err, "type %q", text)
	}
	return t, nil
}

// Parse turns text into a typed tree. The error is set only when the text
// cannot be tokenized; all other problems are in the diagnostics, and the
// node is nil when any of them is a parse error.
func (e *Engine) Parse(text string) (Node, Diagnostics, error) {
	return parser.New(e.types).Parse(text)
}

// Infer computes the type of node with no variable overrides.
func (e *Engine) Infer(node Node) (Type, Diagnostics) {
	return analyzer.Infer(node, nil, e.types)
}

// InferIn computes the type of node with variable types taken from env.
func (e *Engine) InferIn(node Node, env *Environment) (Type, Diagnostics) {
	return analyzer.Infer(node, env, e.types)
}

// Check verifies that node has a subtype of expected.
func (e *Engine) Check(node Node, expected Type) Diagnostics {
	return analyzer.Check(node, expected, nil, e.types)
}

// IsSubtype reports whether sub may be used where super is expected.
func (e *Engine) IsSubtype(sub, super Type) bool {
	return e.types.IsSubtype(sub, super)
}

// Result is the outcome of analyzing one formula.
type Result struct {
	Node        Node
	Type        Type
	Session     string
	Diagnostics Diagnostics
}

// OK reports whether the formula produced no diagnostics.
func (r *Result) OK() bool { return len(r.Diagnostics) == 0 }

// Analyze runs lexing, parsing and inference over source. A non-nil expected
// type turns inference into a check. path, if set, is recorded on the root.
func (e *Engine) Analyze(source, path string, expected Type) *Result {
	ctx := pipeline.NewPipelineContext(source, e.types)
	ctx.FilePath = path
	ctx.Expected = expected
	ctx = frontEnd().Run(ctx)
	return &Result{
		Node:        ctx.AstRoot,
		Type:        ctx.InferredType,
		Session:     ctx.Session,
		Diagnostics: ctx.Errors,
	}
}

// ParseSource lexes and parses source without type inference. Lexical
// failures are reported as L001 diagnostics.
func (e *Engine) ParseSource(source, path string) *Result {
	ctx := pipeline.NewPipelineContext(source, e.types)
	ctx.FilePath = path
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	return &Result{Node: ctx.AstRoot, Session: ctx.Session, Diagnostics: ctx.Errors}
}

// Register gives a checked definition's symbol its declared type, so later
// formulas can use it.
func (e *Engine) Register(def *Definition) error {
	return e.types.DefineSignature(def.Symbol, def.SymbolType)
}

func frontEnd() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
	)
}

// Error codes, for matching diagnostics.
const (
	ErrL001 = diagnostics.ErrL001
	ErrP001 = diagnostics.ErrP001
	ErrP002 = diagnostics.ErrP002
	ErrP003 = diagnostics.ErrP003
	ErrP004 = diagnostics.ErrP004
	ErrP005 = diagnostics.ErrP005
	ErrP006 = diagnostics.ErrP006
	ErrP007 = diagnostics.ErrP007
	ErrT001 = diagnostics.ErrT001
	ErrT002 = diagnostics.ErrT002
	ErrT003 = diagnostics.ErrT003
	ErrT004 = diagnostics.ErrT004
	ErrT005 = diagnostics.ErrT005
	ErrT006 = diagnostics.ErrT006
	ErrT007 = diagnostics.ErrT007
)
