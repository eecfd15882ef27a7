package pipeline

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/token"
	"github.com/funvibe/godel/internal/typeenv"
	"github.com/funvibe/godel/internal/typesystem"
)

// TypeSystem is what the stages need from the type system manager.
type TypeSystem interface {
	LookupType(name string) (typesystem.Type, bool)
	Signature(symbol string) (typesystem.Type, bool)
	Instantiate(name string, args ...typesystem.Type) (typesystem.TApp, error)
	IsSubtype(sub, super typesystem.Type) bool
}

// PipelineContext carries one formula through the stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	TypeSystem TypeSystem

	// Env seeds inference; a fresh environment is used when nil.
	Env *typeenv.Environment
	// Expected, when set, makes the analyzer check instead of only infer.
	Expected typesystem.Type

	Session      string
	TokenStream  []token.Token
	AstRoot      ast.Node
	InferredType typesystem.Type
	Errors       diagnostics.List
}

func NewPipelineContext(source string, ts TypeSystem) *PipelineContext {
	return &PipelineContext{SourceCode: source, TypeSystem: ts}
}

// Failed reports whether any stage recorded a diagnostic.
func (ctx *PipelineContext) Failed() bool { return len(ctx.Errors) > 0 }
