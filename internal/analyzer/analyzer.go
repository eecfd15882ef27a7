package analyzer

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/config"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/typeenv"
	"github.com/funvibe/godel/internal/typesystem"
)

// Oracle answers subtype queries. The type system manager implements it.
type Oracle interface {
	IsSubtype(sub, super typesystem.Type) bool
}

var (
	booleanType = typesystem.TAtom{Name: config.BooleanTypeName}
	agentType   = typesystem.TAtom{Name: config.AgentTypeName}
)

// Infer computes the type of node under env. On failure the type is nil and
// the list holds the first error found; inference stops there.
func Infer(node ast.Node, env *typeenv.Environment, oracle Oracle) (typesystem.Type, diagnostics.List) {
	if env == nil {
		env = typeenv.New()
	}
	w := &inferrer{env: env, oracle: oracle}
	t, _ := w.infer(node)
	return t, w.errs
}

// Check infers node and verifies the result is a subtype of expected.
func Check(node ast.Node, expected typesystem.Type, env *typeenv.Environment, oracle Oracle) diagnostics.List {
	t, errs := Infer(node, env, oracle)
	if len(errs) > 0 {
		return errs
	}
	if !oracle.IsSubtype(t, expected) {
		return diagnostics.List{
			diagnostics.NewNodeError(diagnostics.ErrT003, node, "expected %s, got %s", expected, t),
		}
	}
	return nil
}
