package symbols

import (
	"sort"

	"github.com/funvibe/godel/internal/analyzer"
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/diagnostics"
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/typeenv"
	"github.com/funvibe/godel/internal/typesystem"
)

// LookupType returns the registered atomic type or constructor called name.
func (ts *TypeSystem) LookupType(name string) (typesystem.Type, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	t, ok := ts.types[name]
	return t, ok
}

// Signature returns the type registered for a predicate, function or constant symbol.
func (ts *TypeSystem) Signature(symbol string) (typesystem.Type, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	t, ok := ts.signatures[symbol]
	return t, ok
}

// Instantiate applies the constructor called name to args.
func (ts *TypeSystem) Instantiate(name string, args ...typesystem.Type) (typesystem.TApp, error) {
	t, ok := ts.LookupType(name)
	if !ok {
		return typesystem.TApp{}, errors.Wrapf(errors.ErrUnknownType, "%q", name)
	}
	ctor, ok := t.(typesystem.TCtor)
	if !ok {
		return typesystem.TApp{}, errors.WithHintf(
			errors.Wrapf(errors.ErrArityMismatch, "%s takes no type arguments", name),
			"%s is an atomic type", name)
	}
	return typesystem.NewTApp(ctor, args...)
}

// TypeNames lists registered type names in sorted order.
func (ts *TypeSystem) TypeNames() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.types))
	for n := range ts.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Symbols lists symbols with a signature in sorted order.
func (ts *TypeSystem) Symbols() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.signatures))
	for n := range ts.signatures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Supertypes returns every proper supertype of t, direct or transitive.
func (ts *TypeSystem) Supertypes(t typesystem.Type) []typesystem.Type {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.graph.Ancestors(t)
}

// DirectSupertypes returns the supertypes t was declared with.
func (ts *TypeSystem) DirectSupertypes(t typesystem.Type) []typesystem.Type {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.graph.Parents(t)
}

// IsSubtype reports whether a may be used where b is expected.
func (ts *TypeSystem) IsSubtype(a, b typesystem.Type) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.isSubtype(a, b)
}

func (ts *TypeSystem) isSubtype(a, b typesystem.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Equal(b) {
		return true
	}
	if _, ok := a.(typesystem.TAtom); ok {
		if _, ok := b.(typesystem.TAtom); ok {
			return ts.graph.Reachable(a, b)
		}
	}
	return a.IsSubtypeOf(b, hierarchyView{ts})
}

// Reachable reports whether an explicit chain of is-a facts leads from sub to super.
func (ts *TypeSystem) Reachable(sub, super typesystem.Type) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.graph.Reachable(sub, super)
}

// UnifyTypes returns the most general substitution making t1 and t2 equal.
func (ts *TypeSystem) UnifyTypes(t1, t2 typesystem.Type) (typesystem.Subst, error) {
	subst, err := typesystem.Unify(t1, t2)
	if err != nil {
		ts.log().Debugw("unification failed", logger.FieldOperation, "unify", logger.FieldError, err)
		return nil, err
	}
	return subst, nil
}

// InferExpressionType infers the type of node under env.
func (ts *TypeSystem) InferExpressionType(node ast.Node, env *typeenv.Environment) (typesystem.Type, diagnostics.List) {
	return analyzer.Infer(node, env, ts)
}

// CheckExpressionType verifies that node has a subtype of expected under env.
func (ts *TypeSystem) CheckExpressionType(node ast.Node, expected typesystem.Type, env *typeenv.Environment) diagnostics.List {
	return analyzer.Check(node, expected, env, ts)
}

// HierarchyTypes lists every type that takes part in the subtype graph.
func (ts *TypeSystem) HierarchyTypes() []typesystem.Type {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.graph.Nodes()
}
