package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/godel/internal/errors"
)

// Type is the interface for all types in the logic.
// The set of implementations is closed: TAtom, TFunc, TVar, TCtor and TApp.
type Type interface {
	String() string
	// Key is a canonical rendering consistent with Equal, usable as a map key.
	Key() string
	Equal(other Type) bool
	Apply(Subst) Type
	FreeTypeVariables() []TVar
	// IsSubtypeOf reports whether the receiver can be used where other is expected.
	IsSubtypeOf(other Type, h Hierarchy) bool
	typeNode()
}

// Hierarchy answers subtyping questions for the type representations.
// Reachable only follows registered is-a edges; IsSubtype is the full relation.
type Hierarchy interface {
	IsSubtype(sub, super Type) bool
	Reachable(sub, super Type) bool
}

// TAtom is a nominal leaf type (e.g. Entity, Boolean).
type TAtom struct {
	Name string
}

func (t TAtom) typeNode()      {}
func (t TAtom) String() string { return t.Name }
func (t TAtom) Key() string    { return t.Name }

func (t TAtom) Equal(other Type) bool {
	o, ok := other.(TAtom)
	return ok && o.Name == t.Name
}

func (t TAtom) Apply(Subst) Type { return t }

func (t TAtom) FreeTypeVariables() []TVar { return nil }

func (t TAtom) IsSubtypeOf(other Type, h Hierarchy) bool {
	if t.Equal(other) {
		return true
	}
	return h != nil && h.Reachable(t, other)
}

// TVar is a placeholder solved by unification.
type TVar struct {
	Name string
}

func (t TVar) typeNode()      {}
func (t TVar) String() string { return "'" + t.Name }
func (t TVar) Key() string    { return "'" + t.Name }

func (t TVar) Equal(other Type) bool {
	o, ok := other.(TVar)
	return ok && o.Name == t.Name
}

func (t TVar) Apply(s Subst) Type {
	if replacement, ok := s[t.Name]; ok {
		return replacement
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// IsSubtypeOf never solves a variable; only identity holds.
func (t TVar) IsSubtypeOf(other Type, _ Hierarchy) bool { return t.Equal(other) }

// TFunc is a function type (Entity, Entity) -> Boolean.
type TFunc struct {
	Params []Type
	Return Type
}

// NewTFunc builds a function type, copying params so the arity stays fixed.
func NewTFunc(ret Type, params ...Type) TFunc {
	return TFunc{Params: append([]Type(nil), params...), Return: ret}
}

func (t TFunc) typeNode() {}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), typeString(t.Return))
}

func (t TFunc) Key() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Key()
	}
	ret := "<nil>"
	if t.Return != nil {
		ret = t.Return.Key()
	}
	return "(" + strings.Join(params, ",") + ")->" + ret
}

func (t TFunc) Equal(other Type) bool {
	o, ok := other.(TFunc)
	if !ok || len(o.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !TypesEqual(t.Params[i], o.Params[i]) {
			return false
		}
	}
	return TypesEqual(t.Return, o.Return)
}

func (t TFunc) Apply(s Subst) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Apply(s)
	}
	var ret Type
	if t.Return != nil {
		ret = t.Return.Apply(s)
	}
	return TFunc{Params: params, Return: ret}
}

func (t TFunc) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	if t.Return != nil {
		vars = append(vars, t.Return.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// IsSubtypeOf is contravariant in parameters and covariant in the result.
func (t TFunc) IsSubtypeOf(other Type, h Hierarchy) bool {
	if t.Equal(other) {
		return true
	}
	o, ok := other.(TFunc)
	if !ok || len(o.Params) != len(t.Params) || h == nil {
		return false
	}
	for i := range t.Params {
		if !h.IsSubtype(o.Params[i], t.Params[i]) {
			return false
		}
	}
	return h.IsSubtype(t.Return, o.Return)
}

// TCtor is a parametric type constructor such as List['T].
type TCtor struct {
	Name   string
	Params []TVar
}

func (t TCtor) typeNode() {}

func (t TCtor) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return t.Name + "[" + strings.Join(params, ", ") + "]"
}

func (t TCtor) Key() string { return "ctor:" + t.String() }

func (t TCtor) Equal(other Type) bool {
	o, ok := other.(TCtor)
	if !ok || o.Name != t.Name || len(o.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if t.Params[i] != o.Params[i] {
			return false
		}
	}
	return true
}

// Apply leaves a constructor untouched: its parameters are binders, not free variables.
func (t TCtor) Apply(Subst) Type { return t }

func (t TCtor) FreeTypeVariables() []TVar { return nil }

func (t TCtor) IsSubtypeOf(other Type, _ Hierarchy) bool { return t.Equal(other) }

// Arity is the number of type arguments the constructor expects.
func (t TCtor) Arity() int { return len(t.Params) }

// TApp is an instantiated parametric type such as List[Entity].
type TApp struct {
	Ctor TCtor
	Args []Type
}

// NewTApp instantiates ctor. It fails when the argument count differs from the
// constructor's parameter count.
func NewTApp(ctor TCtor, args ...Type) (TApp, error) {
	if len(args) != len(ctor.Params) {
		return TApp{}, errors.Wrapf(errors.ErrArityMismatch,
			"%s expects %d type arguments, got %d", ctor.Name, len(ctor.Params), len(args))
	}
	return TApp{Ctor: ctor, Args: append([]Type(nil), args...)}, nil
}

func (t TApp) typeNode() {}

func (t TApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Ctor.Name + "[" + strings.Join(args, ", ") + "]"
}

func (t TApp) Key() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Key()
	}
	return t.Ctor.Name + "[" + strings.Join(args, ",") + "]"
}

func (t TApp) Equal(other Type) bool {
	o, ok := other.(TApp)
	if !ok || !t.Ctor.Equal(o.Ctor) || len(o.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !TypesEqual(t.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}

func (t TApp) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Apply(s)
	}
	return TApp{Ctor: t.Ctor, Args: args}
}

func (t TApp) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// IsSubtypeOf is invariant in the arguments unless an explicit fact was registered.
func (t TApp) IsSubtypeOf(other Type, h Hierarchy) bool {
	if t.Equal(other) {
		return true
	}
	return h != nil && h.Reachable(t, other)
}

// TypesEqual compares two possibly-nil types.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Occurs reports whether tv appears anywhere inside t.
func Occurs(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.Name == tv.Name {
			return true
		}
	}
	return false
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func uniqueTVars(vars []TVar) []TVar {
	if len(vars) == 0 {
		return nil
	}
	unique := make([]TVar, 0, len(vars))
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}
