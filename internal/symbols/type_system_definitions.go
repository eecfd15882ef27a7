package symbols

import (
	"github.com/funvibe/godel/internal/errors"
	"github.com/funvibe/godel/internal/logger"
	"github.com/funvibe/godel/internal/typesystem"
)

// DefineAtomicType registers name with the given direct supertypes.
// Every supertype must already be registered as an atomic type.
func (ts *TypeSystem) DefineAtomicType(name string, supertypes ...string) (typesystem.TAtom, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.defineAtomicType(name, supertypes)
}

func (ts *TypeSystem) defineAtomicType(name string, supertypes []string) (typesystem.TAtom, error) {
	if _, exists := ts.types[name]; exists {
		return typesystem.TAtom{}, errors.Wrapf(errors.ErrDuplicateType, "type %q", name)
	}

	supers := make([]typesystem.TAtom, 0, len(supertypes))
	for _, s := range supertypes {
		t, ok := ts.types[s]
		atom, isAtom := t.(typesystem.TAtom)
		if !ok || !isAtom {
			err := errors.Wrapf(errors.ErrUnknownSupertype, "type %q: supertype %q", name, s)
			if ok {
				return typesystem.TAtom{}, errors.WithHintf(err, "%s is %s, only atomic types can be supertypes", s, t)
			}
			return typesystem.TAtom{}, errors.WithHint(err, "define the supertype before its subtypes")
		}
		supers = append(supers, atom)
	}

	atom := typesystem.TAtom{Name: name}
	ts.types[name] = atom
	ts.graph.AddNode(atom)
	for _, s := range supers {
		ts.graph.AddEdge(atom, s)
	}

	ts.log().Debugw("type registered", logger.FieldType, name, logger.FieldSuper, supertypes)
	return atom, nil
}

// DefineParametricType registers a type constructor such as List['T].
func (ts *TypeSystem) DefineParametricType(name string, params ...string) (typesystem.TCtor, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.types[name]; exists {
		return typesystem.TCtor{}, errors.Wrapf(errors.ErrDuplicateType, "type %q", name)
	}
	if len(params) == 0 {
		return typesystem.TCtor{}, errors.WithHint(
			errors.Wrapf(errors.ErrArityMismatch, "parametric type %q has no parameters", name),
			"use DefineAtomicType for types without parameters")
	}
	seen := make(map[string]bool, len(params))
	ctor := typesystem.TCtor{Name: name, Params: make([]typesystem.TVar, len(params))}
	for i, p := range params {
		if seen[p] {
			return typesystem.TCtor{}, errors.Wrapf(errors.ErrDuplicateType, "parametric type %q: parameter %q repeated", name, p)
		}
		seen[p] = true
		ctor.Params[i] = typesystem.TVar{Name: p}
	}

	ts.types[name] = ctor
	ts.log().Debugw("parametric type registered", logger.FieldType, ctor.String())
	return ctor, nil
}

// DefineFunctionSignature gives symbol the type (args...) -> ret, resolving
// every type by name.
func (ts *TypeSystem) DefineFunctionSignature(symbol string, argTypeNames []string, returnTypeName string) (typesystem.TFunc, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.signatures[symbol]; exists {
		return typesystem.TFunc{}, errors.Wrapf(errors.ErrDuplicateSignature, "symbol %q", symbol)
	}
	args := make([]typesystem.Type, len(argTypeNames))
	for i, n := range argTypeNames {
		t, err := ts.resolveNamed(n)
		if err != nil {
			return typesystem.TFunc{}, errors.Wrapf(err, "signature of %q, argument %d", symbol, i+1)
		}
		args[i] = t
	}
	ret, err := ts.resolveNamed(returnTypeName)
	if err != nil {
		return typesystem.TFunc{}, errors.Wrapf(err, "signature of %q, result", symbol)
	}

	fn := typesystem.NewTFunc(ret, args...)
	ts.signatures[symbol] = fn
	ts.log().Debugw("signature registered", logger.FieldSymbol, symbol, logger.FieldSignature, fn.String())
	return fn, nil
}

// DefineConstant gives symbol a plain atomic type.
func (ts *TypeSystem) DefineConstant(symbol, typeName string) (typesystem.TAtom, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.signatures[symbol]; exists {
		return typesystem.TAtom{}, errors.Wrapf(errors.ErrDuplicateSignature, "symbol %q", symbol)
	}
	t, err := ts.resolveNamed(typeName)
	if err != nil {
		return typesystem.TAtom{}, errors.Wrapf(err, "constant %q", symbol)
	}
	ts.signatures[symbol] = t
	ts.log().Debugw("constant registered", logger.FieldSymbol, symbol, logger.FieldType, typeName)
	return t.(typesystem.TAtom), nil
}

// DefineSignature gives symbol an already built type. Every atom and
// constructor inside it must be registered.
func (ts *TypeSystem) DefineSignature(symbol string, t typesystem.Type) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.signatures[symbol]; exists {
		return errors.Wrapf(errors.ErrDuplicateSignature, "symbol %q", symbol)
	}
	if err := ts.validate(t); err != nil {
		return errors.Wrapf(err, "signature of %q", symbol)
	}
	ts.signatures[symbol] = t
	ts.log().Debugw("signature registered", logger.FieldSymbol, symbol, logger.FieldSignature, t.String())
	return nil
}

// DeclareSubtype records the explicit fact sub <: super. It is how
// instantiated parametric types acquire subtypes beyond equality, and how
// atomic types gain supertypes after their definition.
func (ts *TypeSystem) DeclareSubtype(sub, super typesystem.Type) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, t := range []typesystem.Type{sub, super} {
		switch t.(type) {
		case typesystem.TAtom, typesystem.TApp:
		default:
			return errors.WithHint(errors.Wrapf(errors.ErrUnknownSupertype, "%s", t),
				"only atomic and instantiated parametric types take part in the hierarchy")
		}
		if err := ts.validate(t); err != nil {
			return err
		}
	}
	if ts.graph.Reachable(super, sub) {
		return errors.Wrapf(errors.ErrCyclicHierarchy, "%s <: %s", sub, super)
	}

	ts.graph.AddEdge(sub, super)
	ts.log().Debugw("subtype declared", logger.FieldType, sub.String(), logger.FieldSuper, super.String())
	return nil
}

// resolveNamed looks up a registered atomic type by name.
func (ts *TypeSystem) resolveNamed(name string) (typesystem.Type, error) {
	t, ok := ts.types[name]
	if !ok {
		return nil, errors.WithHint(errors.Wrapf(errors.ErrUnknownType, "%q", name),
			"register the type before referring to it")
	}
	if ctor, isCtor := t.(typesystem.TCtor); isCtor {
		return nil, errors.Wrapf(errors.ErrArityMismatch, "%s needs %d type arguments", name, ctor.Arity())
	}
	return t, nil
}

// validate checks that every name inside t is registered with the right shape.
func (ts *TypeSystem) validate(t typesystem.Type) error {
	switch t := t.(type) {
	case nil:
		return errors.Wrap(errors.ErrUnknownType, "missing type")
	case typesystem.TAtom:
		_, err := ts.resolveNamed(t.Name)
		return err
	case typesystem.TVar:
		return nil
	case typesystem.TFunc:
		for _, p := range t.Params {
			if err := ts.validate(p); err != nil {
				return err
			}
		}
		return ts.validate(t.Return)
	case typesystem.TApp:
		reg, ok := ts.types[t.Ctor.Name]
		if !ok || !reg.Equal(t.Ctor) {
			return errors.Wrapf(errors.ErrUnknownType, "constructor %q", t.Ctor.Name)
		}
		for _, a := range t.Args {
			if err := ts.validate(a); err != nil {
				return err
			}
		}
		return nil
	case typesystem.TCtor:
		return errors.Wrapf(errors.ErrArityMismatch, "%s needs %d type arguments", t.Name, t.Arity())
	}
	return errors.Wrapf(errors.ErrUnknownType, "%s", t)
}
