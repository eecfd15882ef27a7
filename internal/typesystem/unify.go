package typesystem

import (
	"github.com/funvibe/godel/internal/errors"
)

// Unify attempts to find a substitution that makes t1 and t2 equal.
//
// When both sides are distinct type variables the left operand is bound to the
// right one. Function types unify their results first and then their parameters
// pairwise under the substitution accumulated so far.
func Unify(t1, t2 Type) (Subst, error) {
	if t1 == nil || t2 == nil {
		return nil, errUnify(t1, t2)
	}
	if t1.Equal(t2) {
		return Subst{}, nil
	}

	if tv, ok := t1.(TVar); ok {
		return Bind(tv, t2)
	}
	if tv, ok := t2.(TVar); ok {
		return Bind(tv, t1)
	}

	switch t1 := t1.(type) {
	case TFunc:
		t2, ok := t2.(TFunc)
		if !ok {
			return nil, errUnify(t1, t2)
		}
		if len(t1.Params) != len(t2.Params) {
			return nil, errors.Wrapf(errUnify(t1, t2), "arity %d vs %d", len(t1.Params), len(t2.Params))
		}
		subst, err := Unify(t1.Return, t2.Return)
		if err != nil {
			return nil, errors.Wrap(err, "in return type")
		}
		return unifyPairwise(subst, t1.Params, t2.Params, "in parameter")

	case TApp:
		t2, ok := t2.(TApp)
		if !ok || !t1.Ctor.Equal(t2.Ctor) || len(t1.Args) != len(t2.Args) {
			return nil, errUnify(t1, t2)
		}
		return unifyPairwise(Subst{}, t1.Args, t2.Args, "in type argument")
	}

	return nil, errUnify(t1, t2)
}

// unifyPairwise unifies xs[i] with ys[i], applying the accumulated substitution
// to both sides before each step and composing the results.
func unifyPairwise(subst Subst, xs, ys []Type, ctx string) (Subst, error) {
	for i := range xs {
		s, err := Unify(xs[i].Apply(subst), ys[i].Apply(subst))
		if err != nil {
			return nil, errors.Wrapf(err, "%s %d", ctx, i+1)
		}
		subst = subst.Compose(s)
	}
	return subst, nil
}

// Bind maps tv to t after an occurs check.
func Bind(tv TVar, t Type) (Subst, error) {
	if other, ok := t.(TVar); ok && other.Name == tv.Name {
		return Subst{}, nil
	}
	if Occurs(tv, t) {
		return nil, errors.Wrapf(errors.ErrOccursCheck, "infinite type: %s in %s", tv, t)
	}
	return Subst{tv.Name: t}, nil
}

func errUnify(t1, t2 Type) error {
	return errors.Wrapf(errors.ErrUnification, "%s with %s", typeString(t1), typeString(t2))
}
