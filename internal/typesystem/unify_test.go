package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/godel/internal/errors"
)

func TestUnify(t *testing.T) {
	a, b, c := TVar{Name: "a"}, TVar{Name: "b"}, TVar{Name: "c"}
	listCtor := TCtor{Name: "List", Params: []TVar{{Name: "T"}}}
	pairCtor := TCtor{Name: "Pair", Params: []TVar{{Name: "A"}, {Name: "B"}}}

	tests := []struct {
		name string
		t1   Type
		t2   Type
		want Subst
	}{
		{"same variable", a, a, Subst{}},
		{"same atom", entity, entity, Subst{}},
		{"variable left", a, entity, Subst{"a": entity}},
		{"variable right", entity, a, Subst{"a": entity}},
		{"two variables bind left to right", a, b, Subst{"a": b}},
		{"two variables reversed", b, a, Subst{"b": a}},
		{
			"function parameter",
			NewTFunc(boolean, TVar{Name: "T"}),
			NewTFunc(boolean, entity),
			Subst{"T": entity},
		},
		{
			"function return then params",
			NewTFunc(a, a, b),
			NewTFunc(entity, c, agent),
			Subst{"a": entity, "c": entity, "b": agent},
		},
		{
			"instantiated element-wise",
			TApp{Ctor: pairCtor, Args: []Type{a, a}},
			TApp{Ctor: pairCtor, Args: []Type{entity, b}},
			Subst{"a": entity, "b": entity},
		},
		{
			"nested instantiation",
			TApp{Ctor: listCtor, Args: []Type{NewTFunc(a, entity)}},
			TApp{Ctor: listCtor, Args: []Type{NewTFunc(boolean, entity)}},
			Subst{"a": boolean},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unify(tt.t1, tt.t2)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.True(t, tt.t1.Apply(got).Equal(tt.t2.Apply(got)), "unifier must equalize both sides")
		})
	}
}

func TestUnifyFailures(t *testing.T) {
	tv := TVar{Name: "T"}
	listCtor := TCtor{Name: "List", Params: []TVar{{Name: "E"}}}
	setCtor := TCtor{Name: "Set", Params: []TVar{{Name: "E"}}}

	tests := []struct {
		name     string
		t1, t2   Type
		sentinel error
	}{
		{"distinct atoms", entity, agent, errors.ErrUnification},
		{"atom vs function", entity, NewTFunc(boolean, entity), errors.ErrUnification},
		{"function arity", NewTFunc(boolean, entity), NewTFunc(boolean, entity, entity), errors.ErrUnification},
		{"return mismatch", NewTFunc(boolean, entity), NewTFunc(integer, entity), errors.ErrUnification},
		{"different constructors", TApp{Ctor: listCtor, Args: []Type{entity}}, TApp{Ctor: setCtor, Args: []Type{entity}}, errors.ErrUnification},
		{"occurs in function", tv, NewTFunc(boolean, tv), errors.ErrOccursCheck},
		{"occurs in function return", NewTFunc(tv, entity), tv, errors.ErrOccursCheck},
		{"occurs in instantiation", tv, TApp{Ctor: listCtor, Args: []Type{tv}}, errors.ErrOccursCheck},
		{"occurs nested", tv, TApp{Ctor: listCtor, Args: []Type{NewTFunc(tv, entity)}}, errors.ErrOccursCheck},
		{
			"inconsistent bindings",
			NewTFunc(boolean, tv, tv),
			NewTFunc(boolean, entity, boolean),
			errors.ErrUnification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unify(tt.t1, tt.t2)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.sentinel), "unexpected error: %v", err)
		})
	}
}

func TestUnifyNil(t *testing.T) {
	_, err := Unify(nil, entity)
	assert.Error(t, err)
}
