package typeenv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/typesystem"
)

var (
	entity = typesystem.TAtom{Name: "Entity"}
	agent  = typesystem.TAtom{Name: "Agent"}
)

func TestScopes(t *testing.T) {
	x := ast.NewVariable("x", 1, entity)
	root := New()
	root.SetType(x, entity)

	inner := root.Extend()
	assert.Equal(t, entity, inner.GetType(x), "falls back to outer")

	inner.SetType(x, agent)
	assert.Equal(t, agent, inner.GetType(x))
	assert.Equal(t, entity, root.GetType(x), "outer untouched")
	assert.Same(t, root, inner.Outer())
}

func TestGetTypeFallsBackToVariable(t *testing.T) {
	env := New()
	x := ast.NewVariable("x", 4, agent)
	_, ok := env.Lookup(x)
	assert.False(t, ok)
	assert.Equal(t, agent, env.GetType(x))

	untyped := ast.NewVariable("y", 5, nil)
	assert.Nil(t, env.GetType(untyped))
}

func TestCopyIsIndependent(t *testing.T) {
	x := ast.NewVariable("x", 1, entity)
	y := ast.NewVariable("y", 2, entity)
	root := New()
	scope := root.Extend()
	scope.SetType(x, agent)

	c := scope.Copy()
	c.SetType(y, agent)

	assert.Equal(t, 1, scope.Len())
	assert.Equal(t, 2, c.Len())
	assert.Same(t, root, c.Outer())
	assert.Equal(t, agent, c.GetType(x))
}

func TestSameNameDifferentIDs(t *testing.T) {
	outerX := ast.NewVariable("x", 1, entity)
	innerX := ast.NewVariable("x", 2, entity)
	env := New()
	env.SetType(outerX, agent)

	_, ok := env.Lookup(innerX)
	assert.False(t, ok)
}
