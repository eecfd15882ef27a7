package typeenv

import (
	"github.com/funvibe/godel/internal/ast"
	"github.com/funvibe/godel/internal/typesystem"
)

// Environment is one scope of variable bindings keyed by Variable.ID.
// Lookups fall through to the outer scope on a miss.
type Environment struct {
	store map[int]typesystem.Type
	outer *Environment
}

func New() *Environment {
	return &Environment{store: make(map[int]typesystem.Type)}
}

// Extend returns a child scope. Bindings made in the child never leak out.
func (e *Environment) Extend() *Environment {
	child := New()
	child.outer = e
	return child
}

// Copy duplicates the current scope's bindings. The copy shares the same
// outer scope.
func (e *Environment) Copy() *Environment {
	c := &Environment{store: make(map[int]typesystem.Type, len(e.store)), outer: e.outer}
	for id, t := range e.store {
		c.store[id] = t
	}
	return c
}

func (e *Environment) Outer() *Environment { return e.outer }

// Lookup searches this scope and then the outer chain.
func (e *Environment) Lookup(v *ast.Variable) (typesystem.Type, bool) {
	for scope := e; scope != nil; scope = scope.outer {
		if t, ok := scope.store[v.ID]; ok {
			return t, true
		}
	}
	return nil, false
}

// GetType is Lookup falling back to the type stored on the variable itself.
// The result is nil when neither resolves.
func (e *Environment) GetType(v *ast.Variable) typesystem.Type {
	if t, ok := e.Lookup(v); ok {
		return t
	}
	return v.Type()
}

// SetType binds v in the current scope only.
func (e *Environment) SetType(v *ast.Variable, t typesystem.Type) {
	e.store[v.ID] = t
}

// Len is the number of bindings in the current scope.
func (e *Environment) Len() int { return len(e.store) }
