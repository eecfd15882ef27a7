package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphClosureUpdatesDescendants(t *testing.T) {
	g := NewGraph()
	living := TAtom{Name: "Living"}

	// Person -> Agent first, then Agent -> Entity, then Entity -> Living:
	// earlier descendants must pick up later ancestors.
	g.AddEdge(person, agent)
	g.AddEdge(agent, entity)
	g.AddEdge(entity, living)

	assert.True(t, g.Reachable(person, living))
	assert.True(t, g.Reachable(agent, living))
	assert.False(t, g.Reachable(living, person))
	assert.Equal(t, []Type{agent, entity, living}, g.Ancestors(person))
	assert.Equal(t, []Type{agent}, g.Parents(person))
}

func TestGraphReflexive(t *testing.T) {
	g := NewGraph()
	g.AddNode(entity)
	assert.True(t, g.Reachable(entity, entity))
	assert.True(t, g.HasNode(entity))
	assert.False(t, g.HasNode(agent))
}

func TestGraphDuplicateEdgeIsNoop(t *testing.T) {
	g := NewGraph()
	g.AddEdge(agent, entity)
	g.AddEdge(agent, entity)
	assert.Len(t, g.Parents(agent), 1)
	assert.Len(t, g.Nodes(), 2)
}

func TestGraphMultipleInheritance(t *testing.T) {
	g := NewGraph()
	robot := TAtom{Name: "Robot"}
	machine := TAtom{Name: "Machine"}
	g.AddEdge(robot, agent)
	g.AddEdge(robot, machine)
	g.AddEdge(agent, entity)

	assert.True(t, g.Reachable(robot, entity))
	assert.True(t, g.Reachable(robot, machine))
	assert.False(t, g.Reachable(machine, entity))
}
