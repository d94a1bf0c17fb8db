package typegen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/shapegen/errors"
)

// assertTopological checks that order is a permutation of want and every
// dependency precedes its dependent.
func assertTopological(t *testing.T, g *DependencyGraph, order []string, want []string) {
	t.Helper()
	assert.ElementsMatch(t, want, order)

	index := make(map[string]int, len(order))
	for i, name := range order {
		_, dup := index[name]
		require.False(t, dup, "duplicate %q in order", name)
		index[name] = i
	}
	for _, name := range g.Names() {
		for _, dep := range g.Dependencies(name) {
			if dep == name {
				continue
			}
			assert.Less(t, index[dep], index[name], "%s must come before %s", dep, name)
		}
	}
}

func TestTopologicalOrder_Acyclic(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("App", "Service", "Config")
	g.Add("Service", "Repo", "Logger")
	g.Add("Repo", "Config", "Logger")
	g.AddLeaf("Config")
	g.AddLeaf("Logger")

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	assertTopological(t, g, order, []string{"App", "Service", "Repo", "Config", "Logger"})
	assert.Equal(t, []string{"Config", "Logger", "Repo", "Service", "App"}, order)
}

func TestTopologicalOrder_SeedOrderDecidesIndependentShapes(t *testing.T) {
	g := NewDependencyGraph()
	g.AddLeaf("Zeta")
	g.AddLeaf("Alpha")
	g.AddLeaf("Mid")

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, order)
}

func TestTopologicalOrder_ImplicitLeaves(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("A", "string", "B")
	g.Add("B", "integer")

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"string", "integer", "B", "A"}, order)
}

func TestTopologicalOrder_Duplicates(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("A", "B", "B", "B")
	g.Add("B")

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, order)
}

func TestTopologicalOrder_SelfLoopAllowed(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("Node", "Name", "Node")
	g.AddLeaf("Name")

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Node"}, order)
}

func TestTopologicalOrder_CycleRejected(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("A", "B")
	g.Add("B", "C")
	g.Add("C", "A")

	_, err := TopologicalOrder(g)
	require.Error(t, err)
	assert.True(t, errors.IsCycleError(err))
	assert.Contains(t, err.Error(), "A -> B -> C -> A")
}

func TestOrderer_AllowCycles(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("A", "B")
	g.Add("B", "A")
	g.AddLeaf("C")

	order, err := Orderer{AllowCycles: true}.Order(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, order, "every shape once, traversal order inside the cycle")
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	build := func() *DependencyGraph {
		g := NewDependencyGraph()
		for i := 0; i < 50; i++ {
			name := fmt.Sprintf("S%02d", i)
			if i%3 == 0 {
				g.AddLeaf(name)
				continue
			}
			g.Add(name, fmt.Sprintf("S%02d", i/2), fmt.Sprintf("S%02d", i/3))
		}
		return g
	}

	first, err := TopologicalOrder(build())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := TopologicalOrder(build())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopologicalOrder_DeepChain(t *testing.T) {
	// Deep enough that a naive recursive walk would be a concern
	const depth = 100000
	g := NewDependencyGraph()
	for i := 0; i < depth; i++ {
		g.Add(fmt.Sprintf("N%d", i), fmt.Sprintf("N%d", i+1))
	}

	order, err := TopologicalOrder(g)
	require.NoError(t, err)
	require.Len(t, order, depth+1)
	assert.Equal(t, fmt.Sprintf("N%d", depth), order[0])
	assert.Equal(t, "N0", order[depth])
}
