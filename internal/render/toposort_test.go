package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smdiagram/internal/structuremap"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := topoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{2}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	_, err := topoSort(2, func(i int) []int {
		if i == 0 {
			return []int{1}
		}

		return []int{0}
	})
	require.ErrorIs(t, err, errCycle)

	_, err = topoSort(1, func(int) []int { return []int{3} })
	require.Error(t, err)

	order, err := topoSort(0, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func callGroup(name string, calls ...string) structuremap.Group {
	rule := structuremap.Rule{Name: name + "Rule"}
	for _, c := range calls {
		rule.Dependent = append(rule.Dependent, structuremap.Dependent{Name: c})
	}

	return structuremap.Group{Name: name, Rule: []structuremap.Rule{rule}}
}

func TestGroupOrder(t *testing.T) {
	sm := &structuremap.StructureMap{Group: []structuremap.Group{
		callGroup("Leaf"),
		callGroup("Main", "Middle", "Unknown"),
		callGroup("Middle", "Leaf", "Middle"),
	}}
	assert.Equal(t, []int{1, 2, 0}, groupOrder(sm))

	cyclic := &structuremap.StructureMap{Group: []structuremap.Group{
		callGroup("A", "B"),
		callGroup("B", "A"),
		callGroup("C"),
	}}
	assert.Equal(t, []int{0, 1, 2}, groupOrder(cyclic))
}
