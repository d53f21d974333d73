package render

import (
	"errors"
	"fmt"
	"slices"

	"smdiagram/internal/structuremap"
)

// errCycle is returned by topoSort when the dependencies form a cycle.
var errCycle = errors.New("cycle detected")

// topoSort orders the indices 0..n-1 so that every index in before(i) comes
// ahead of i. Among the indices that are free to go next, the smallest wins.
func topoSort(n int, before func(i int) []int) ([]int, error) {
	pending := make([]int, n)
	after := make([][]int, n)

	for i := range n {
		for _, d := range before(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			pending[i]++
			after[d] = append(after[d], i)
		}
	}

	free := make([]bool, n)
	for i, p := range pending {
		free[i] = p == 0
	}

	order := make([]int, 0, n)

	for len(order) < n {
		next := slices.Index(free, true)
		if next < 0 {
			return nil, errCycle
		}

		free[next] = false
		order = append(order, next)

		for _, j := range after[next] {
			if pending[j]--; pending[j] == 0 {
				free[j] = true
			}
		}
	}

	return order, nil
}

// groupOrder lists group indices with callers before the groups their rules
// invoke. Declaration order is kept when invocations are cyclic.
func groupOrder(sm *structuremap.StructureMap) []int {
	index := make(map[string]int, len(sm.Group))
	for i, g := range sm.Group {
		if _, dup := index[g.Name]; !dup {
			index[g.Name] = i
		}
	}

	callers := make([][]int, len(sm.Group))

	for i := range sm.Group {
		seen := make(map[int]bool)

		sm.Group[i].Walk(func(r *structuremap.Rule, _ int) {
			for _, d := range r.Dependent {
				callee, ok := index[d.Name]
				if !ok || callee == i || seen[callee] {
					continue
				}

				seen[callee] = true
				callers[callee] = append(callers[callee], i)
			}
		})
	}

	order, err := topoSort(len(sm.Group), func(i int) []int { return callers[i] })
	if err != nil {
		order = make([]int, len(sm.Group))
		for i := range order {
			order[i] = i
		}
	}

	return order
}
