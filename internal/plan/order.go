package plan

import (
	"errors"
	"fmt"
	"slices"

	"wrapper-generator/internal/mangle"
)

// ErrBaseCycle is returned when exposed classes inherit from each other in a loop.
var ErrBaseCycle = errors.New("cycle detected in class bases")

// topoSort returns indices 0..n-1 so that every index comes after the
// indices depsFn yields for it. When several indices are ready the smallest
// goes first, so the result is deterministic. A cycle is an error.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		return nil, ErrBaseCycle
	}

	return order, nil
}

// registrationOrder sorts class plans so each comes after the plans of its
// exposed bases. Self inheritance edges are ignored.
func registrationOrder(classes []*ClassPlan) ([]*ClassPlan, error) {
	byName := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, ok := byName[mangle.Compact(c.FullName)]; !ok {
			byName[mangle.Compact(c.FullName)] = i
		}
	}

	order, err := topoSort(len(classes), func(i int) []int {
		var deps []int

		for _, b := range classes[i].Bases {
			if j, ok := byName[mangle.Compact(b)]; ok && j != i && !slices.Contains(deps, j) {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	out := make([]*ClassPlan, len(order))
	for k, i := range order {
		out[k] = classes[i]
	}

	return out, nil
}
