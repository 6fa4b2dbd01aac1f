package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := topoSort(4, func(i int) []int {
		switch i {
		case 0:
			return []int{3}
		case 1:
			return []int{0}
		case 2:
			return nil
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 0, 1}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	_, err := topoSort(2, func(i int) []int {
		if i == 0 {
			return []int{1}
		}

		return []int{0}
	})
	require.ErrorIs(t, err, ErrBaseCycle)
}

func TestTopoSort_OutOfRange(t *testing.T) {
	_, err := topoSort(1, func(int) []int { return []int{5} })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRegistrationOrder(t *testing.T) {
	square := &ClassPlan{FullName: "Square", Bases: []string{"Shape"}}
	shape := &ClassPlan{FullName: "Shape", Bases: []string{"Drawable<2>"}}
	drawable := &ClassPlan{FullName: "Drawable<2 >"}
	point := &ClassPlan{FullName: "Point", Bases: []string{"Point"}}

	out, err := registrationOrder([]*ClassPlan{square, point, shape, drawable})
	require.NoError(t, err)
	assert.Equal(t, []*ClassPlan{point, drawable, shape, square}, out)
}
