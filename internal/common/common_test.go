package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSpaces(t *testing.T) {
	assert.Equal(t, "Foo<2,2>", StripSpaces("Foo<2, 2 >"))
	assert.Equal(t, "unsignedint", StripSpaces("unsigned\tint\n"))
	assert.Equal(t, "plain", StripSpaces("plain"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("std::vector<double>", []string{"map", "vector"}))
	assert.False(t, ContainsAny("double", []string{"", "int"}), "empty needles never match")
	assert.False(t, ContainsAny("double", nil))
}

func TestSlices(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsSingle([]int{1, 2}))

	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string{})
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
}
