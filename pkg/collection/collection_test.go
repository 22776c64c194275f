package collection

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, out)
}

func TestFilter(t *testing.T) {
	out := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, out)
}

func TestFirst(t *testing.T) {
	v, ok := First([]int{1, 2, 3}, func(n int) bool { return n > 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = First([]int{1}, func(n int) bool { return n > 5 })
	assert.False(t, ok)
}

func TestFirstIndexAllowsInPlaceMutation(t *testing.T) {
	type bucket struct {
		Name string
		Qty  int
	}
	sizes := []bucket{{"S", 5}, {"M", 3}}

	i := FirstIndex(sizes, func(b bucket) bool { return b.Name == "M" })
	assert.Equal(t, 1, i)

	sizes[i].Qty -= 2
	assert.Equal(t, 1, sizes[1].Qty)

	assert.Equal(t, -1, FirstIndex(sizes, func(b bucket) bool { return b.Name == "XL" }))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, func(s string) bool { return s == "b" }))
	assert.False(t, Contains([]string{"a"}, func(s string) bool { return s == "z" }))
}

func TestSum(t *testing.T) {
	total := Sum([]float64{1.5, 2.5}, func(f float64) float64 { return f })
	assert.Equal(t, 4.0, total)

	n := Sum([]string{"ab", "c"}, func(s string) int { return len(s) })
	assert.Equal(t, 3, n)
}
