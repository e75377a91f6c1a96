package childset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutGetHasDelete(t *testing.T) {
	s := New[int]()
	assert.False(t, s.Has("a"))

	s.Put("a", 1)
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, s.Has("a"))
	assert.Equal(t, 1, s.Len())

	s.Delete("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestNamesAreSorted(t *testing.T) {
	s := New[int]()
	s.Put("charlie", 3)
	s.Put("alpha", 1)
	s.Put("bravo", 2)

	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, s.Names())
}

func TestEachVisitsInSortedOrder(t *testing.T) {
	s := New[string]()
	s.Put("z", "last")
	s.Put("a", "first")

	var visited []string
	s.Each(func(name string, v string) {
		visited = append(visited, name)
	})
	assert.Equal(t, []string{"a", "z"}, visited)
}
