package gostreams

import (
	"strconv"
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestSortedMap(t *testing.T) {
	is := is.New(t)

	m := NewSortedMap[string, int]()
	m.Put("ccc", 33)
	m.Put("a", 1)
	m.Put("bb", 22)
	m.Put("a", 2)

	is.Equal(m.Len(), 3)
	is.Equal(m.Keys(), []string{"a", "bb", "ccc"})
	is.Equal(m.String(), "{a=2, bb=22, ccc=33}")

	v, ok := m.Get("bb")
	is.True(ok)
	is.Equal(v, 22)

	_, ok = m.Get("d")
	is.True(!ok)

	k, v, ok := m.First()
	is.True(ok)
	is.Equal(k, "a")
	is.Equal(v, 2)

	k, v, ok = m.Last()
	is.True(ok)
	is.Equal(k, "ccc")
	is.Equal(v, 33)
}

func TestSortedMap_Empty(t *testing.T) {
	is := is.New(t)

	m := NewSortedMap[int, int]()

	_, _, ok := m.First()
	is.True(!ok)

	_, _, ok = m.Last()
	is.True(!ok)

	is.Equal(m.String(), "{}")
}

func TestSortedMapFunc(t *testing.T) {
	is := is.New(t)

	m := NewSortedMapFunc[int, string](func(a int, b int) bool {
		return a > b
	})

	m.Put(1, "a")
	m.Put(3, "c")
	m.Put(2, "b")

	is.Equal(m.Keys(), []int{3, 2, 1})
}

func TestSortedMap_Concurrent(t *testing.T) {
	is := is.New(t)

	m := NewSortedMap[int, string]()

	grp := sync.WaitGroup{}

	for i := 0; i < 100; i++ {
		grp.Add(1)

		go func() {
			defer grp.Done()

			m.Put(i, strconv.Itoa(i))
			_, _ = m.Get(i)
		}()
	}

	grp.Wait()

	is.Equal(m.Len(), 100)

	k, _, _ := m.Last()
	is.Equal(k, 99)
}

func TestSortedMap_All_Put(t *testing.T) {
	is := is.New(t)

	m := NewSortedMap[int, int]()
	m.Put(1, 1)
	m.Put(2, 2)

	// changing the map while iterating must not deadlock
	for k, v := range m.All() {
		m.Put(k, v*10)
	}

	v, _ := m.Get(2)
	is.Equal(v, 20)
}
