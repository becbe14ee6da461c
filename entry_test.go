package gostreams

import (
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestNewEntry(t *testing.T) {
	is := is.New(t)

	entry := NewEntry("a", 1)

	is.Equal(entry.Key(), "a")
	is.Equal(entry.Value(), 1)
	is.True(!entry.Mutable())
	is.Equal(entry.String(), "a=1")
}

func TestEntry_SetValue_Immutable(t *testing.T) {
	is := is.New(t)

	entry := NewEntry("a", 1)

	changed, err := entry.SetValue(2)

	is.True(errors.Is(err, ErrImmutableEntry))
	is.Equal(changed.Value(), 1)
	is.Equal(entry.Value(), 1)
}

func TestEntry_SetValue_Map(t *testing.T) {
	is := is.New(t)

	m := HashMap[string, int]{"a": 1}

	entry := mapEntry[string, int](m, &sync.Mutex{}, "a", 1)
	is.True(entry.Mutable())

	changed, err := entry.SetValue(2)

	is.NoErr(err)
	is.Equal(changed.Value(), 2)
	is.Equal(m["a"], 2)
}

func TestEntry_Invert(t *testing.T) {
	is := is.New(t)

	inverted := NewEntry("a", 1).Invert()

	is.Equal(inverted.Key(), 1)
	is.Equal(inverted.Value(), "a")
}

func TestEntryEqual(t *testing.T) {
	is := is.New(t)

	is.True(EntryEqual(NewEntry("a", 1), NewEntry("a", 1)))
	is.True(!EntryEqual(NewEntry("a", 1), NewEntry("a", 2)))
	is.True(!EntryEqual(NewEntry("a", 1), NewEntry("b", 1)))

	m := HashMap[string, int]{"a": 1}
	is.True(EntryEqual(mapEntry[string, int](m, &sync.Mutex{}, "a", 1), NewEntry("a", 1)))
}
