package easycsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectDomainEmpty(t *testing.T) {
	d := NewObjectDomain[string]()

	assert.True(t, d.IsEmpty())
	assert.Equal(t, "[]", d.String())
	assert.False(t, d.Iterator().HasNext())
}

func TestObjectDomainInsertionOrder(t *testing.T) {
	d := NewObjectDomain("red", "green", "blue")

	assert.Equal(t, 3, d.Size())
	assert.Equal(t, "red", d.Get(0))
	assert.Equal(t, "blue", d.Get(2))
	assert.Equal(t, "[red, green, blue]", d.String())

	d.Add("red") // duplicates are not rejected
	assert.Equal(t, 4, d.Size())
	assert.Equal(t, 0, d.IndexOf("red"))
}

func TestObjectDomainSet(t *testing.T) {
	d := NewObjectDomain("a", "b")
	d.Set(1, "c")

	assert.Equal(t, "c", d.Get(1))
	assert.Panics(t, func() { d.Set(2, "d") })
}

func TestObjectDomainRemove(t *testing.T) {
	d := NewObjectDomain("a", "b", "c", "b")

	assert.True(t, d.Remove("b"))
	assert.Equal(t, "[a, c, b]", d.String())
	assert.True(t, d.Remove("b"))
	assert.False(t, d.Remove("b"))

	assert.Equal(t, "c", d.RemoveAt(1))
	assert.Equal(t, "[a]", d.String())
}

func TestObjectDomainNilSentinel(t *testing.T) {
	one := 1
	d := NewObjectDomain[*int](&one, nil)

	assert.True(t, d.Contains(nil))
	assert.Equal(t, 1, d.IndexOf(nil))
	assert.True(t, d.Remove(nil))
	assert.False(t, d.Contains(nil))
}

func TestObjectDomainIterator(t *testing.T) {
	d := NewObjectDomain(1, 2, 3, 4)
	it := d.Iterator()

	assert.Equal(t, 1, it.Next())
	assert.Equal(t, 2, it.Next())
	it.Remove()

	// iteration resumes with the value that followed the removed one
	assert.Equal(t, 3, it.Next())
	assert.Equal(t, 4, it.Next())
	assert.False(t, it.HasNext())
	assert.Equal(t, "[1, 3, 4]", d.String())

	it.Reset()
	assert.Equal(t, -1, it.CurrentIndex())
	assert.Equal(t, 1, it.Next())
}

func TestObjectDomainIteratorRemoveBeforeNext(t *testing.T) {
	it := NewObjectDomain(1, 2).Iterator()

	assert.PanicsWithValue(t, ErrIteratorState, func() { it.Remove() })
}

func TestObjectDomainCloneEqual(t *testing.T) {
	d := NewObjectDomain("x", "y")
	clone := d.Clone().(*ObjectDomain[string])

	assert.True(t, d.Equal(clone))
	clone.Add("z")
	assert.False(t, d.Equal(clone))
	assert.Equal(t, 2, d.Size())
}

func TestObjectDomainAddAll(t *testing.T) {
	d := NewObjectDomain(1, 2)
	d.AddAll(NewObjectDomain(3, 4))

	assert.Equal(t, "[1, 2, 3, 4]", d.String())
}
