package easycsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireCanonical asserts the structural invariants of an interval
// domain: sorted, non-adjacent intervals whose sizes sum to Size.
func requireCanonical(t *testing.T, d *IntDomain) {
	t.Helper()
	total := 0
	for i, iv := range d.intervals {
		require.LessOrEqual(t, iv.lo, iv.hi, "interval %d inverted", i)
		if i > 0 {
			require.GreaterOrEqual(t, iv.lo, d.intervals[i-1].hi+2, "intervals %d and %d touch", i-1, i)
		}
		total += iv.size()
	}
	require.Equal(t, total, d.Size(), "size out of sync with intervals")
}

func TestIntDomainEmpty(t *testing.T) {
	assert.True(t, NewIntDomain().IsEmpty())

	d := NewIntSingletonDomain(1)
	d.RemoveAt(0)

	assert.True(t, d.IsEmpty())
	assert.False(t, d.Iterator().HasNext())
	assert.Equal(t, "[]", d.String())
}

func TestIntDomainSize(t *testing.T) {
	assert.Equal(t, 5, NewIntRangeDomain(1, 5).Size())
	assert.Equal(t, 4, NewIntRangeDomain(-5, -2).Size())
	assert.Equal(t, 7, NewIntRangeDomain(-1, 5).Size())
	assert.Equal(t, 11, NewIntRangeDomain(-5, 5).Size())
}

func TestIntDomainSingleton(t *testing.T) {
	d := NewIntSingletonDomain(1)

	assert.False(t, d.IsEmpty())
	assert.Equal(t, 1, d.Get(0))
	assert.Equal(t, "{1}", d.String())

	negative := NewIntSingletonDomain(-2)

	assert.Equal(t, -2, negative.Get(0))
	assert.Equal(t, -2, negative.Min())
	assert.Equal(t, -2, negative.Max())
}

func TestIntDomainGet(t *testing.T) {
	d := NewIntRangeDomain(1, 3)

	assert.Equal(t, 1, d.Get(0))
	assert.Equal(t, 2, d.Get(1))
	assert.Equal(t, 3, d.Get(2))
	assert.PanicsWithError(t, (&OutOfRangeError{Index: 3, Size: 3}).Error(), func() { d.Get(3) })
	assert.Panics(t, func() { d.Get(-1) })
}

func TestIntDomainMinMaxEmpty(t *testing.T) {
	empty := NewIntDomain()

	assert.PanicsWithValue(t, ErrEmptyDomain, func() { empty.Min() })
	assert.PanicsWithValue(t, ErrEmptyDomain, func() { empty.Max() })
}

func TestIntDomainContains(t *testing.T) {
	empty := NewIntDomain()
	assert.False(t, empty.Contains(1))

	d := NewIntRangeDomain(1, 5)
	assert.True(t, d.Contains(3))
	assert.False(t, d.Contains(6))

	negative := NewIntRangeDomain(-3, 5)
	assert.True(t, negative.Contains(-2))
	assert.True(t, negative.Contains(5))
	assert.False(t, negative.Contains(6))
}

func TestIntDomainContainsWhenSparse(t *testing.T) {
	d := NewIntRangeDomain(1, 5)
	for _, v := range []int{7, 9, 11, 13, 15, 17} {
		d.Add(v)
	}

	assert.Equal(t, 11, d.Size())
	assert.True(t, d.Contains(7))
	assert.True(t, d.Contains(11))
	assert.True(t, d.Contains(13))
	assert.False(t, d.Contains(12))
	assert.True(t, d.Contains(17))
	requireCanonical(t, d)
}

func TestIntDomainAddIntoEmpty(t *testing.T) {
	d := NewIntDomain()
	d.Add(3)
	d.Add(5)
	d.Add(4)

	assert.Equal(t, "[3..5]", d.String())
	assert.Equal(t, 3, d.Size())
	assert.True(t, d.Contains(4))
	requireCanonical(t, d)
}

func TestIntDomainAddMerge(t *testing.T) {
	d := NewIntRangeDomain(1, 2)
	d.Add(5)
	d.Add(7)

	assert.Equal(t, 4, d.Size())
	assert.Equal(t, "[1..2]U{5}U{7}", d.String())

	d.Add(4)
	assert.Equal(t, "[1..2]U[4..5]U{7}", d.String())

	d.Add(6)
	assert.Equal(t, "[1..2]U[4..7]", d.String())

	d.Add(3)
	assert.Equal(t, "[1..7]", d.String())
	requireCanonical(t, d)

	first := NewIntRangeDomain(1, 3)
	first.Remove(2)
	assert.Equal(t, "{1}U{3}", first.String())
	first.Add(0)
	assert.Equal(t, "[0..1]U{3}", first.String())
	requireCanonical(t, first)
}

func TestIntDomainAddMergeNegative(t *testing.T) {
	d := NewIntRangeDomain(-3, 2)
	d.Add(5)

	assert.Equal(t, 7, d.Size())
	assert.Equal(t, "[-3..2]U{5}", d.String())

	d.Add(4)
	assert.Equal(t, "[-3..2]U[4..5]", d.String())

	d.Add(-5)
	assert.Equal(t, "{-5}U[-3..2]U[4..5]", d.String())

	d.Add(-4)
	assert.Equal(t, "[-5..2]U[4..5]", d.String())
	assert.Equal(t, 10, d.Size())
	requireCanonical(t, d)
}

func TestIntDomainAddIdempotent(t *testing.T) {
	d := NewIntRangeDomain(1, 3)
	d.Add(2)

	assert.Equal(t, 3, d.Size())
	assert.Equal(t, "[1..3]", d.String())
}

func TestIntDomainRemove(t *testing.T) {
	d := NewIntRangeDomain(1, 3)

	assert.True(t, d.Remove(2))
	assert.Equal(t, 2, d.Size())
	assert.Equal(t, "{1}U{3}", d.String())
	assert.False(t, d.Remove(2))
	assert.False(t, d.Contains(2))
	requireCanonical(t, d)
}

func TestIntDomainRemoveSplits(t *testing.T) {
	d := NewIntRangeDomain(1, 7)
	d.Remove(5)
	d.Remove(3)

	assert.Equal(t, "[1..2]U{4}U[6..7]", d.String())
	assert.Equal(t, 5, d.Size())
	requireCanonical(t, d)
}

func TestIntDomainRemoveBounds(t *testing.T) {
	d := NewIntRangeDomain(1, 5)

	assert.True(t, d.Remove(1))
	assert.Equal(t, "[2..5]", d.String())
	assert.True(t, d.Remove(5))
	assert.Equal(t, "[2..4]", d.String())
	requireCanonical(t, d)
}

func TestIntDomainRemoveAt(t *testing.T) {
	d := NewIntRangeDomain(1, 7)
	d.Remove(4)

	assert.Equal(t, 5, d.RemoveAt(3))
	assert.Equal(t, "[1..3]U[6..7]", d.String())
	assert.Panics(t, func() { d.RemoveAt(5) })
	requireCanonical(t, d)
}

func TestIntDomainIndexOfGetRoundtrip(t *testing.T) {
	d := NewIntRangeDomain(1, 9)
	d.Remove(3)
	d.Remove(7)

	for i := 0; i < d.Size(); i++ {
		assert.Equal(t, i, d.IndexOf(d.Get(i)))
	}
	assert.Equal(t, -1, d.IndexOf(3))
	assert.Equal(t, -1, d.IndexOf(0))
	assert.Equal(t, -1, d.IndexOf(10))
}

func TestIntDomainAddAllIsUnion(t *testing.T) {
	d := NewIntRangeDomain(1, 4)
	other := NewIntRangeDomain(3, 8)
	other.Remove(6)

	d.AddAll(other)

	assert.Equal(t, "[1..5]U[7..8]", d.String())
	assert.Equal(t, 7, d.Size())
	requireCanonical(t, d)
}

func TestIntDomainEqualAndClone(t *testing.T) {
	d := NewIntRangeDomain(1, 7)
	d.Remove(4)

	clone, ok := d.Clone().(*IntDomain)
	require.True(t, ok)
	assert.True(t, d.Equal(clone))

	clone.Remove(2)
	assert.False(t, d.Equal(clone))
	assert.True(t, d.Contains(2), "clone must not share storage")

	same := NewIntRangeDomain(1, 7)
	same.Remove(4)
	assert.True(t, d.Equal(same))
}

func TestIntDomainClear(t *testing.T) {
	d := NewIntRangeDomain(1, 5)
	d.Clear()

	assert.True(t, d.IsEmpty())
	assert.Equal(t, "[]", d.String())
	d.Add(9)
	assert.Equal(t, "{9}", d.String())
}

func TestIntDomainIteratorRoundtrip(t *testing.T) {
	d := NewIntRangeDomain(1, 5)
	d.Remove(3)

	it := d.Iterator()
	assert.Equal(t, -1, it.CurrentIndex())
	var values []int
	for i := 0; it.HasNext(); i++ {
		values = append(values, it.Next())
		assert.Equal(t, i, it.CurrentIndex())
	}
	assert.Equal(t, []int{1, 2, 4, 5}, values)
	assert.Panics(t, func() { it.Next() })

	it.Reset()
	assert.Equal(t, -1, it.CurrentIndex())
	assert.Equal(t, 1, it.Next())
}

func TestIntDomainIteratorRemoveSplit(t *testing.T) {
	d := NewIntRangeDomain(1, 3)
	it := d.Iterator()

	assert.Equal(t, 1, it.Next())
	assert.Equal(t, 2, it.Next())
	it.Remove()

	assert.Equal(t, "{1}U{3}", d.String())
	assert.True(t, it.HasNext())
	assert.Equal(t, 3, it.Next())
	assert.False(t, it.HasNext())
	requireCanonical(t, d)
}

func TestIntDomainIteratorRemoveFirst(t *testing.T) {
	d := NewIntRangeDomain(1, 3)
	it := d.Iterator()

	assert.Equal(t, 1, it.Next())
	it.Remove()

	assert.Equal(t, "[2..3]", d.String())
	assert.Equal(t, 2, it.Next())
	assert.Equal(t, 3, it.Next())
	assert.False(t, it.HasNext())
}

func TestIntDomainIteratorRemoveSingletonInterval(t *testing.T) {
	d := NewIntRangeDomain(1, 5)
	d.Remove(2)
	// {1}U[3..5]
	it := d.Iterator()

	assert.Equal(t, 1, it.Next())
	it.Remove()

	assert.Equal(t, "[3..5]", d.String())
	assert.Equal(t, 3, it.Next())
	assert.Equal(t, 4, it.Next())
	assert.Equal(t, 5, it.Next())
	assert.False(t, it.HasNext())
}

func TestIntDomainIteratorRemoveLast(t *testing.T) {
	d := NewIntRangeDomain(1, 3)
	it := d.Iterator()

	for it.HasNext() {
		it.Next()
	}
	it.Remove()

	assert.Equal(t, "[1..2]", d.String())
	assert.False(t, it.HasNext())
}

func TestIntDomainIteratorRemoveAll(t *testing.T) {
	d := NewIntRangeDomain(1, 4)
	it := d.Iterator()

	for it.HasNext() {
		it.Next()
		it.Remove()
	}

	assert.True(t, d.IsEmpty())
	requireCanonical(t, d)
}

func TestIntDomainIteratorRemoveBeforeNext(t *testing.T) {
	it := NewIntRangeDomain(1, 3).Iterator()

	assert.PanicsWithValue(t, ErrIteratorState, func() { it.Remove() })
}

func TestIntDomainRandomizedInvariants(t *testing.T) {
	d := NewIntDomain()
	reference := map[int]bool{}
	ops := []int{3, 5, 4, 9, 8, 1, -2, 14, 7, 6, 0, -1, 11, 2, 10}
	for _, v := range ops {
		d.Add(v)
		reference[v] = true
		requireCanonical(t, d)
	}
	for _, v := range []int{5, 9, 3, -2, 14, 0} {
		assert.True(t, d.Remove(v))
		delete(reference, v)
		requireCanonical(t, d)
	}
	assert.Equal(t, len(reference), d.Size())
	for v := range reference {
		assert.True(t, d.Contains(v), "missing %d", v)
	}
}
