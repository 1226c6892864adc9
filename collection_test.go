package sift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalars(vals ...any) *Collection {
	items := make([]Wrapper, len(vals))
	for i, v := range vals {
		items[i] = NewScalar(v)
	}
	return NewCollection(items)
}

func TestCollectionVal(t *testing.T) {
	c := scalars(1, 2, 3)
	v, err := c.Val()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, v)

	_, err = NullCollection().Val()
	assert.ErrorIs(t, err, ErrNullValue)

	// A null item poisons extraction of the whole collection.
	mixed := NewCollection([]Wrapper{NewScalar(1), NullScalar()})
	_, err = mixed.Val()
	assert.ErrorIs(t, err, ErrNullValue)
}

func TestCollectionItem(t *testing.T) {
	c := scalars("a", "b", "c")

	v, err := c.Item(1).Val()
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = c.Item(-1).Val()
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	assert.True(t, c.Item(9).IsNull())
	assert.True(t, NullCollection().Item(0).IsNull())

	first, err := c.First().Val()
	require.NoError(t, err)
	assert.Equal(t, "a", first)
}

func TestCollectionSlice(t *testing.T) {
	c := scalars(1, 2, 3, 4)

	v, err := c.Slice(1, 3).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{2, 3}, v)

	v, err = c.Slice(2, End).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{3, 4}, v)

	// Bounds clamp instead of erroring.
	v, err = c.Slice(0, 99).Val()
	require.NoError(t, err)
	assert.Len(t, v, 4)
}

func TestEach(t *testing.T) {
	c := scalars(1, 2)

	v, err := c.Each(Q.Mul(10)).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20}, v)

	t.Run("multiple funcs build tuples", func(t *testing.T) {
		v, err := c.Each(Q.Mul(10), Q.Sub(1)).Val()
		require.NoError(t, err)
		assert.Equal(t, []any{[]any{10, 0}, []any{20, 1}}, v)
	})

	t.Run("null collection is inert", func(t *testing.T) {
		assert.True(t, NullCollection().Each(Q.Mul(10)).IsNull())
	})
}

func TestFilterKeepsOrder(t *testing.T) {
	c := scalars(5, 1, 4, 2, 3)

	v, err := c.Filter(Q.Gt(2)).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{5, 4, 3}, v)

	assert.True(t, NullCollection().Filter(Q.Gt(2)).IsNull())
}

func TestTakeDropWhile(t *testing.T) {
	// Monotonic non-increasing predicate: takewhile + dropwhile partition.
	c := scalars(10, 9, 3, 2, 8)
	pred := Q.Gt(5)

	taken, err := c.TakeWhile(pred).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{10, 9}, taken)

	dropped, err := c.DropWhile(pred).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{3, 2, 8}, dropped)

	assert.Equal(t, c.Len(), len(taken.([]any))+len(dropped.([]any)))
}

func TestCount(t *testing.T) {
	n, err := scalars(1, 2, 3).Count().Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = NullCollection().Count().Int()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAllAnyNone(t *testing.T) {
	all, _ := scalars(1, 2).All().Bool()
	assert.True(t, all)

	all, _ = scalars(1, 0).All().Bool()
	assert.False(t, all)

	some, _ := scalars(0, 1).Any().Bool()
	assert.True(t, some)

	some, _ = scalars(0, 0).Any().Bool()
	assert.False(t, some)

	none, _ := scalars(0, 0).None().Bool()
	assert.True(t, none)

	// Empty collection: all and none hold, any does not.
	empty := NewCollection(nil)
	all, _ = empty.All().Bool()
	assert.True(t, all)
	some, _ = empty.Any().Bool()
	assert.False(t, some)
}

func TestZip(t *testing.T) {
	c1 := scalars(1, 2)
	c2 := scalars(3, 4)

	v, err := c1.Zip(c2).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{1, 3}, []any{2, 4}}, v)

	t.Run("length mismatch is explicit", func(t *testing.T) {
		z := c1.Zip(scalars(1))
		require.True(t, z.IsNull())
		_, err := z.Val()
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})
}

func TestDictZip(t *testing.T) {
	vals := scalars("1", "2", "3")

	v, err := vals.DictZip([]string{"a", "b", "c"}).Val()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "2", "c": "3"}, v)

	t.Run("collection keys", func(t *testing.T) {
		v, err := vals.DictZip(scalars("x", "y", "z")).Val()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": "1", "y": "2", "z": "3"}, v)
	})

	t.Run("length mismatch is explicit", func(t *testing.T) {
		d := vals.DictZip([]string{"a", "b"})
		require.True(t, d.IsNull())
		_, err := d.Val()
		assert.ErrorIs(t, err, ErrLengthMismatch)
		assert.ErrorIs(t, err, ErrNullValue)
	})
}

func TestCollectionDump(t *testing.T) {
	c := scalars(1, 2)

	v, err := c.Dump(map[string]any{"x2": Q.Mul(2)}).Val()
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"x2": 2},
		map[string]any{"x2": 4},
	}, v)
}

func TestCollectionStrings(t *testing.T) {
	out, err := scalars("a", 1).Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "1"}, out)
}

func TestCollectionRequire(t *testing.T) {
	c := scalars(1, 2)

	got, err := c.Require(func(col *Collection) bool { return col.Len() == 2 }, "")
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = NullCollection().Require(func(any) any { return true }, "no match")
	assert.ErrorIs(t, err, ErrNullValue)
}
