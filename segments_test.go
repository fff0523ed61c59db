package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsView(t *testing.T) {
	t.Parallel()

	v, err := ParseURIReference("http://host/a/b%2Fc/d")
	require.NoError(t, err)
	seg := v.Segments()

	assert.Equal(t, 3, seg.Len())
	front, ok := seg.Front()
	require.True(t, ok)
	assert.Equal(t, "a", front)

	mid, ok := seg.At(1)
	require.True(t, ok)
	assert.Equal(t, "b/c", mid, "a percent-encoded '/' inside a segment is not a separator")

	back, ok := seg.Back()
	require.True(t, ok)
	assert.Equal(t, "d", back)

	assert.Equal(t, []string{"a", "b/c", "d"}, seg.All())

	_, ok = seg.At(99)
	assert.False(t, ok)
}

func TestSegmentsEditor(t *testing.T) {
	t.Parallel()

	t.Run("Replace overwrites one segment in place", func(t *testing.T) {
		o, err := ParseOwner("http://host/a/b/c")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Replace(1, "x y"))
		assert.Equal(t, "/a/x%20y/c", o.EncodedPath())
	})

	t.Run("Insert splices a new segment before index i", func(t *testing.T) {
		o, err := ParseOwner("http://host/a/c")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Insert(1, "b"))
		assert.Equal(t, "/a/b/c", o.EncodedPath())
	})

	t.Run("PushBack appends at the end", func(t *testing.T) {
		o, err := ParseOwner("http://host/a")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().PushBack("b"))
		assert.Equal(t, "/a/b", o.EncodedPath())
	})

	t.Run("PushBack on an empty path creates the first segment", func(t *testing.T) {
		o, err := ParseOwner("http://host")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().PushBack("a"))
		assert.Equal(t, "/a", o.EncodedPath())
	})

	t.Run("Erase removes a segment and its separator", func(t *testing.T) {
		o, err := ParseOwner("http://host/a/b/c")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Erase(1))
		assert.Equal(t, "/a/c", o.EncodedPath())
	})

	t.Run("PopBack removes the last segment", func(t *testing.T) {
		o, err := ParseOwner("http://host/a/b")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().PopBack())
		assert.Equal(t, "/a", o.EncodedPath())
	})

	t.Run("PopBack on an empty path fails with ErrOutOfRange", func(t *testing.T) {
		o, err := ParseOwner("http://host")
		require.NoError(t, err)
		err = o.MutableSegments().PopBack()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("Clear empties the path entirely", func(t *testing.T) {
		o, err := ParseOwner("http://host/a/b/c")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Clear())
		assert.Empty(t, o.EncodedPath())
		assert.Equal(t, 0, o.NumSegments())
	})

	t.Run("Assign replaces the whole path from a slice of values", func(t *testing.T) {
		o, err := ParseOwner("http://host/old")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Assign([]string{"x", "y z"}, true))
		assert.Equal(t, "/x/y%20z", o.EncodedPath())
		assert.Equal(t, 2, o.NumSegments())
	})

	t.Run("inserting a colon-bearing first segment on a schemeless authority-less path gets a ./ guard", func(t *testing.T) {
		o, err := ParseOwner("a/b")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Insert(0, "c:d"))
		assert.Equal(t, "./c:d/a/b", o.EncodedPath())
		_, err = ParseURIReference(o.String())
		assert.NoError(t, err, "the guarded path must still parse back as a relative-ref, not a URI with scheme %q", "c:d")
	})

	t.Run("the ./ guard is not applied when an authority is present", func(t *testing.T) {
		o, err := ParseOwner("http://host/b")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Insert(0, "c:d"))
		assert.Equal(t, "/c:d/b", o.EncodedPath())
	})

	t.Run("the ./ guard is not applied to an absolute path", func(t *testing.T) {
		o, err := ParseOwner("/b")
		require.NoError(t, err)
		require.NoError(t, o.MutableSegments().Insert(0, "c:d"))
		assert.Equal(t, "/c:d/b", o.EncodedPath())
	})
}
