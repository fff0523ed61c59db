package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferContentBounds(t *testing.T) {
	t.Parallel()

	t.Run("strips fixed delimiters per component", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "http://user@example.com:8080/a/b?q=1#frag", modeURI))

		assert.Equal(t, "http", b.contentString(compScheme))
		assert.Equal(t, "user", b.contentString(compUserinfo))
		assert.Equal(t, "example.com", b.contentString(compHost))
		assert.Equal(t, "8080", b.contentString(compPort))
		assert.Equal(t, "/a/b", b.contentString(compPath))
		assert.Equal(t, "q=1", b.contentString(compQuery))
		assert.Equal(t, "frag", b.contentString(compFragment))
	})

	t.Run("strips brackets from a bracketed host with a trailing port", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "http://[::1]:8080/", modeURI))

		assert.Equal(t, "::1", b.contentString(compHost))
		assert.Equal(t, "8080", b.contentString(compPort))
		assert.Equal(t, hostIPv6, b.hKind)
	})

	t.Run("strips brackets from a bracketed host with no port", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "http://[::1]/", modeURI))

		assert.Equal(t, "::1", b.contentString(compHost))
		assert.False(t, b.has(flagHasPort))
	})

	t.Run("absent components have an empty content span", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "mailto:a@b.com", modeURI))

		assert.Empty(t, b.contentString(compUserinfo))
		assert.Empty(t, b.contentString(compHost))
		assert.Empty(t, b.contentString(compQuery))
		assert.Empty(t, b.contentString(compFragment))
	})
}

func TestBufferSplice(t *testing.T) {
	t.Parallel()

	t.Run("resizeComponent grows and shrinks in place, shifting later components", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "http://host/path?q=1", modeURI))

		span, err := b.resizeComponent(compHost, len("longerhostname"))
		require.NoError(t, err)
		copy(span, "longerhostname")

		assert.Equal(t, "longerhostname", b.contentString(compHost))
		assert.Equal(t, "/path", b.contentString(compPath))
		assert.Equal(t, "q=1", b.contentString(compQuery))
		assert.Equal(t, "http://longerhostname/path?q=1", b.String())
	})

	t.Run("ensureCapacity grows geometrically rather than exactly", func(t *testing.T) {
		b := newBuffer(0)
		require.NoError(t, parseInto(b, "http://h/", modeURI))
		before := b.capacity()

		_, err := b.resizeComponent(compPath, before+1)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, b.capacity(), before*2)
	})

	t.Run("a splice that would exceed maxSize fails with ErrTooLarge", func(t *testing.T) {
		b := newBuffer(16)
		require.NoError(t, parseInto(b, "http://h/", modeURI))

		_, err := b.resizeComponent(compPath, 64)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}
