package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	t.Run("round-trips reserved bytes through percent-encoding", func(t *testing.T) {
		enc := encodeString("a b/c", unreservedClass, encodeOptions{})
		assert.Equal(t, "a%20b%2Fc", enc)

		dec, err := decode(enc, encodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, "a b/c", dec)
	})

	t.Run("space as plus only applies when enabled", func(t *testing.T) {
		enc := encodeString("a b", unreservedClass, encodeOptions{spaceAsPlus: true})
		assert.Equal(t, "a+b", enc)

		dec, err := decode("a+b", encodeOptions{spaceAsPlus: true})
		require.NoError(t, err)
		assert.Equal(t, "a b", dec)

		dec2, err := decode("a+b", encodeOptions{spaceAsPlus: false})
		require.NoError(t, err)
		assert.Equal(t, "a+b", dec2)
	})

	t.Run("rejects a malformed percent triplet", func(t *testing.T) {
		_, err := decode("100%", encodeOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEncoding)

		_, err = decode("100%ZZ", encodeOptions{})
		require.Error(t, err)
	})

	t.Run("rejects a percent-encoded NUL byte", func(t *testing.T) {
		_, err := decode("%00", encodeOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidOctet)
	})

	t.Run("decodedView lazily walks without allocating the full string", func(t *testing.T) {
		v := newDecodedView("a%20b%2Fc", encodeOptions{})
		assert.Equal(t, 5, v.Len())
		front, ok := v.Front()
		require.True(t, ok)
		assert.Equal(t, byte('a'), front)
		back, ok := v.Back()
		require.True(t, ok)
		assert.Equal(t, byte('c'), back)
		assert.Equal(t, "a b/c", v.String())
	})

	t.Run("CompareDecoded orders lexicographically on decoded bytes", func(t *testing.T) {
		a := newDecodedView("a%20b", encodeOptions{})
		b := newDecodedView("a b", encodeOptions{})
		assert.Equal(t, 0, a.CompareDecoded(b))

		c := newDecodedView("a%20c", encodeOptions{})
		assert.Equal(t, -1, a.CompareDecoded(c))
		assert.Equal(t, 1, c.CompareDecoded(a))
	})

	t.Run("CompareRaw escapes '%' in the raw operand before comparing", func(t *testing.T) {
		a := newDecodedView("100%25", encodeOptions{})
		assert.Equal(t, 0, a.CompareRaw("100%"))
	})
}
