package ipaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well-formed dotted quad", func(t *testing.T) {
		a, err := ParseIPv4("192.168.1.1")
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.1", a.String())
		assert.Equal(t, [4]byte{192, 168, 1, 1}, a.ToBytes())
	})

	t.Run("rejects an octet with a leading zero", func(t *testing.T) {
		_, err := ParseIPv4("192.168.01.1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIPv4)
	})

	t.Run("rejects an octet greater than 255", func(t *testing.T) {
		_, err := ParseIPv4("192.168.1.256")
		require.Error(t, err)
	})

	t.Run("rejects anything without exactly four octets", func(t *testing.T) {
		_, err := ParseIPv4("192.168.1")
		require.Error(t, err)
	})

	t.Run("IPv4FromBytes round-trips through ToUint", func(t *testing.T) {
		a := IPv4FromBytes([4]byte{10, 0, 0, 1})
		assert.Equal(t, uint32(10)<<24|1, a.ToUint())
	})
}

func TestParseIPv6(t *testing.T) {
	t.Parallel()

	t.Run("renders the RFC 5952 canonical compressed form", func(t *testing.T) {
		a, err := ParseIPv6("2001:0db8:0000:0000:0000:0000:0000:0001")
		require.NoError(t, err)
		assert.Equal(t, "2001:db8::1", a.String())
	})

	t.Run("accepts an embedded IPv4 tail", func(t *testing.T) {
		a, err := ParseIPv6("::ffff:192.0.2.1")
		require.NoError(t, err)
		assert.NotEmpty(t, a.String())
	})

	t.Run("rejects a plain IPv4 address", func(t *testing.T) {
		_, err := ParseIPv6("192.168.1.1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIPv6)
	})

	t.Run("IsLoopback reports ::1", func(t *testing.T) {
		a, err := ParseIPv6("::1")
		require.NoError(t, err)
		assert.True(t, a.IsLoopback())
	})
}

func TestParseIPFuture(t *testing.T) {
	t.Parallel()

	t.Run("accepts a hex version and an unreserved address", func(t *testing.T) {
		f, err := ParseIPFuture("v1.custom-addr")
		require.NoError(t, err)
		assert.Equal(t, "1", f.Version)
		assert.Equal(t, "custom-addr", f.Address)
		assert.Equal(t, "v1.custom-addr", f.String())
	})

	t.Run("accepts an uppercase 'V'", func(t *testing.T) {
		_, err := ParseIPFuture("V2.x")
		require.NoError(t, err)
	})

	t.Run("rejects a missing version/address separator", func(t *testing.T) {
		_, err := ParseIPFuture("v1x")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIPFuture)
	})

	t.Run("rejects a non-hex version digit", func(t *testing.T) {
		_, err := ParseIPFuture("vZ.addr")
		require.Error(t, err)
	})

	t.Run("rejects a disallowed character in the address part", func(t *testing.T) {
		_, err := ParseIPFuture("v1.addr with spaces")
		require.Error(t, err)
	})
}
