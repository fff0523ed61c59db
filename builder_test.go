package uri

import (
	"testing"

	"github.com/go-uriref/uriref/ipaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("chains every With* call into a complete reference", func(t *testing.T) {
		o, err := NewBuilder().
			WithScheme("https").
			WithUserinfo("alice", "pw", true).
			WithHost("example.com").
			WithPort(8443).
			WithPath("/a/b").
			WithQuery("x=1").
			WithFragment("frag").
			Build()
		require.NoError(t, err)
		assert.Equal(t, "https://alice:pw@example.com:8443/a/b?x=1#frag", o.String())
	})

	t.Run("short-circuits on the first error and reports it via Err", func(t *testing.T) {
		b := NewBuilder().WithScheme("http").WithPort(0)
		b = b.WithPath("\x7f") // a raw DEL byte is not a valid pchar

		_, err := b.Build()
		require.Error(t, err)
		assert.Equal(t, err, b.Err())
	})

	t.Run("WithHostIPv4/IPv6 install address literals", func(t *testing.T) {
		v4, err := ipaddr.ParseIPv4("10.0.0.1")
		require.NoError(t, err)
		o, err := NewBuilder().WithScheme("http").WithHostIPv4(v4).Build()
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.1", o.String())

		v6, err := ipaddr.ParseIPv6("::1")
		require.NoError(t, err)
		o6, err := NewBuilder().WithScheme("http").WithHostIPv6(v6).Build()
		require.NoError(t, err)
		assert.Equal(t, "http://[::1]", o6.String())
	})
}
