package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemeID(t *testing.T) {
	t.Parallel()

	t.Run("recognizes well-known schemes and renders their names back", func(t *testing.T) {
		for name, want := range map[string]SchemeID{
			"ftp":   SchemeFTP,
			"file":  SchemeFile,
			"http":  SchemeHTTP,
			"https": SchemeHTTPS,
			"ws":    SchemeWS,
			"wss":   SchemeWSS,
		} {
			id := schemeIDFor(name)
			assert.Equal(t, want, id)
			assert.Equal(t, name, id.String())
		}
	})

	t.Run("an unrecognized scheme reports SchemeUnknown and an empty name", func(t *testing.T) {
		assert.Equal(t, SchemeUnknown, schemeIDFor("urn"))
		assert.Empty(t, SchemeUnknown.String())
	})
}

func TestDefaultPortForScheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(80), defaultPortForScheme("http"))
	assert.Equal(t, uint16(80), defaultPortForScheme("HTTP"))
	assert.Equal(t, uint16(443), defaultPortForScheme("https"))
	assert.Equal(t, uint16(389), defaultPortForScheme("ldap"))
	assert.Equal(t, uint16(0), defaultPortForScheme("urn"))
}

func TestUsesDNSHostValidation(t *testing.T) {
	t.Parallel()

	assert.True(t, UsesDNSHostValidation("http"))
	assert.True(t, UsesDNSHostValidation("mailto"))
	assert.False(t, UsesDNSHostValidation("urn"))
}

func TestSchemeHash(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic for the same input", func(t *testing.T) {
		assert.Equal(t, schemeHash("http://host/a"), schemeHash("http://host/a"))
	})

	t.Run("differs for different input", func(t *testing.T) {
		assert.NotEqual(t, schemeHash("http://host/a"), schemeHash("http://host/b"))
	})
}
