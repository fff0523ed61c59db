package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Parallel()

	t.Run("no overrides returns the shared package default without allocating a copy", func(t *testing.T) {
		o, free := applyOptions(nil)
		defer free(o)
		assert.Same(t, &packageLevelDefaults, o)
	})

	t.Run("one override borrows a private copy, leaving the default untouched", func(t *testing.T) {
		before := packageLevelDefaults
		o, free := applyOptions([]Option{WithMaxSize(128)})
		defer free(o)

		assert.NotSame(t, &packageLevelDefaults, o)
		assert.Equal(t, uint32(128), o.maxSize)
		assert.Equal(t, before, packageLevelDefaults)
	})

	t.Run("WithSpaceAsPlus/WithURIReference set their fields", func(t *testing.T) {
		o, free := applyOptions([]Option{
			WithSpaceAsPlus(true),
			WithURIReference(true),
		})
		defer free(o)

		assert.True(t, o.spaceAsPlus)
		assert.True(t, o.withURIReference)
	})
}

func TestWithURIReferenceRelaxesParseURI(t *testing.T) {
	t.Parallel()

	_, err := ParseURI("/just/a/path")
	require.Error(t, err, "ParseURI requires a scheme by default")

	v, err := ParseURI("/just/a/path", WithURIReference(true))
	require.NoError(t, err)
	assert.False(t, v.HasScheme())
	assert.Equal(t, "/just/a/path", v.EncodedPath())

	_, err = ParseAbsoluteURI("//host/path", WithURIReference(true))
	require.NoError(t, err)
}

func TestSetDefaultOptions(t *testing.T) {
	saved := packageLevelDefaults
	t.Cleanup(func() { packageLevelDefaults = saved })

	SetDefaultOptions(WithMaxSize(4096))

	o, free := applyOptions(nil)
	defer free(o)
	require.Equal(t, uint32(4096), o.maxSize)
}

func TestWithMaxSizeAppliedToParsing(t *testing.T) {
	t.Parallel()

	_, err := ParseURI("http://host/" /* short path */, WithMaxSize(8))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}
