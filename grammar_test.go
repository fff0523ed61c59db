package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPrimitives(t *testing.T) {
	t.Parallel()

	t.Run("Delim consumes one matching byte", func(t *testing.T) {
		c := NewCursor([]byte(":rest"))
		b, ok := c.Delim(newCharClass().add(':'))
		require.True(t, ok)
		assert.Equal(t, byte(':'), b)
		assert.Equal(t, 1, c.Offset())
		assert.Equal(t, "rest", string(c.Remaining()))
	})

	t.Run("Delim leaves the cursor untouched on mismatch", func(t *testing.T) {
		c := NewCursor([]byte("x"))
		_, ok := c.Delim(newCharClass().add(':'))
		assert.False(t, ok)
		assert.Equal(t, 0, c.Offset())
	})

	t.Run("Literal consumes an exact prefix", func(t *testing.T) {
		c := NewCursor([]byte("http://x"))
		assert.True(t, c.Literal("http"))
		assert.Equal(t, 4, c.Offset())
		assert.False(t, c.Literal("ftp"))
		assert.Equal(t, 4, c.Offset(), "a failed Literal must not advance")
	})

	t.Run("Token requires at least one matching byte", func(t *testing.T) {
		c := NewCursor([]byte("abc123"))
		tok, ok := c.Token(alphaClass)
		require.True(t, ok)
		assert.Equal(t, "abc", tok)

		_, ok = c.Token(alphaClass)
		assert.False(t, ok, "no leading alpha byte left to consume")
	})

	t.Run("TokenAllowEmpty never fails", func(t *testing.T) {
		c := NewCursor([]byte("123"))
		tok := c.TokenAllowEmpty(alphaClass)
		assert.Equal(t, "", tok)
		assert.Equal(t, 0, c.Offset(), "an empty token must not advance the cursor")
	})

	t.Run("Repeat enforces a bound on successful applications", func(t *testing.T) {
		c := NewCursor([]byte("aaab"))
		n, ok := c.Repeat(1, 2, func(b byte) bool { return b == 'a' })
		require.True(t, ok)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, c.Offset())
	})

	t.Run("Repeat rewinds when the minimum count is not met", func(t *testing.T) {
		c := NewCursor([]byte("b"))
		_, ok := c.Repeat(1, -1, func(b byte) bool { return b == 'a' })
		assert.False(t, ok)
		assert.Equal(t, 0, c.Offset())
	})

	t.Run("Mark and Reset rewind to a captured position", func(t *testing.T) {
		c := NewCursor([]byte("abc"))
		mark := c.Mark()
		c.advance(2)
		c.Reset(mark)
		assert.Equal(t, 0, c.Offset())
	})
}

func TestCombinators(t *testing.T) {
	t.Parallel()

	digitToken := func(c *Cursor) (string, bool) { return c.Token(digitClass) }

	t.Run("Optional reports failure without consuming input", func(t *testing.T) {
		c := NewCursor([]byte("abc"))
		_, ok := Optional(c, digitToken)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Offset())
	})

	t.Run("Optional passes through a successful rule", func(t *testing.T) {
		c := NewCursor([]byte("123abc"))
		v, ok := Optional(c, digitToken)
		require.True(t, ok)
		assert.Equal(t, "123", v)
		assert.Equal(t, 3, c.Offset())
	})

	t.Run("Sequence rewinds entirely on a later failure", func(t *testing.T) {
		c := NewCursor([]byte("123:"))
		ok := Sequence(c,
			func(c *Cursor) bool { _, ok := c.Token(digitClass); return ok },
			func(c *Cursor) bool { return c.Literal("@") }, // fails: next byte is ':'
		)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Offset(), "a failing Sequence must restore the starting position")
	})

	t.Run("Sequence commits when every rule succeeds", func(t *testing.T) {
		c := NewCursor([]byte("123:"))
		ok := Sequence(c,
			func(c *Cursor) bool { _, ok := c.Token(digitClass); return ok },
			func(c *Cursor) bool { return c.Literal(":") },
		)
		assert.True(t, ok)
		assert.Equal(t, 4, c.Offset())
	})

	t.Run("Alternative tries rules in order and commits to the first match", func(t *testing.T) {
		c := NewCursor([]byte("https"))
		var matched string
		ok := Alternative(c,
			func(c *Cursor) bool { return c.Literal("http") && func() bool { matched = "http"; return true }() },
			func(c *Cursor) bool { return c.Literal("https") && func() bool { matched = "https"; return true }() },
		)
		assert.True(t, ok)
		assert.Equal(t, "http", matched, "the first matching rule wins even if a later one would also match")
	})

	t.Run("Alternative fails and rewinds when no rule matches", func(t *testing.T) {
		c := NewCursor([]byte("ftp"))
		ok := Alternative(c,
			func(c *Cursor) bool { return c.Literal("http") },
			func(c *Cursor) bool { return c.Literal("ws") },
		)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Offset())
	})

	t.Run("Squelch discards the value but keeps the side effect", func(t *testing.T) {
		c := NewCursor([]byte("123"))
		ok := Squelch(c, digitToken)
		assert.True(t, ok)
		assert.Equal(t, 3, c.Offset())
	})
}
