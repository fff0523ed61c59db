package uri

import (
	"errors"
	"fmt"
)

// Error is the marker interface implemented by every error this package
// returns, so that callers can type-switch on package-level errors without
// pulling in the concrete types.
type Error interface {
	error
}

// Sentinel errors, one per error kind in the taxonomy plus one per
// component. Use errors.Is to test for one: every error built here joins
// its sentinel with a formatted detail via errors.Join, and where a
// component rule wraps a lower-level failure (joinSentinel), the result
// satisfies errors.Is against both the component sentinel (e.g.
// ErrInvalidHost) and the lower-level one (e.g. ErrInvalid).
var (
	ErrNeedMore        = Error(errors.New("truncated input, more bytes might complete a valid parse"))
	ErrInvalid         = Error(errors.New("syntactically invalid URI reference"))
	ErrInvalidScheme   = Error(errors.New("invalid scheme"))
	ErrInvalidUser     = Error(errors.New("invalid userinfo"))
	ErrInvalidHost     = Error(errors.New("invalid host"))
	ErrInvalidPort     = Error(errors.New("invalid port"))
	ErrInvalidPath     = Error(errors.New("invalid path"))
	ErrInvalidQuery    = Error(errors.New("invalid query"))
	ErrInvalidFrag     = Error(errors.New("invalid fragment"))
	ErrInvalidDNSName  = Error(errors.New("invalid DNS hostname"))
	ErrInvalidEncoding = Error(errors.New("invalid percent-encoding"))
	ErrInvalidOctet    = Error(errors.New("percent-encoded octet decodes to a disallowed byte"))
	ErrInvalidPart     = Error(errors.New("setter input does not conform to the component grammar"))
	ErrNotFound        = Error(errors.New("key not found"))
	ErrNotABase        = Error(errors.New("base URI is not absolute"))
	ErrTooLarge        = Error(errors.New("operation would exceed the maximum buffer size"))
	ErrOutOfRange      = Error(errors.New("index out of range"))
)

// ErrorKind classifies a parse or mutation failure, mirroring the taxonomy
// in the specification.
type ErrorKind uint8

const (
	KindNeedMore ErrorKind = iota
	KindMismatch
	KindInvalid
	KindInvalidEncoding
	KindInvalidPart
	KindNotFound
	KindNotABase
	KindTooLarge
	KindOutOfRange
)

// ParseError reports a parse or mutation failure at a byte offset in the
// original input, the way a cursor-based parser needs to in order to
// produce actionable diagnostics.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.err }

func newParseError(kind ErrorKind, offset int, sentinel error, format string, args ...any) error {
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		err:    errors.Join(sentinel, fmt.Errorf(format, args...)),
	}
}

// joinSentinel attaches an additional, more specific sentinel (e.g.
// ErrInvalidHost) to an error already produced by a lower-level rule (e.g.
// an ErrInvalidEncoding from validateEncoded), preserving its Kind and
// Offset if it is a *ParseError.
func joinSentinel(extra Error, err error) error {
	if pe, ok := err.(*ParseError); ok {
		return &ParseError{Kind: pe.Kind, Offset: pe.Offset, err: errors.Join(extra, pe.err)}
	}
	return errors.Join(extra, err)
}
