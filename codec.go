package uri

import (
	"strings"
)

const upperHex = "0123456789ABCDEF"

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// encodeOptions mirrors the single option the spec calls out for the
// percent-encoding engine.
type encodeOptions struct {
	spaceAsPlus bool
}

// encodedLen returns the length encode(s, allowed, opts) would produce,
// without materializing the output.
func encodedLen(s []byte, allowed charClass, opts encodeOptions) int {
	n := 0
	for _, b := range s {
		if opts.spaceAsPlus && b == ' ' {
			n++
			continue
		}
		if allowed.contains(b) {
			n++
		} else {
			n += 3
		}
	}
	return n
}

// encode percent-encodes every byte of s not in allowed, using uppercase
// hex digits, appending to dst and returning the grown slice.
func encode(dst []byte, s []byte, allowed charClass, opts encodeOptions) []byte {
	for _, b := range s {
		switch {
		case opts.spaceAsPlus && b == ' ':
			dst = append(dst, '+')
		case allowed.contains(b):
			dst = append(dst, b)
		default:
			dst = append(dst, '%', upperHex[b>>4], upperHex[b&0xF])
		}
	}
	return dst
}

func encodeString(s string, allowed charClass, opts encodeOptions) string {
	if encodedLen([]byte(s), allowed, opts) == len(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(encodedLen([]byte(s), allowed, opts))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case opts.spaceAsPlus && b == ' ':
			sb.WriteByte('+')
		case allowed.contains(b):
			sb.WriteByte(b)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[b>>4])
			sb.WriteByte(upperHex[b&0xF])
		}
	}
	return sb.String()
}

// decodedLen returns the length decode(s, opts) would produce, or an error
// if s contains a malformed percent-encoded sequence.
func decodedLen(s string, opts encodeOptions) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			n++
			continue
		}
		if i+2 >= len(s) || !isHexDig(s[i+1]) || !isHexDig(s[i+2]) {
			return 0, newParseError(KindInvalidEncoding, i, ErrInvalidEncoding,
				"expected '%%' to be followed by two hex digits, near %q", s[i:min(i+3, len(s))])
		}
		i += 2
		n++
	}
	return n, nil
}

// decode reverses percent-encoding: every "%HH" triplet yields one byte,
// '+' maps to space iff opts.spaceAsPlus, any other byte passes through.
func decode(s string, opts encodeOptions) (string, error) {
	hasPercent := strings.IndexByte(s, '%') >= 0
	hasPlus := opts.spaceAsPlus && strings.IndexByte(s, '+') >= 0
	if !hasPercent && !hasPlus {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%':
			if i+2 >= len(s) || !isHexDig(s[i+1]) || !isHexDig(s[i+2]) {
				return "", newParseError(KindInvalidEncoding, i, ErrInvalidEncoding,
					"expected '%%' to be followed by two hex digits, near %q", s[i:min(i+3, len(s))])
			}
			b := unhex(s[i+1])<<4 | unhex(s[i+2])
			if b == 0 {
				return "", newParseError(KindInvalidEncoding, i, ErrInvalidOctet,
					"percent-encoded NUL byte is never allowed")
			}
			sb.WriteByte(b)
			i += 2
		case opts.spaceAsPlus && s[i] == '+':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// decodedView is a lazy, read-only, non-allocating view over a percent
// encoded string. It never materializes the decoded bytes unless String is
// called.
type decodedView struct {
	encoded string
	opts    encodeOptions
}

func newDecodedView(encoded string, opts encodeOptions) decodedView {
	return decodedView{encoded: encoded, opts: opts}
}

// Len returns the decoded length in O(n).
func (d decodedView) Len() int {
	n, err := decodedLen(d.encoded, d.opts)
	if err != nil {
		return 0
	}
	return n
}

// String materializes the decoded string.
func (d decodedView) String() string {
	s, err := decode(d.encoded, d.opts)
	if err != nil {
		return ""
	}
	return s
}

// At returns the i-th decoded byte by forward scan. Sub-views walk the
// encoded string lazily rather than allocate the full decoded form.
func (d decodedView) At(i int) (byte, bool) {
	idx := 0
	for p := 0; p < len(d.encoded); {
		var b byte
		switch {
		case d.encoded[p] == '%' && p+2 < len(d.encoded) && isHexDig(d.encoded[p+1]) && isHexDig(d.encoded[p+2]):
			b = unhex(d.encoded[p+1])<<4 | unhex(d.encoded[p+2])
			p += 3
		case d.opts.spaceAsPlus && d.encoded[p] == '+':
			b = ' '
			p++
		default:
			b = d.encoded[p]
			p++
		}
		if idx == i {
			return b, true
		}
		idx++
	}
	return 0, false
}

// Front returns the first decoded byte.
func (d decodedView) Front() (byte, bool) { return d.At(0) }

// Back returns the last decoded byte.
func (d decodedView) Back() (byte, bool) {
	n := d.Len()
	if n == 0 {
		return 0, false
	}
	return d.At(n - 1)
}

// CompareDecoded performs a three-way comparison against another decoded
// view without allocating.
func (d decodedView) CompareDecoded(other decodedView) int {
	n, m := d.Len(), other.Len()
	for i := 0; i < n && i < m; i++ {
		a, _ := d.At(i)
		b, _ := other.At(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case n < m:
		return -1
	case n > m:
		return 1
	default:
		return 0
	}
}

// CompareRaw compares the decoded view against a raw (already decoded)
// string.
func (d decodedView) CompareRaw(raw string) int {
	return d.CompareDecoded(decodedView{encoded: escapeForCompare(raw), opts: d.opts})
}

// escapeForCompare percent-encodes '%' only, so that raw bytes compare as
// their own decoded value when run back through decode().
func escapeForCompare(raw string) string {
	if strings.IndexByte(raw, '%') < 0 {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '%' {
			sb.WriteString("%25")
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
