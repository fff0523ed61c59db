package uri

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// NormalizeOption configures Normalize/Compare/Hash, mirroring the
// Option mechanism used elsewhere in the package.
type NormalizeOption func(*normalizeOptions)

type normalizeOptions struct {
	asciiHost       bool
	dropDefaultPort bool
}

func normalizeOptionsWithDefaults(opts []NormalizeOption) *normalizeOptions {
	o := &normalizeOptions{dropDefaultPort: true}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithNormalizedASCIIHost converts the host to its IDNA/punycode ASCII
// form during normalization, the way fredbi-uri's normalizedHost does
// when its asciiHost option is set.
func WithNormalizedASCIIHost() NormalizeOption {
	return func(o *normalizeOptions) { o.asciiHost = true }
}

// WithKeepDefaultPort disables dropping an explicit port that matches the
// scheme's well-known default.
func WithKeepDefaultPort() NormalizeOption {
	return func(o *normalizeOptions) { o.dropDefaultPort = false }
}

// Normalize returns the syntax-based normal form of v per RFC 3986 §6.2.2:
// lowercase scheme and host, uppercase percent-encoding hex digits,
// decoded-back unreserved octets, removed dot segments, an added "/" for
// an empty absolute path, and (by default) a dropped default port.
//
// Grounded on fredbi-uri's normalize.go (Normalize/Normalized), adapted
// from building a second string-field URI struct to building a second
// indexed buffer (C5) through an Owner, and narrowed from full Unicode
// NFC normalization of every component to the host component only (an
// RFC 3987 IRI-compatible implementation never holds raw non-ASCII bytes
// in the other components to begin with).
func Normalize(v View, opts ...NormalizeOption) (*Owner, error) {
	o := normalizeOptionsWithDefaults(opts)
	out := NewOwner()

	if v.HasScheme() {
		if err := out.SetScheme(strings.ToLower(v.Scheme())); err != nil {
			return nil, err
		}
	}

	if v.HasAuthority() {
		if err := out.EnsureAuthority(); err != nil {
			return nil, err
		}
		if v.HasUserinfo() {
			if err := out.SetEncodedUserinfo(normalizeUnreserved(v.EncodedUserinfo())); err != nil {
				return nil, err
			}
		}
		if err := setNormalizedHost(out, v, o); err != nil {
			return nil, err
		}
		if v.HasPort() {
			num, ok := v.PortNumber()
			drop := o.dropDefaultPort && ok && num != 0 && num == defaultPortForScheme(v.Scheme())
			if !drop {
				if err := out.SetPort(v.Port()); err != nil {
					return nil, err
				}
			}
		}
	}

	path := removeDotSegments(normalizeUnreserved(v.EncodedPath()))
	if path == "" && v.HasAuthority() {
		path = "/"
	}
	if err := out.SetEncodedPath(path); err != nil {
		return nil, err
	}

	if v.HasQuery() {
		if err := out.SetEncodedQuery(normalizeUnreserved(v.EncodedQuery())); err != nil {
			return nil, err
		}
	}
	if v.HasFragment() {
		if err := out.SetEncodedFragment(normalizeUnreserved(v.EncodedFragment())); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func setNormalizedHost(out *Owner, v View, o *normalizeOptions) error {
	switch v.HostKind() {
	case hostIPv4, hostIPv6, hostIPFuture:
		return out.SetEncodedHost(v.EncodedHost())
	default:
		host := strings.ToLower(normalizeUnreserved(v.EncodedHost()))
		host = norm.NFC.String(host)
		if o.asciiHost {
			if ascii, err := idna.ToASCII(host); err == nil {
				host = ascii
			}
		}
		return out.SetEncodedHost(host)
	}
}

// normalizeUnreserved rewrites s so that every "%HH" triplet that decodes
// to an RFC 3986 unreserved-set byte is replaced by the literal byte, and
// every remaining triplet has uppercase hex digits, per §6.2.2.1/6.2.2.2.
// s is assumed already syntactically valid (it came from a parsed View).
func normalizeUnreserved(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+2 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		b := unhex(s[i+1])<<4 | unhex(s[i+2])
		if isUnreserved(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperHex[b>>4])
			sb.WriteByte(upperHex[b&0xF])
		}
		i += 2
	}
	return sb.String()
}

// Compare reports whether a and b are equivalent under syntax-based
// normalization. It normalizes both sides fully and compares the result;
// a lazy, component-wise short-circuiting compare would save allocations
// on an early mismatch but adds real complexity for a cold path, so this
// trades that optimization away for a straightforward implementation.
func Compare(a, b View) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return na.String() == nb.String()
}

// Hash returns an order-independent-for-equal-URIs hash of v's normalized
// form, suitable for map keys. Two URIs that Compare() equal always Hash()
// equal.
func Hash(v View) (uint64, error) {
	n, err := Normalize(v)
	if err != nil {
		return 0, err
	}
	return schemeHash(n.String()), nil
}

// defaultPortString formats the scheme's default port as decimal digits,
// or returns "" when the scheme has none. Nothing in the package calls it.
func defaultPortString(scheme string) string {
	p := defaultPortForScheme(scheme)
	if p == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(p), 10)
}
