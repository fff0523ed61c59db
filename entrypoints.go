// Package uri parses, inspects, mutates, resolves and normalizes RFC
// 3986 URIs and URI references, with RFC 3987-compatible (ASCII plus
// percent-encoded octets) discipline rather than full Unicode IRI
// support.
//
// Parsing writes directly into a single indexed byte buffer instead of
// a struct of component strings: a View gives read-only access to the
// parsed components, and an Owner adds the mutators (SetScheme,
// SetEncodedPath, and so on) plus segment and query-parameter editors.
//
// Reference: https://tools.ietf.org/html/rfc3986
package uri

import "github.com/go-uriref/uriref/ipaddr"

// ParseURI parses s as an RFC 3986 URI (absolute or not, but always
// carrying a scheme).
func ParseURI(s string, opts ...Option) (View, error) {
	return parseAs(s, modeURI, opts)
}

// ParseAbsoluteURI parses s as an RFC 3986 absolute-URI: a scheme and no
// fragment.
func ParseAbsoluteURI(s string, opts ...Option) (View, error) {
	return parseAs(s, modeAbsoluteURI, opts)
}

// ParseRelativeRef parses s as an RFC 3986 relative-ref: no scheme.
func ParseRelativeRef(s string, opts ...Option) (View, error) {
	return parseAs(s, modeRelativeRef, opts)
}

// ParseURIReference parses s as either a URI or a relative-ref, the most
// permissive of the five forms and the default for general-purpose
// parsing.
func ParseURIReference(s string, opts ...Option) (View, error) {
	return parseAs(s, modeURIReference, opts)
}

// ParseOriginForm parses s as an HTTP origin-form request target:
// absolute path optionally followed by a query, no scheme, authority or
// fragment.
func ParseOriginForm(s string, opts ...Option) (View, error) {
	return parseAs(s, modeOriginForm, opts)
}

func parseAs(s string, mode parseMode, opts []Option) (View, error) {
	o, free := applyOptions(opts)
	defer free(o)
	if o.withURIReference && (mode == modeURI || mode == modeAbsoluteURI) {
		mode = modeURIReference
	}
	b := newBuffer(o.maxSize)
	b.spaceAsPlus = o.spaceAsPlus
	if err := parseInto(b, s, mode); err != nil {
		return View{}, err
	}
	return newView(b), nil
}

// ParsePath validates s as a standalone path component (any of the four
// path variants) and returns a SegmentsView over it, without requiring a
// full URI reference around it.
func ParsePath(s string) (SegmentsView, error) {
	b := newBuffer(0)
	if err := parseInto(b, s, modeOriginForm); err == nil {
		return newSegmentsView(b), nil
	}
	// origin-form requires a leading '/'; fall back to treating s as a
	// bare relative-ref so rootless and empty paths validate too.
	b2 := newBuffer(0)
	if err := parseInto(b2, s, modeRelativeRef); err != nil {
		return SegmentsView{}, err
	}
	return newSegmentsView(b2), nil
}

// ParseAuthority validates s as a standalone authority component
// ([userinfo "@"] host [":" port]) and returns a View exposing just its
// authority accessors.
func ParseAuthority(s string, opts ...Option) (View, error) {
	return parseAs("//"+s, modeRelativeRef, opts)
}

// ParseIPv4 parses s as a strict dotted-quad IPv4 literal.
func ParseIPv4(s string) (ipaddr.IPv4, error) { return ipaddr.ParseIPv4(s) }

// ParseIPv6 parses s, without enclosing brackets, as an IPv6 literal.
func ParseIPv6(s string) (ipaddr.IPv6, error) { return ipaddr.ParseIPv6(s) }

// ParseIPLiteral parses s, without enclosing brackets, as either an IPv6
// or an IPvFuture literal, per the grammar's IP-literal production.
func ParseIPLiteral(s string) (hostKind, string, error) {
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		f, err := ipaddr.ParseIPFuture(s)
		if err != nil {
			return hostNone, "", err
		}
		return hostIPFuture, f.String(), nil
	}
	addr, err := ipaddr.ParseIPv6(s)
	if err != nil {
		return hostNone, "", err
	}
	return hostIPv6, addr.String(), nil
}
