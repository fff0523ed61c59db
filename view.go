package uri

import (
	"fmt"
	"strings"
)

// View is the read-only half of the owner/view split (C6): every accessor
// is O(1) plus, for decoded forms, an O(n) scan over a single component.
// A View never outlives the buffer it was taken over; Owner mutations
// invalidate every View and sub-view derived from it, the way a C++
// string_view is invalidated by a reallocation of its backing string.
//
// Grounded on fredbi-uri's URI struct, generalized from one string field
// per component to the indexed buffer (C5) underneath, and split from a
// single mutable type into a read-only role per spec §4.6.
type View struct {
	b *buffer
}

func newView(b *buffer) View { return View{b: b} }

// HasScheme reports whether the reference carries a scheme component.
func (v View) HasScheme() bool { return v.b.has(flagHasScheme) }

// Scheme returns the scheme, lowercase folded at parse time is not
// performed automatically: callers needing case-insensitive comparison
// should use SchemeID or compare via strings.EqualFold.
func (v View) Scheme() string { return v.b.contentString(compScheme) }

// SchemeID classifies Scheme() as one of the well-known schemes, or
// SchemeUnknown.
func (v View) SchemeID() SchemeID { return schemeIDFor(strings.ToLower(v.Scheme())) }

// HasAuthority reports whether the reference has an authority component
// (introduced by "//"), independent of whether that authority is empty.
func (v View) HasAuthority() bool { return v.b.has(flagHasAuthority) }

// EncodedAuthority returns the full authority substring
// (userinfo "@" host ":" port), still percent-encoded.
func (v View) EncodedAuthority() string {
	if !v.HasAuthority() {
		return ""
	}
	start := v.b.regionStart(compUserinfo) + 2 // past "//"
	end := v.b.regionEnd(compPort)
	return string(v.b.data[start:end])
}

func (v View) HasUserinfo() bool { return v.b.has(flagHasUserinfo) }

func (v View) EncodedUserinfo() string { return v.b.contentString(compUserinfo) }

func (v View) Userinfo() string { return v.decodedUserinfo().String() }

func (v View) decodedUserinfo() decodedView {
	return newDecodedView(v.EncodedUserinfo(), encodeOptions{})
}

// EncodedUser returns the portion of userinfo before the first ':', or
// the whole userinfo if it carries no ':'.
func (v View) EncodedUser() string {
	ui := v.EncodedUserinfo()
	for i := 0; i < len(ui); i++ {
		if ui[i] == ':' {
			return ui[:i]
		}
	}
	return ui
}

func (v View) User() string {
	return newDecodedView(v.EncodedUser(), encodeOptions{}).String()
}

func (v View) HasPassword() bool {
	ui := v.EncodedUserinfo()
	for i := 0; i < len(ui); i++ {
		if ui[i] == ':' {
			return true
		}
	}
	return false
}

func (v View) EncodedPassword() string {
	ui := v.EncodedUserinfo()
	for i := 0; i < len(ui); i++ {
		if ui[i] == ':' {
			return ui[i+1:]
		}
	}
	return ""
}

func (v View) Password() string {
	return newDecodedView(v.EncodedPassword(), encodeOptions{}).String()
}

// HostKind classifies the host's syntactic shape.
func (v View) HostKind() hostKind { return v.b.hKind }

func (v View) EncodedHost() string { return v.b.contentString(compHost) }

func (v View) Host() string {
	if v.b.hKind == hostRegName {
		return newDecodedView(v.EncodedHost(), encodeOptions{}).String()
	}
	return v.EncodedHost()
}

// HostIPv4 returns the host's dotted-quad IPv4 literal. ok is false unless
// HostKind() == hostIPv4.
func (v View) HostIPv4() (addr string, ok bool) {
	if v.b.hKind != hostIPv4 {
		return "", false
	}
	return v.EncodedHost(), true
}

// HostIPv6 returns the bracket-stripped IPv6 literal. ok is false unless
// HostKind() == hostIPv6.
func (v View) HostIPv6() (addr string, ok bool) {
	if v.b.hKind != hostIPv6 {
		return "", false
	}
	return v.EncodedHost(), true
}

// HostIPvFuture returns the bracket-stripped IPvFuture literal. ok is
// false unless HostKind() == hostIPFuture.
func (v View) HostIPvFuture() (addr string, ok bool) {
	if v.b.hKind != hostIPFuture {
		return "", false
	}
	return v.EncodedHost(), true
}

func (v View) HasPort() bool { return v.b.has(flagHasPort) }

func (v View) Port() string { return v.b.contentString(compPort) }

// PortNumber returns the port as a uint16, and whether the port digits
// (present and) fit in sixteen bits. An oversized numeric port is not a
// parse error: it is syntactically valid and simply reports ok=false
// here, per the component-rule contract of spec §4.4.
func (v View) PortNumber() (uint16, bool) { return v.b.port, v.b.portSet }

// EncodedPath returns the raw path, including its leading '/' if
// path-absolute or path-abempty.
func (v View) EncodedPath() string { return v.b.contentString(compPath) }

func (v View) IsPathAbsolute() bool {
	p := v.EncodedPath()
	return len(p) > 0 && p[0] == '/'
}

// NumSegments returns the number of '/'-delimited path segments, 0 for an
// empty path.
func (v View) NumSegments() int { return v.b.nseg }

func (v View) HasQuery() bool { return v.b.has(flagHasQuery) }

func (v View) EncodedQuery() string { return v.b.contentString(compQuery) }

func (v View) Query() string {
	return newDecodedView(v.EncodedQuery(), encodeOptions{spaceAsPlus: false}).String()
}

// NumParams returns one plus the number of unescaped '&' bytes in a
// non-empty query, 0 if the query is absent or empty.
func (v View) NumParams() int { return v.b.nparam }

func (v View) HasFragment() bool { return v.b.has(flagHasFragment) }

func (v View) EncodedFragment() string { return v.b.contentString(compFragment) }

func (v View) Fragment() string {
	return newDecodedView(v.EncodedFragment(), encodeOptions{}).String()
}

// EncodedOrigin returns "scheme://host[:port]", the authority-bearing
// prefix used as a cache or same-origin key; empty if there is no scheme
// or no authority.
func (v View) EncodedOrigin() string {
	if !v.HasScheme() || !v.HasAuthority() {
		return ""
	}
	host := v.EncodedHost()
	if v.b.hKind == hostIPv6 || v.b.hKind == hostIPFuture {
		host = "[" + host + "]"
	}
	if v.HasPort() {
		return fmt.Sprintf("%s://%s:%s", v.Scheme(), host, v.Port())
	}
	return fmt.Sprintf("%s://%s", v.Scheme(), host)
}

// Size returns the length of the serialized form in bytes.
func (v View) Size() int { return v.b.size() }

// String returns the full serialized URI reference.
func (v View) String() string { return v.b.String() }

// Segments returns a read-only sub-view over the path's segments (C7).
func (v View) Segments() SegmentsView { return newSegmentsView(v.b) }

// Params returns a read-only sub-view over the query's parameters (C8).
func (v View) Params() ParamsView { return newParamsView(v.b) }
