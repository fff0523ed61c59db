package uri

import (
	"strconv"
	"strings"

	"github.com/go-uriref/uriref/ipaddr"
)

// userinfoPartClass is userinfoClass without ':', used to encode a user or
// password sub-part so that an embedded ':' always round-trips as %3A
// instead of silently becoming the user/password separator.
var userinfoPartClass charClass

func init() {
	userinfoPartClass = unreservedClass.union(subDelimsClass)
}

// Owner is the mutating half of the owner/view split (C6). It embeds View,
// so every read accessor is available directly on an Owner; mutators
// reshape the underlying buffer (C5) in place via its splice primitives.
//
// Grounded on fredbi-uri's builder.go fluent With* methods, generalized
// from building a brand-new URI struct per call to splicing a shared
// buffer, and on its URI struct for which components exist to set.
type Owner struct {
	View
}

// NewOwner returns an empty Owner ready to be built up with setters.
func NewOwner(opts ...Option) *Owner {
	o, free := applyOptions(opts)
	defer free(o)
	b := newBuffer(o.maxSize)
	b.spaceAsPlus = o.spaceAsPlus
	return &Owner{View: newView(b)}
}

// ParseOwner parses s as a URI-reference and returns a mutable Owner over
// it, or the parse error.
func ParseOwner(s string, opts ...Option) (*Owner, error) {
	o, free := applyOptions(opts)
	defer free(o)
	b := newBuffer(o.maxSize)
	b.spaceAsPlus = o.spaceAsPlus
	if err := parseInto(b, s, modeURIReference); err != nil {
		return nil, err
	}
	return &Owner{View: newView(b)}, nil
}

func (o *Owner) buf() *buffer { return o.b }

// SetScheme replaces the scheme. An empty string removes it.
func (o *Owner) SetScheme(scheme string) error {
	if scheme == "" {
		return o.RemoveScheme()
	}
	if err := validateScheme([]byte(scheme)); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compScheme, len(scheme)+1)
	if err != nil {
		return err
	}
	copy(span, scheme)
	span[len(scheme)] = ':'
	o.buf().flags |= flagHasScheme
	return nil
}

// RemoveScheme drops the scheme entirely, including its trailing ':'.
func (o *Owner) RemoveScheme() error {
	if _, err := o.buf().resizeComponent(compScheme, 0); err != nil {
		return err
	}
	o.buf().flags &^= flagHasScheme
	return nil
}

// EnsureAuthority inserts an empty "//" authority marker if one is not
// already present, so that userinfo/host/port setters have somewhere to
// write into. It is a no-op if an authority already exists.
func (o *Owner) EnsureAuthority() error {
	b := o.buf()
	if b.has(flagHasAuthority) {
		return nil
	}
	at := int(b.regionStart(compUserinfo))
	span, err := b.spliceBytes(at, at, 2, compUserinfo)
	if err != nil {
		return err
	}
	copy(span, "//")
	b.flags |= flagHasAuthority
	return nil
}

// RemoveAuthority deletes the authority entirely, including its "//"
// marker, userinfo, host and port.
func (o *Owner) RemoveAuthority() error {
	b := o.buf()
	if !b.has(flagHasAuthority) {
		return nil
	}
	start := int(b.regionStart(compUserinfo))
	end := int(b.regionEnd(compPort))
	if _, err := b.spliceBytes(start, end, 0, compUserinfo); err != nil {
		return err
	}
	b.flags &^= flagHasAuthority | flagHasUserinfo | flagHasPort
	b.hKind = hostNone
	b.port = 0
	b.portSet = false
	return nil
}

// SetEncodedUserinfo replaces the userinfo with raw, which must already be
// percent-encoded per the userinfo grammar.
func (o *Owner) SetEncodedUserinfo(raw string) error {
	if err := validateEncoded([]byte(raw), userinfoClass); err != nil {
		return err
	}
	if err := o.EnsureAuthority(); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compUserinfo, len(raw)+1)
	if err != nil {
		return err
	}
	copy(span, raw)
	span[len(raw)] = '@'
	o.buf().flags |= flagHasUserinfo
	return nil
}

// RemoveUserinfo drops the userinfo and its trailing '@'.
func (o *Owner) RemoveUserinfo() error {
	if _, err := o.buf().resizeComponent(compUserinfo, 0); err != nil {
		return err
	}
	o.buf().flags &^= flagHasUserinfo
	return nil
}

// SetUserinfo is setter sugar over SetEncodedUserinfo: it percent-encodes
// user and, if hasPassword, appends ":"+password, with ':' itself always
// escaped inside either sub-part.
func (o *Owner) SetUserinfo(user, password string, hasPassword bool) error {
	raw := encodeString(user, userinfoPartClass, encodeOptions{})
	if hasPassword {
		raw += ":" + encodeString(password, userinfoPartClass, encodeOptions{})
	}
	return o.SetEncodedUserinfo(raw)
}

// SetEncodedHost replaces the host with a pre-encoded reg-name.
func (o *Owner) SetEncodedHost(raw string) error {
	if err := validateEncoded([]byte(raw), regNameClass); err != nil {
		return err
	}
	if err := o.EnsureAuthority(); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compHost, len(raw))
	if err != nil {
		return err
	}
	copy(span, raw)
	o.buf().hKind = hostRegName
	if raw == "" {
		o.buf().hKind = hostNone
	}
	return nil
}

// SetHost is sugar over SetEncodedHost, percent-encoding name.
func (o *Owner) SetHost(name string) error {
	return o.SetEncodedHost(encodeString(name, regNameClass, encodeOptions{}))
}

// SetHostIPv4 replaces the host with a dotted-quad IPv4 literal.
func (o *Owner) SetHostIPv4(addr ipaddr.IPv4) error {
	if err := o.EnsureAuthority(); err != nil {
		return err
	}
	lit := addr.String()
	span, err := o.buf().resizeComponent(compHost, len(lit))
	if err != nil {
		return err
	}
	copy(span, lit)
	o.buf().hKind = hostIPv4
	return nil
}

// setBracketedHost is shared by SetHostIPv6 and SetHostIPvFuture: both
// write "[" + lit + "]" into the host region, which resizeComponent always
// sees as bracket-inclusive (contentBounds strips the brackets back off
// based on hKind).
func (o *Owner) setBracketedHost(lit string, kind hostKind) error {
	if err := o.EnsureAuthority(); err != nil {
		return err
	}
	b := o.buf()
	// contentBounds for a non-bracketed kind returns the full region, so
	// resize against the full bracket-inclusive width directly.
	start := int(b.regionStart(compHost))
	end := int(b.regionEnd(compHost))
	span, err := b.spliceBytes(start, end, len(lit)+2, compHost)
	if err != nil {
		return err
	}
	span[0] = '['
	copy(span[1:], lit)
	span[len(span)-1] = ']'
	b.hKind = kind
	return nil
}

// SetHostIPv6 replaces the host with a bracketed IPv6 literal.
func (o *Owner) SetHostIPv6(addr ipaddr.IPv6) error {
	return o.setBracketedHost(addr.String(), hostIPv6)
}

// SetHostIPvFuture replaces the host with a bracketed IPvFuture literal.
func (o *Owner) SetHostIPvFuture(addr ipaddr.IPFuture) error {
	return o.setBracketedHost(addr.String(), hostIPFuture)
}

// SetPort replaces the port with a pre-validated all-digit string. An
// empty string removes it.
func (o *Owner) SetPort(digits string) error {
	if digits == "" {
		return o.RemovePort()
	}
	for i := 0; i < len(digits); i++ {
		if !isDigitB(digits[i]) {
			return newParseError(KindInvalidPart, i, ErrInvalidPort, "port must be all digits, got %q", digits)
		}
	}
	if err := o.EnsureAuthority(); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compPort, len(digits)+1)
	if err != nil {
		return err
	}
	span[0] = ':'
	copy(span[1:], digits)
	o.buf().flags |= flagHasPort
	if v, err := strconv.ParseUint(digits, 10, 16); err == nil {
		o.buf().port = uint16(v)
		o.buf().portSet = true
	} else {
		o.buf().port = 0
		o.buf().portSet = false
	}
	return nil
}

// SetPortNumber replaces the port with a numeric value in canonical
// decimal form.
func (o *Owner) SetPortNumber(port uint16) error {
	return o.SetPort(strconv.FormatUint(uint64(port), 10))
}

// RemovePort drops the port and its leading ':'.
func (o *Owner) RemovePort() error {
	if _, err := o.buf().resizeComponent(compPort, 0); err != nil {
		return err
	}
	o.buf().flags &^= flagHasPort
	o.buf().port = 0
	o.buf().portSet = false
	return nil
}

// SetEncodedPath replaces the whole path with a pre-encoded value and
// recomputes its segment count.
func (o *Owner) SetEncodedPath(raw string) error {
	if err := validateEncoded([]byte(raw), pcharClass.union(newCharClass().add('/'))); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compPath, len(raw))
	if err != nil {
		return err
	}
	copy(span, raw)
	o.buf().nseg = countSegments([]byte(raw))
	return nil
}

func countSegments(path []byte) int {
	if len(path) == 0 {
		return 0
	}
	n := strings.Count(string(path), "/")
	if path[0] != '/' {
		n++
	}
	return n
}

// SetEncodedQuery replaces the whole query with a pre-encoded value and
// recomputes its parameter count. An empty string sets a present-but-empty
// query; use RemoveQuery to drop it entirely.
func (o *Owner) SetEncodedQuery(raw string) error {
	if err := validateEncoded([]byte(raw), queryClass); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compQuery, len(raw)+1)
	if err != nil {
		return err
	}
	span[0] = '?'
	copy(span[1:], raw)
	o.buf().flags |= flagHasQuery
	if raw == "" {
		o.buf().nparam = 0
	} else {
		o.buf().nparam = strings.Count(raw, "&") + 1
	}
	return nil
}

// RemoveQuery drops the query and its leading '?'.
func (o *Owner) RemoveQuery() error {
	if _, err := o.buf().resizeComponent(compQuery, 0); err != nil {
		return err
	}
	o.buf().flags &^= flagHasQuery
	o.buf().nparam = 0
	return nil
}

// SetEncodedFragment replaces the whole fragment with a pre-encoded value.
func (o *Owner) SetEncodedFragment(raw string) error {
	if err := validateEncoded([]byte(raw), fragmentClass); err != nil {
		return err
	}
	span, err := o.buf().resizeComponent(compFragment, len(raw)+1)
	if err != nil {
		return err
	}
	span[0] = '#'
	copy(span[1:], raw)
	o.buf().flags |= flagHasFragment
	return nil
}

// RemoveFragment drops the fragment and its leading '#'.
func (o *Owner) RemoveFragment() error {
	if _, err := o.buf().resizeComponent(compFragment, 0); err != nil {
		return err
	}
	o.buf().flags &^= flagHasFragment
	return nil
}

// MutableSegments returns a mutating sub-view over the path's segments (C7).
func (o *Owner) MutableSegments() *SegmentsEditor { return newSegmentsEditor(o.buf()) }

// MutableParams returns a mutating sub-view over the query's parameters (C8).
func (o *Owner) MutableParams() *ParamsEditor { return newParamsEditor(o.buf()) }

// Clone returns an independent Owner holding a copy of the same data.
func (o *Owner) Clone() *Owner {
	nb := newBuffer(o.buf().maxSize)
	nb.data = append([]byte(nil), o.buf().data...)
	nb.ends = o.buf().ends
	nb.flags = o.buf().flags
	nb.hKind = o.buf().hKind
	nb.port = o.buf().port
	nb.portSet = o.buf().portSet
	nb.nseg = o.buf().nseg
	nb.nparam = o.buf().nparam
	return &Owner{View: newView(nb)}
}
