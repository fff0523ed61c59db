package uri

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-uriref/uriref/ipaddr"
)

// parseMode selects which of the five top-level reference forms (C4, §6)
// governs a parse: which components are required, optional or forbidden.
type parseMode uint8

const (
	modeURI parseMode = iota
	modeAbsoluteURI
	modeRelativeRef
	modeURIReference
	modeOriginForm
)

// parseInto is the single-pass grammar-driven parser (C4): it walks s in
// one direct index scan (only the scheme is re-checked with the Cursor
// primitives of C2, in validateScheme), validates every component against
// its character class (C1) and the address grammars (C3), and writes the
// resulting component offsets and metadata directly into b (C5). On
// success b.data holds s verbatim: the indexed buffer's canonical form is
// the input string itself, not a reserialization of it. Input longer than
// b.maxSize fails with ErrTooLarge.
func parseInto(b *buffer, s string, mode parseMode) error {
	if uint64(len(s)) > uint64(b.maxSize) {
		return newParseError(KindTooLarge, 0, ErrTooLarge,
			"input of %d bytes exceeds the %d byte limit", len(s), b.maxSize)
	}
	data := []byte(s)
	n := len(data)
	pos := 0

	// ---- scheme ----
	hasScheme := false
	schemeRegionEnd := 0
	if mode != modeRelativeRef && mode != modeOriginForm {
		if n > 0 && isAlpha(data[0]) {
			j := 1
			for j < n && schemeClass.contains(data[j]) {
				j++
			}
			if j < n && data[j] == ':' {
				hasScheme = true
				schemeRegionEnd = j + 1
			}
		}
	}
	switch mode {
	case modeURI, modeAbsoluteURI:
		if !hasScheme {
			return newParseError(KindInvalid, 0, ErrInvalidScheme, "a %q requires a scheme", "URI")
		}
	}
	if hasScheme {
		if err := validateScheme(data[:schemeRegionEnd-1]); err != nil {
			return err
		}
		pos = schemeRegionEnd
	}

	// ---- authority ----
	hasAuthority := false
	if mode != modeOriginForm && pos+1 < n && data[pos] == '/' && data[pos+1] == '/' {
		hasAuthority = true
		pos += 2
	}

	userinfoRegionEnd := pos // == pos right here if no authority: zero-length userinfo region
	hasUserinfo := false
	hostStart, hostEnd := pos, pos
	hKind := hostNone
	hasPort := false
	portRegionEnd := pos
	var portVal uint16
	var portIsNumeric bool

	if hasAuthority {
		authEnd := n
		for k := pos; k < n; k++ {
			if data[k] == '/' || data[k] == '?' || data[k] == '#' {
				authEnd = k
				break
			}
		}
		authSpan := data[pos:authEnd]

		at := -1
		for k := 0; k < len(authSpan); k++ {
			if authSpan[k] == '@' {
				at = k
			}
		}
		hstart := pos
		if at >= 0 {
			hasUserinfo = true
			if err := validateEncoded(authSpan[:at], userinfoClass); err != nil {
				return joinSentinel(ErrInvalidUser, err)
			}
			hstart = pos + at + 1
		}
		userinfoRegionEnd = hstart

		// hostRegionEnd marks the end of the host's own region, i.e. the
		// position right after its closing ']' for a bracketed literal, or
		// right after its last raw character otherwise. b.ends[compHost]
		// is always set to this value; contentBounds strips the brackets
		// back off when hKind calls for it.
		hostRegionEnd := 0

		hspan := data[hstart:authEnd]
		switch {
		case len(hspan) > 0 && hspan[0] == '[':
			closeIdx := bytes.IndexByte(hspan, ']')
			if closeIdx < 0 {
				return newParseError(KindInvalid, hstart, ErrInvalidHost, "mismatched '[' in host literal")
			}
			hostStart = hstart + 1
			hostEnd = hstart + closeIdx
			hostRegionEnd = hstart + closeIdx + 1
			lit := data[hostStart:hostEnd]
			if len(lit) > 0 && (lit[0] == 'v' || lit[0] == 'V') {
				if _, err := ipaddr.ParseIPFuture(string(lit)); err != nil {
					return joinSentinel(ErrInvalidHost, err)
				}
				hKind = hostIPFuture
			} else {
				if _, err := ipaddr.ParseIPv6(string(lit)); err != nil {
					return joinSentinel(ErrInvalidHost, err)
				}
				hKind = hostIPv6
			}
			rest := hspan[closeIdx+1:]
			if len(rest) > 0 {
				if rest[0] != ':' {
					return newParseError(KindInvalid, hstart+closeIdx+1, ErrInvalidHost, "expected ':' after IP-literal host")
				}
				hasPort = true
				portRegionEnd = authEnd
			} else {
				portRegionEnd = hostRegionEnd
			}
		default:
			colon := bytes.IndexByte(hspan, ':')
			if colon >= 0 {
				hostStart, hostEnd = hstart, hstart+colon
				hostRegionEnd = hostEnd
				hasPort = true
				portRegionEnd = authEnd
			} else {
				hostStart, hostEnd = hstart, authEnd
				hostRegionEnd = hostEnd
				portRegionEnd = authEnd
			}

			hostBytes := data[hostStart:hostEnd]
			if len(hostBytes) == 0 {
				hKind = hostNone
			} else if looksLikeIPv4(hostBytes) {
				if _, err := ipaddr.ParseIPv4(string(hostBytes)); err == nil {
					hKind = hostIPv4
				} else {
					hKind = hostRegName
					if err := validateEncoded(hostBytes, regNameClass); err != nil {
						return joinSentinel(ErrInvalidHost, err)
					}
				}
			} else {
				hKind = hostRegName
				if err := validateEncoded(hostBytes, regNameClass); err != nil {
					return joinSentinel(ErrInvalidHost, err)
				}
			}
		}

		if (hKind == hostRegName || hKind == hostNone) && hasScheme {
			scheme := strings.ToLower(string(data[:schemeRegionEnd-1]))
			if UsesDNSHostValidation(scheme) {
				decoded, err := decode(string(data[hostStart:hostEnd]), encodeOptions{})
				if err != nil {
					return joinSentinel(ErrInvalidDNSName, err)
				}
				if err := validateDNSHost([]byte(decoded)); err != nil {
					return err
				}
			}
		}
		hostEnd = hostRegionEnd

		if hasPort {
			portDigits := data[hostRegionEnd+1 : portRegionEnd]
			for _, c := range portDigits {
				if !isDigitB(c) {
					return newParseError(KindInvalid, hostRegionEnd+1, ErrInvalidPort, "port must be all digits, got %q", portDigits)
				}
			}
			if len(portDigits) > 0 {
				if v, err := strconv.ParseUint(string(portDigits), 10, 32); err == nil && v <= 65535 {
					portVal = uint16(v)
					portIsNumeric = true
				}
			}
		}

		pos = authEnd
	}

	// ---- path ----
	pathStart := pos
	pathEnd := n
	for k := pos; k < n; k++ {
		if data[k] == '?' || data[k] == '#' {
			pathEnd = k
			break
		}
	}
	pathSpan := data[pathStart:pathEnd]

	if !hasAuthority && len(pathSpan) >= 2 && pathSpan[0] == '/' && pathSpan[1] == '/' {
		return newParseError(KindInvalid, pathStart, ErrInvalidPath,
			"a path cannot start with \"//\" when no authority is present: %q", pathSpan)
	}
	if !hasAuthority && !hasScheme && len(pathSpan) > 0 && pathSpan[0] != '/' {
		firstSlash := bytes.IndexByte(pathSpan, '/')
		firstSeg := pathSpan
		if firstSlash >= 0 {
			firstSeg = pathSpan[:firstSlash]
		}
		if bytes.IndexByte(firstSeg, ':') >= 0 {
			return newParseError(KindInvalid, pathStart, ErrInvalidPath,
				"the first segment of a schemeless relative path cannot contain ':': %q", firstSeg)
		}
	}
	if mode == modeOriginForm && (len(pathSpan) == 0 || pathSpan[0] != '/') {
		return newParseError(KindInvalid, pathStart, ErrInvalidPath, "origin-form requires an absolute path")
	}
	var nseg int
	{
		var prev int
		for k := 0; k < len(pathSpan); k++ {
			if pathSpan[k] != '/' {
				continue
			}
			if k > prev {
				if err := validateEncoded(pathSpan[prev:k], pcharClass); err != nil {
					return joinSentinel(ErrInvalidPath, err)
				}
			}
			prev = k + 1
		}
		if prev < len(pathSpan) {
			if err := validateEncoded(pathSpan[prev:], pcharClass); err != nil {
				return joinSentinel(ErrInvalidPath, err)
			}
		}
		nseg = countSegments(pathSpan)
	}
	pos = pathEnd

	// ---- query ----
	hasQuery := false
	queryRegionEnd := pathEnd
	if pos < n && data[pos] == '?' {
		hasQuery = true
		qEnd := n
		for k := pos + 1; k < n; k++ {
			if data[k] == '#' {
				qEnd = k
				break
			}
		}
		if err := validateEncoded(data[pos+1:qEnd], queryClass); err != nil {
			return joinSentinel(ErrInvalidQuery, err)
		}
		queryRegionEnd = qEnd
		pos = qEnd
	}
	nparam := 0
	if hasQuery {
		qc := data[pathEnd+1 : queryRegionEnd]
		if len(qc) > 0 {
			nparam = bytes.Count(qc, []byte{'&'}) + 1
		}
	}

	// ---- fragment ----
	hasFragment := false
	if pos < n && data[pos] == '#' {
		if mode == modeAbsoluteURI || mode == modeOriginForm {
			return newParseError(KindInvalid, pos, ErrInvalidFrag, "a fragment is not allowed here")
		}
		hasFragment = true
		if err := validateEncoded(data[pos+1:n], fragmentClass); err != nil {
			return joinSentinel(ErrInvalidFrag, err)
		}
		pos = n
	}
	_ = hasFragment

	if pos != n {
		return newParseError(KindInvalid, pos, ErrInvalid, "unexpected trailing input: %q", data[pos:])
	}

	b.data = data
	b.flags = 0
	if hasScheme {
		b.flags |= flagHasScheme
	}
	if hasAuthority {
		b.flags |= flagHasAuthority
	}
	if hasUserinfo {
		b.flags |= flagHasUserinfo
	}
	if hasPort {
		b.flags |= flagHasPort
	}
	if hasQuery {
		b.flags |= flagHasQuery
	}
	if hasFragment {
		b.flags |= flagHasFragment
	}
	b.hKind = hKind
	b.port = portVal
	b.portSet = portIsNumeric
	b.nseg = nseg
	b.nparam = nparam

	schemeEndVal := 0
	if hasScheme {
		schemeEndVal = schemeRegionEnd
	}
	b.ends[compScheme] = uint32(schemeEndVal)
	b.ends[compUserinfo] = uint32(userinfoRegionEnd)
	b.ends[compHost] = uint32(hostEnd)
	b.ends[compPort] = uint32(portRegionEnd)
	b.ends[compPath] = uint32(pathEnd)
	b.ends[compQuery] = uint32(queryRegionEnd)
	b.ends[compFragment] = uint32(n)

	return nil
}

// validateScheme re-walks an already tentatively-matched scheme with the
// Cursor grammar primitives (C2), the way every other component rule in
// this file is meant to once it needs more than a single linear scan.
func validateScheme(s []byte) error {
	c := NewCursor(s)
	if _, ok := c.Delim(schemeHeadClass); !ok {
		return newParseError(KindInvalid, 0, ErrInvalidScheme, "scheme must start with a letter: %q", s)
	}
	c.TokenAllowEmpty(schemeClass)
	if !c.Done() {
		return newParseError(KindInvalid, c.Offset(), ErrInvalidScheme, "invalid character in scheme %q", s)
	}
	return nil
}

// validateEncoded checks that every byte of s is either a member of
// allowed or part of a well-formed "%HH" triplet.
func validateEncoded(s []byte, allowed charClass) error {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if i+2 >= len(s) || !isHexDig(s[i+1]) || !isHexDig(s[i+2]) {
				return newParseError(KindInvalidEncoding, i, ErrInvalidEncoding,
					"expected '%%' to be followed by two hex digits, near %q", s[i:min(i+3, len(s))])
			}
			i += 2
			continue
		}
		if !allowed.contains(s[i]) {
			return newParseError(KindInvalid, i, ErrInvalid, "invalid character %q near %q", s[i], s[i:])
		}
	}
	return nil
}

// looksLikeIPv4 is a cheap syntactic prefilter (all bytes digits or '.')
// used to decide whether to attempt strict IPv4 validation before falling
// back to reg-name, mirroring ttacon-uri's host-classification order.
func looksLikeIPv4(s []byte) bool {
	dots := 0
	for _, c := range s {
		switch {
		case c == '.':
			dots++
		case isDigitB(c):
		default:
			return false
		}
	}
	return dots == 3
}
