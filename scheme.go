package uri

import (
	"hash/crc64"
	"strings"
)

// SchemeID enumerates the small set of well-known schemes the package
// recognizes for default-port hints and normalization, per spec §6. Any
// other scheme parses fine but reports SchemeUnknown.
type SchemeID uint8

const (
	SchemeUnknown SchemeID = iota
	SchemeFTP
	SchemeFile
	SchemeHTTP
	SchemeHTTPS
	SchemeWS
	SchemeWSS
)

func (s SchemeID) String() string {
	switch s {
	case SchemeFTP:
		return "ftp"
	case SchemeFile:
		return "file"
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	case SchemeWS:
		return "ws"
	case SchemeWSS:
		return "wss"
	default:
		return ""
	}
}

// schemeIDFor identifies scheme (already lowercase) as one of the
// well-known schemes, or SchemeUnknown.
func schemeIDFor(scheme string) SchemeID {
	switch scheme {
	case "ftp":
		return SchemeFTP
	case "file":
		return SchemeFile
	case "http":
		return SchemeHTTP
	case "https":
		return SchemeHTTPS
	case "ws":
		return SchemeWS
	case "wss":
		return SchemeWSS
	default:
		return SchemeUnknown
	}
}

// defaultPortForScheme returns the default port hint for a well-known
// scheme, or 0 if none applies. Extended, per SPEC_FULL's domain-stack
// wiring, with the wider IANA port table fredbi-uri's default_ports.go
// carries for schemes beyond the small well-known enum.
func defaultPortForScheme(scheme string) uint16 {
	switch strings.ToLower(scheme) {
	case "ftp":
		return 21
	case "http", "ws":
		return 80
	case "https", "wss":
		return 443
	case "ssh", "sftp":
		return 22
	case "telnet":
		return 23
	case "smtp", "mailto":
		return 25
	case "dns":
		return 53
	case "gopher":
		return 70
	case "finger":
		return 79
	case "nntp":
		return 119
	case "ntp":
		return 123
	case "imap":
		return 143
	case "snmp":
		return 161
	case "irc":
		return 194
	case "ldap":
		return 389
	case "redis":
		return 6379
	case "postgresql":
		return 5432
	}
	return 0
}

// UsesDNSHostValidation reports whether scheme (already lowercase) is
// conventionally understood to carry an Internet domain name in its host
// component, so that host validation should apply RFC 1035 label rules in
// addition to the generic reg-name grammar. Declared as a package-level
// variable, as in fredbi-uri's dns.go, so callers may override it.
var UsesDNSHostValidation = func(scheme string) bool {
	_, ok := dnsSchemes[scheme]
	return ok
}

var dnsSchemes map[string]struct{}

func init() {
	names := []string{
		"http", "https", "ws", "wss", "ftp",
		"aaa", "aaas", "acap", "acct", "cap", "cid",
		"coap", "coaps", "coap+tcp", "coap+ws", "coaps+tcp", "coaps+ws",
		"dav", "dict", "dns", "dntp", "finger", "git", "gopher", "h323",
		"iax", "icap", "im", "imap", "ipp", "ipps", "irc", "irc6", "ircs",
		"jms", "ldap", "mailto", "mid", "msrp", "msrps", "nfs", "nntp",
		"ntp", "postgresql", "radius", "redis", "rmi", "rtsp", "rtsps",
		"rtspu", "rsync", "sftp", "skype", "smtp", "snmp", "soap", "ssh",
		"steam", "svn", "tcp", "telnet", "udp", "vnc", "wais",
	}
	dnsSchemes = make(map[string]struct{}, len(names))
	for _, name := range names {
		dnsSchemes[name] = struct{}{}
	}
}

const (
	maxDNSNameLength  = 255
	maxDNSLabelLength = 63
)

// validateDNSHost applies RFC 1035 label rules (letter-first, letter-or-
// digit-last, interior letters/digits/hyphens, 63 bytes per label, 255
// bytes total) to host, a percent-decoded registered-name host. Grounded
// on fredbi-uri/dns.go's validateDNSHostForScheme/validateHostSegment,
// narrowed from a rune-by-rune UTF-8 walk (the teacher allows escaped
// Unicode labels) to a byte walk: this module's host grammar is already
// ASCII-only with percent-encoded octets decoded back before this runs,
// so there is no multi-byte rune to decode here.
func validateDNSHost(host []byte) error {
	if len(host) == 0 {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName, "a DNS name must not be empty")
	}
	if len(host) > maxDNSNameLength {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName,
			"DNS name %q is longer than %d bytes", host, maxDNSNameLength)
	}
	start := 0
	for i := 0; i <= len(host); i++ {
		if i < len(host) && host[i] != '.' {
			continue
		}
		if err := validateDNSLabel(host[start:i]); err != nil {
			return err
		}
		start = i + 1
	}
	return nil
}

func validateDNSLabel(label []byte) error {
	if len(label) == 0 {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName, "a DNS name must not contain an empty segment")
	}
	if len(label) > maxDNSLabelLength {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName,
			"DNS segment %q is longer than %d bytes", label, maxDNSLabelLength)
	}
	if !isAlpha(label[0]) {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName,
			"a DNS segment must start with a letter: %q", label)
	}
	last := label[len(label)-1]
	if !isAlpha(last) && !isDigitB(last) {
		return newParseError(KindInvalid, 0, ErrInvalidDNSName,
			"a DNS segment must end with a letter or a digit: %q", label)
	}
	for _, c := range label {
		if !isAlpha(c) && !isDigitB(c) && c != '-' {
			return newParseError(KindInvalid, 0, ErrInvalidDNSName,
				"a DNS segment may only contain letters, digits or '-': %q", label)
		}
	}
	return nil
}

// schemeHash is kept for parity with the teacher's crc64-based lookup path
// (dns.go); Hash in normalize.go uses it to hash a normalized URI string.
var schemeHashTable = crc64.MakeTable(crc64.ISO)

func schemeHash(scheme string) uint64 {
	return crc64.Checksum([]byte(scheme), schemeHashTable)
}
