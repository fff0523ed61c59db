package uri

import (
	"strings"

	"github.com/go-uriref/uriref/ipaddr"
)

// ResolveReference resolves ref against base per RFC 3986 §5.3, returning
// a new Owner holding the resolved target URI. base must carry a scheme;
// otherwise ResolveReference returns ErrNotABase.
//
// Grounded on contomap-iri/resolve.go's resolveReference/resolvePath,
// itself derived from net/url's resolution algorithm, adapted here to
// build its result into an indexed buffer (C5) via an Owner instead of
// string concatenation.
func ResolveReference(base, ref View) (*Owner, error) {
	if !base.HasScheme() {
		return nil, newParseError(KindNotABase, 0, ErrNotABase, "base URI reference has no scheme")
	}

	out := NewOwner()

	if ref.HasScheme() {
		if err := buildFrom(out, ref.Scheme(), ref.EncodedAuthority(), ref.HasAuthority(),
			removeDotSegments(ref.EncodedPath()), ref.EncodedQuery(), ref.HasQuery(),
			ref.EncodedFragment(), ref.HasFragment()); err != nil {
			return nil, err
		}
		return out, nil
	}

	if ref.HasAuthority() {
		if err := buildFrom(out, base.Scheme(), ref.EncodedAuthority(), true,
			removeDotSegments(ref.EncodedPath()), ref.EncodedQuery(), ref.HasQuery(),
			ref.EncodedFragment(), ref.HasFragment()); err != nil {
			return nil, err
		}
		return out, nil
	}

	targetPath := base.EncodedPath()
	query := ref.EncodedQuery()
	hasQuery := ref.HasQuery()
	if strings.HasPrefix(ref.EncodedPath(), "/") {
		targetPath = removeDotSegments(ref.EncodedPath())
	} else if ref.EncodedPath() != "" {
		targetPath = removeDotSegments(mergePaths(base, ref.EncodedPath()))
	} else if !ref.HasQuery() {
		query = base.EncodedQuery()
		hasQuery = base.HasQuery()
	}

	if err := buildFrom(out, base.Scheme(), base.EncodedAuthority(), base.HasAuthority(),
		targetPath, query, hasQuery, ref.EncodedFragment(), ref.HasFragment()); err != nil {
		return nil, err
	}
	return out, nil
}

// mergePaths implements RFC 3986 §5.3's merge routine: if base has an
// authority and an empty path, the merged path is "/" + ref; otherwise it
// is everything in base's path up to (and including) the last '/',
// followed by ref.
func mergePaths(base View, ref string) string {
	basePath := base.EncodedPath()
	if base.HasAuthority() && basePath == "" {
		return "/" + ref
	}
	i := strings.LastIndexByte(basePath, '/')
	if i < 0 {
		return ref
	}
	return basePath[:i+1] + ref
}

// removeDotSegments implements the RFC 3986 §5.2.4 algorithm, operating
// on still-encoded path text (percent-encoded "." and ".." never arise
// from a correctly percent-decoded reference, so there is no ambiguity in
// running it over the encoded form).
func removeDotSegments(path string) string {
	if path == "" {
		return ""
	}

	var dst strings.Builder
	first := true
	remaining := path
	var last string
	for {
		i := strings.IndexByte(remaining, '/')
		var elem string
		if i < 0 {
			last, elem, remaining = remaining, remaining, ""
		} else {
			elem, remaining = remaining[:i], remaining[i+1:]
		}

		switch elem {
		case ".":
			first = false
		case "..":
			str := dst.String()
			idx := strings.LastIndexByte(str, '/')
			dst.Reset()
			if idx < 0 {
				first = true
			} else {
				dst.WriteString(str[:idx])
			}
		default:
			if !first {
				dst.WriteByte('/')
			}
			dst.WriteString(elem)
			first = false
		}

		if i < 0 {
			break
		}
	}

	if last == "." || last == ".." {
		dst.WriteByte('/')
	}

	out := dst.String()
	if path[0] == '/' && (out == "" || out[0] != '/') {
		return "/" + strings.TrimPrefix(out, "/")
	}
	return out
}

// buildFrom assembles a resolved reference's serialized form directly,
// since every component is already validated (it came from a
// successfully parsed View).
func buildFrom(o *Owner, scheme, authority string, hasAuthority bool, path, query string, hasQuery bool, fragment string, hasFragment bool) error {
	if err := o.SetScheme(scheme); err != nil {
		return err
	}
	if hasAuthority {
		if err := o.EnsureAuthority(); err != nil {
			return err
		}
		if err := setRawAuthority(o, authority); err != nil {
			return err
		}
	}
	if err := o.SetEncodedPath(path); err != nil {
		return err
	}
	if hasQuery {
		if err := o.SetEncodedQuery(query); err != nil {
			return err
		}
	}
	if hasFragment {
		if err := o.SetEncodedFragment(fragment); err != nil {
			return err
		}
	}
	return nil
}

// setRawAuthority re-parses an already-validated "userinfo@host:port"
// string (as produced by View.EncodedAuthority) and writes its pieces
// back through the typed setters.
func setRawAuthority(o *Owner, authority string) error {
	rest := authority
	if at := strings.LastIndexByte(rest, '@'); at >= 0 {
		if err := o.SetEncodedUserinfo(rest[:at]); err != nil {
			return err
		}
		rest = rest[at+1:]
	}
	if strings.HasPrefix(rest, "[") {
		closeIdx := strings.IndexByte(rest, ']')
		lit := rest[1:closeIdx]
		if len(lit) > 0 && (lit[0] == 'v' || lit[0] == 'V') {
			f, err := ipaddr.ParseIPFuture(lit)
			if err != nil {
				return err
			}
			if err := o.SetHostIPvFuture(f); err != nil {
				return err
			}
		} else {
			addr, err := ipaddr.ParseIPv6(lit)
			if err != nil {
				return err
			}
			if err := o.SetHostIPv6(addr); err != nil {
				return err
			}
		}
		rest = rest[closeIdx+1:]
		if strings.HasPrefix(rest, ":") {
			return o.SetPort(rest[1:])
		}
		return nil
	}
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		if err := o.SetEncodedHost(rest[:colon]); err != nil {
			return err
		}
		return o.SetPort(rest[colon+1:])
	}
	return o.SetEncodedHost(rest)
}
