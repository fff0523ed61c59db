package uri

import "github.com/go-uriref/uriref/ipaddr"

// Builder is a fluent, deferred-error wrapper around Owner: each With*
// method short-circuits once a prior step has failed, so a whole chain
// can be built without checking an error after every call, and the final
// error (if any) is inspected once via Err().
//
// Grounded on fredbi-uri's builder.go WithScheme/WithAuthority/WithHost/
// WithPort/WithPath/WithQuery/WithFragment, adapted from returning a new
// value-type URI struct per call (validated as a whole each time) to
// mutating a single indexed buffer (C5) in place through Owner, since the
// splice primitives make incremental mutation O(delta) rather than O(n).
type Builder struct {
	o   *Owner
	err error
}

// NewBuilder starts a fluent build over a fresh, empty Owner.
func NewBuilder(opts ...Option) Builder {
	return Builder{o: NewOwner(opts...)}
}

// Err returns the first error encountered by any With* call in the chain.
func (b Builder) Err() error { return b.err }

// Build returns the built Owner, or the first error encountered.
func (b Builder) Build() (*Owner, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.o, nil
}

func (b Builder) WithScheme(scheme string) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetScheme(scheme)
	return b
}

func (b Builder) WithUserinfo(user, password string, hasPassword bool) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetUserinfo(user, password, hasPassword)
	return b
}

func (b Builder) WithHost(host string) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetHost(host)
	return b
}

func (b Builder) WithHostIPv4(addr ipaddr.IPv4) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetHostIPv4(addr)
	return b
}

func (b Builder) WithHostIPv6(addr ipaddr.IPv6) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetHostIPv6(addr)
	return b
}

func (b Builder) WithPort(port uint16) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetPortNumber(port)
	return b
}

func (b Builder) WithPath(path string) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetEncodedPath(path)
	return b
}

func (b Builder) WithQuery(query string) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetEncodedQuery(query)
	return b
}

func (b Builder) WithFragment(fragment string) Builder {
	if b.err != nil {
		return b
	}
	b.err = b.o.SetEncodedFragment(fragment)
	return b
}
