package uri

import "sync"

// Option allows fine-grained tuning of parsing and encoding behavior.
// Normalization has its own, separate NormalizeOption surface
// (WithNormalizedASCIIHost, WithKeepDefaultPort in normalize.go), since
// those concerns only ever apply to an already-parsed View, never to
// parsing itself.
type Option func(*options)

type options struct {
	maxSize          uint32
	spaceAsPlus      bool
	withURIReference bool
}

// poolOfOptions holds allocated options in a pool, to avoid undue gc pressure
// when callers parse intensively with custom options. Default options don't
// allocate anything, the same way fredbi-uri's option pool works.
var poolOfOptions = sync.Pool{
	New: func() any {
		o := packageLevelDefaults
		return &o
	},
}

var packageLevelDefaults = options{
	maxSize: 1<<32 - 1,
}

var muxDefaults sync.Mutex

func borrowOptions() *options {
	o := poolOfOptions.Get().(*options)
	*o = packageLevelDefaults
	return o
}

func redeemOptions(o *options) {
	if o == &packageLevelDefaults {
		return
	}
	poolOfOptions.Put(o)
}

// applyOptions applies options on a struct borrowed from the pool.
//
// **Don't mutate the returned options**
func applyOptions(opts []Option) (*options, func(*options)) {
	if len(opts) == 0 {
		// no overrides, no need to allocate a copy of the options
		return &packageLevelDefaults, redeemOptions
	}

	o := borrowOptions()
	for _, apply := range opts {
		apply(o)
	}

	return o, redeemOptions
}

// SetDefaultOptions allows tweaking package level defaults.
//
// Only use this during initialization, as this manipulates a package
// global variable.
func SetDefaultOptions(opts ...Option) {
	muxDefaults.Lock()
	defer muxDefaults.Unlock()

	for _, apply := range opts {
		apply(&packageLevelDefaults)
	}
}

// WithMaxSize bounds the size an indexed buffer may grow to. Splices that
// would exceed it fail with ErrTooLarge.
func WithMaxSize(n uint32) Option {
	return func(o *options) { o.maxSize = n }
}

// WithSpaceAsPlus controls whether the query codec maps a decoded space to
// '+' on encode and '+' to a decoded space on decode. It has no effect on
// any other component.
func WithSpaceAsPlus(enabled bool) Option {
	return func(o *options) { o.spaceAsPlus = enabled }
}

// WithURIReference relaxes ParseURI/ParseAbsoluteURI to accept a
// schemeless relative reference too, the same input ParseURIReference
// would otherwise be needed for. It has no effect on ParseRelativeRef or
// ParseURIReference, which already do not require a scheme.
func WithURIReference(enabled bool) Option {
	return func(o *options) { o.withURIReference = enabled }
}
