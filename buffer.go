package uri

import "fmt"

// hostKind identifies the syntactic shape of a parsed host component.
type hostKind uint8

const (
	hostNone hostKind = iota
	hostRegName
	hostIPv4
	hostIPv6
	hostIPFuture
)

// component names one of the seven canonical URI components, in the fixed
// order the grammar imposes.
type component int

const (
	compScheme component = iota
	compUserinfo
	compHost
	compPort
	compPath
	compQuery
	compFragment
	numComponents
)

// flagBits records which optional components/delimiters are present, since
// an empty component and an absent one serialize differently (the
// empty/absent/non-empty state machine of spec §4.6).
type flagBits uint16

const (
	flagHasScheme flagBits = 1 << iota
	flagHasAuthority
	flagHasUserinfo
	flagHasPort
	flagHasQuery
	flagHasFragment
)

// buffer is the indexed URI buffer (C5): a single contiguous byte slice
// holding the serialized URI, together with the seven component end
// offsets and metadata (presence flags, host kind, port value, segment and
// parameter counts) that make component lookup O(1). Decoded lengths are
// not stored: they are computed by scanning the component when asked for.
//
// Grounded on fredbi-uri's URI/Authority struct, generalized from "one
// string field per component" (which forces a reallocation and a full
// rebuild of the string on every edit) to a single backing array with
// splice primitives, as spec §4.5 requires.
type buffer struct {
	data []byte
	ends [int(numComponents)]uint32
	flags   flagBits
	hKind   hostKind
	port    uint16
	portSet bool // port component is present and numeric
	nseg    int
	nparam  int
	maxSize uint32

	// spaceAsPlus governs whether query-string encode/decode treats '+' as
	// an encoded space, an option scoped to the query component only
	// (spec §4.8): it is set once at construction and does not change
	// the grammar accepted by the parser, only the params editor's
	// encode/decode behavior.
	spaceAsPlus bool
}

func newBuffer(maxSize uint32) *buffer {
	if maxSize == 0 {
		maxSize = 1<<32 - 1
	}
	return &buffer{maxSize: maxSize}
}

func (b *buffer) has(f flagBits) bool { return b.flags&f != 0 }

func (b *buffer) size() int     { return len(b.data) }
func (b *buffer) capacity() int { return cap(b.data) }

// String returns the serialized URI as a string copied out of the
// backing array.
func (b *buffer) String() string { return string(b.data) }

// Reserve grows the backing array's capacity to at least n bytes without
// changing its logical size.
func (b *buffer) Reserve(n int) { b.ensureCapacity(n) }

// Clear empties the buffer entirely.
func (b *buffer) Clear() {
	b.data = b.data[:0]
	b.ends = [int(numComponents)]uint32{}
	b.flags = 0
	b.hKind = hostNone
	b.port = 0
	b.portSet = false
	b.nseg = 0
	b.nparam = 0
}

func (b *buffer) ensureCapacity(needed int) {
	if cap(b.data) >= needed {
		return
	}
	newCap := cap(b.data) * 2
	if newCap < needed {
		newCap = needed
	}
	if newCap < 16 {
		newCap = 16
	}
	nd := make([]byte, len(b.data), newCap)
	copy(nd, b.data)
	b.data = nd
}

func (b *buffer) regionStart(i component) uint32 {
	if i == compScheme {
		return 0
	}
	return b.ends[i-1]
}

func (b *buffer) regionEnd(i component) uint32 { return b.ends[i] }

// contentBounds returns the absolute [start,end) byte range of a
// component's content, stripping its leading/trailing delimiter bytes
// (e.g. the trailing ':' of a scheme, or the leading '?' of a query).
func (b *buffer) contentBounds(i component) (start, end int) {
	regionStart := int(b.regionStart(i))
	regionEnd := int(b.regionEnd(i))

	switch i {
	case compScheme:
		if !b.has(flagHasScheme) {
			return regionStart, regionStart
		}
		return regionStart, regionEnd - 1 // strip trailing ':'
	case compUserinfo:
		pre := 0
		if b.has(flagHasAuthority) {
			pre = 2 // "//"
		}
		if !b.has(flagHasUserinfo) {
			return regionStart + pre, regionStart + pre
		}
		return regionStart + pre, regionEnd - 1 // strip trailing '@'
	case compHost:
		if b.hKind == hostIPv6 || b.hKind == hostIPFuture {
			return regionStart + 1, regionEnd - 1 // strip enclosing '[' ']'
		}
		return regionStart, regionEnd
	case compPort:
		if !b.has(flagHasPort) {
			return regionStart, regionStart
		}
		return regionStart + 1, regionEnd // strip leading ':'
	case compPath:
		return regionStart, regionEnd
	case compQuery:
		if !b.has(flagHasQuery) {
			return regionStart, regionStart
		}
		return regionStart + 1, regionEnd // strip leading '?'
	case compFragment:
		if !b.has(flagHasFragment) {
			return regionStart, regionStart
		}
		return regionStart + 1, regionEnd // strip leading '#'
	}
	return 0, 0
}

// content returns the encoded content span of component i, directly into
// the backing array: O(1), no copy.
func (b *buffer) content(i component) []byte {
	start, end := b.contentBounds(i)
	return b.data[start:end]
}

func (b *buffer) contentString(i component) string { return string(b.content(i)) }

// spliceBytes is the core single-component splice primitive (C5): it
// replaces the byte range [absStart, absEnd) with newLen bytes, shifting
// every byte after absEnd (and every component end from `affected`
// onward) by the resulting delta, reallocating geometrically (>=2x) if
// capacity is exceeded. It returns the (now correctly sized, but
// uninitialized) span the caller must write into.
func (b *buffer) spliceBytes(absStart, absEnd, newLen int, affected component) ([]byte, error) {
	oldLen := absEnd - absStart
	delta := newLen - oldLen
	oldSize := len(b.data)

	if delta > 0 {
		needed := oldSize + delta
		if uint32(needed) > b.maxSize {
			return nil, newParseError(KindTooLarge, absStart, ErrTooLarge,
				"resizing component would grow the buffer to %d bytes, exceeding the %d byte limit", needed, b.maxSize)
		}
		b.ensureCapacity(needed)
		b.data = b.data[:needed]
		copy(b.data[absEnd+delta:needed], b.data[absEnd:oldSize])
	} else if delta < 0 {
		copy(b.data[absEnd+delta:oldSize+delta], b.data[absEnd:oldSize])
		b.data = b.data[:oldSize+delta]
	}

	if delta != 0 {
		for j := affected; j < numComponents; j++ {
			b.ends[j] = uint32(int(b.ends[j]) + delta)
		}
	}

	return b.data[absStart : absStart+newLen], nil
}

// resizeComponent grows or shrinks component i's whole region, its
// delimiters included (the ':' after a scheme, the '@' after a userinfo,
// the ':' before a port, the '?' and '#' before a query and a fragment,
// the brackets around an IP literal), to newLength bytes and returns the
// span for the caller to write into, delimiters and all. Only the "//"
// authority marker at the front of the userinfo region is kept out of the
// span. This is the whole-component splice primitive of spec §4.5.
func (b *buffer) resizeComponent(i component, newLength int) ([]byte, error) {
	start, end := int(b.regionStart(i)), int(b.regionEnd(i))
	if i == compUserinfo && b.has(flagHasAuthority) {
		start += 2 // keep the "//" authority marker
	}
	return b.spliceBytes(start, end, newLength, i)
}

// resizeRange is the multi-component splice primitive used by the
// segments and params editors: it replaces a sub-span inside component i's
// content (e.g. a run of path segments, or a run of query parameters) and
// additionally adjusts the item count (nseg or nparam) by countDelta.
func (b *buffer) resizeRange(i component, subStart, subEnd, newLen, countDelta int) ([]byte, error) {
	span, err := b.spliceBytes(subStart, subEnd, newLen, i)
	if err != nil {
		return nil, err
	}
	switch i {
	case compPath:
		b.nseg += countDelta
	case compQuery:
		b.nparam += countDelta
	default:
		panic(fmt.Sprintf("resizeRange: component %d does not carry a sub-item count", i))
	}
	return span, nil
}
