package uri

import "strings"

// SegmentsView is a read-only sub-view over a path's '/'-delimited
// segments (C7). It re-derives segment boundaries from the owning
// buffer's path content on every call rather than caching them, since the
// owner can mutate (and thereby invalidate) the underlying buffer between
// calls.
type SegmentsView struct {
	b *buffer
}

func newSegmentsView(b *buffer) SegmentsView { return SegmentsView{b: b} }

// bounds returns the encoded path split into its segment spans, relative
// to the start of the path content.
func (s SegmentsView) bounds() []string {
	path := s.b.contentString(compPath)
	if path == "" {
		return nil
	}
	trimmed := path
	if trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	return strings.Split(trimmed, "/")
}

// Len returns the number of segments.
func (s SegmentsView) Len() int { return s.b.nseg }

// Empty reports whether the path has no segments.
func (s SegmentsView) Empty() bool { return s.b.nseg == 0 }

// Encoded returns the i-th segment, still percent-encoded.
func (s SegmentsView) Encoded(i int) (string, bool) {
	parts := s.bounds()
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return parts[i], true
}

// At returns the i-th segment, percent-decoded.
func (s SegmentsView) At(i int) (string, bool) {
	raw, ok := s.Encoded(i)
	if !ok {
		return "", false
	}
	return newDecodedView(raw, encodeOptions{}).String(), true
}

// Front returns the first segment.
func (s SegmentsView) Front() (string, bool) { return s.At(0) }

// Back returns the last segment.
func (s SegmentsView) Back() (string, bool) { return s.At(s.Len() - 1) }

// All returns every segment, percent-decoded, in order.
func (s SegmentsView) All() []string {
	parts := s.bounds()
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = newDecodedView(p, encodeOptions{}).String()
	}
	return out
}

// SegmentsEditor is the mutating counterpart to SegmentsView (C7): every
// method splices directly into the owning buffer via resizeRange.
//
// Grounded on fredbi-uri's builder.go WithPath, generalized from
// whole-path replacement to the per-segment insert/erase/replace
// operations spec §4.7 calls for.
type SegmentsEditor struct {
	b *buffer
}

func newSegmentsEditor(b *buffer) *SegmentsEditor { return &SegmentsEditor{b: b} }

func (e *SegmentsEditor) view() SegmentsView { return SegmentsView{b: e.b} }

func (e *SegmentsEditor) Len() int    { return e.b.nseg }
func (e *SegmentsEditor) Empty() bool { return e.b.nseg == 0 }

func (e *SegmentsEditor) At(i int) (string, bool)      { return e.view().At(i) }
func (e *SegmentsEditor) Encoded(i int) (string, bool) { return e.view().Encoded(i) }
func (e *SegmentsEditor) All() []string                { return e.view().All() }

// segmentByteRange returns the absolute [start,end) byte range of segment
// i's content within b.data (excluding its leading '/' if any), along
// with whether the segment itself is preceded by a '/' in the path.
func (e *SegmentsEditor) segmentByteRange(i int) (start, end int, hasSlashBefore bool, ok bool) {
	pStart, pEnd := e.b.contentBounds(compPath)
	path := e.b.data[pStart:pEnd]
	off := 0
	first := true
	if len(path) > 0 && path[0] == '/' {
		off = 1
	}
	idx := 0
	segStart := off
	for k := off; k <= len(path); k++ {
		if k == len(path) || path[k] == '/' {
			if idx == i {
				return pStart + segStart, pStart + k, !first || off == 1, true
			}
			idx++
			segStart = k + 1
			first = false
		}
	}
	return 0, 0, false, false
}

// replaceSegmentSpan replaces path bytes [absStart,absEnd) with raw, and
// adjusts the segment count by countDelta (e.g. -1 for an erase, +1 for an
// insert, 0 for a same-count replace).
func (e *SegmentsEditor) replaceSegmentSpan(absStart, absEnd int, raw string, countDelta int) error {
	if _, err := e.b.resizeRange(compPath, absStart, absEnd, len(raw), countDelta); err != nil {
		return err
	}
	copy(e.b.data[absStart:absStart+len(raw)], raw)
	return nil
}

// Replace overwrites segment i (percent-encoding value against the pchar
// grammar).
func (e *SegmentsEditor) Replace(i int, value string) error {
	start, end, _, ok := e.segmentByteRange(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "segment index %d out of range", i)
	}
	enc := encodeString(value, pcharClass, encodeOptions{})
	if err := e.replaceSegmentSpan(start, end, enc, 0); err != nil {
		return err
	}
	if i == 0 {
		return e.avoidSchemeAmbiguity()
	}
	return nil
}

// Insert inserts value as a new segment before index i (i == Len() appends
// at the end).
func (e *SegmentsEditor) Insert(i int, value string) error {
	enc := encodeString(value, pcharClass, encodeOptions{})
	pStart, pEnd := e.b.contentBounds(compPath)
	var err error
	if e.Len() == 0 {
		err = e.replaceSegmentSpan(pStart, pEnd, "/"+enc, 1)
	} else if i >= e.Len() {
		err = e.replaceSegmentSpan(pEnd, pEnd, "/"+enc, 1)
	} else {
		start, _, _, ok := e.segmentByteRange(i)
		if !ok {
			return newParseError(KindOutOfRange, i, ErrOutOfRange, "segment index %d out of range", i)
		}
		err = e.replaceSegmentSpan(start, start, enc+"/", 1)
	}
	if err != nil {
		return err
	}
	if i == 0 {
		return e.avoidSchemeAmbiguity()
	}
	return nil
}

// avoidSchemeAmbiguity implements spec §4.7's ambiguity rule: when the
// path has neither a scheme nor an authority, a first segment containing
// ':' would otherwise serialize indistinguishably from a scheme prefix
// (RFC 3986 §4.2's path-noscheme restriction). A leading "./" segment is
// spliced in to disambiguate, the same fix-up path-noscheme parsing
// itself enforces as a hard parse error (rules.go).
func (e *SegmentsEditor) avoidSchemeAmbiguity() error {
	if e.b.has(flagHasScheme) || e.b.has(flagHasAuthority) {
		return nil
	}
	pStartCheck, pEndCheck := e.b.contentBounds(compPath)
	if pEndCheck > pStartCheck && e.b.data[pStartCheck] == '/' {
		return nil // path-absolute, not path-noscheme: no ambiguity
	}
	first, ok := e.Encoded(0)
	if !ok || !strings.ContainsRune(first, ':') {
		return nil
	}
	if first == "." {
		return nil
	}
	pStart, _ := e.b.contentBounds(compPath)
	return e.replaceSegmentSpan(pStart, pStart, "./", 1)
}

// Erase removes segment i.
func (e *SegmentsEditor) Erase(i int) error {
	start, end, hasSlashBefore, ok := e.segmentByteRange(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "segment index %d out of range", i)
	}
	if hasSlashBefore {
		start--
	} else if end < len(e.b.data) && e.b.data[end] == '/' {
		end++
	}
	return e.replaceSegmentSpan(start, end, "", -1)
}

func (e *SegmentsEditor) PushBack(value string) error { return e.Insert(e.Len(), value) }
func (e *SegmentsEditor) PopBack() error {
	if e.Len() == 0 {
		return newParseError(KindOutOfRange, 0, ErrOutOfRange, "path has no segments to pop")
	}
	return e.Erase(e.Len() - 1)
}

// Clear empties the path entirely.
func (e *SegmentsEditor) Clear() error {
	pStart, pEnd := e.b.contentBounds(compPath)
	n := e.b.nseg
	return e.replaceSegmentSpan(pStart, pEnd, "", -n)
}

// Assign replaces the whole path with the given segments, each
// percent-encoded independently.
func (e *SegmentsEditor) Assign(values []string, absolute bool) error {
	var sb strings.Builder
	if absolute {
		sb.WriteByte('/')
	}
	for i, v := range values {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(encodeString(v, pcharClass, encodeOptions{}))
	}
	pStart, pEnd := e.b.contentBounds(compPath)
	if _, err := e.b.resizeRange(compPath, pStart, pEnd, sb.Len(), len(values)-e.b.nseg); err != nil {
		return err
	}
	copy(e.b.data[pStart:pStart+sb.Len()], sb.String())
	return e.avoidSchemeAmbiguity()
}
