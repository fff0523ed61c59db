package uri

import "strings"

// Param is one decoded key/value pair of a query string. A parameter with
// no '=' (a bare flag, e.g. "?debug") has Value == "" and HasValue ==
// false, distinct from "?debug=" which has HasValue == true and an empty
// Value.
type Param struct {
	Key      string
	Value    string
	HasValue bool
}

// ParamsView is a read-only sub-view over a query's '&'-delimited
// parameters (C8), each split on the first unescaped '='.
type ParamsView struct {
	b *buffer
}

func newParamsView(b *buffer) ParamsView { return ParamsView{b: b} }

func (p ParamsView) encOpts() encodeOptions { return encodeOptions{spaceAsPlus: p.b.spaceAsPlus} }

// rawPairs splits the encoded query on '&'.
func (p ParamsView) rawPairs() []string {
	q := p.b.contentString(compQuery)
	if q == "" {
		return nil
	}
	return strings.Split(q, "&")
}

func splitPair(raw string) (key, value string, hasValue bool) {
	if i := strings.IndexByte(raw, '='); i >= 0 {
		return raw[:i], raw[i+1:], true
	}
	return raw, "", false
}

// Len returns the number of parameters.
func (p ParamsView) Len() int { return p.b.nparam }

func (p ParamsView) Empty() bool { return p.b.nparam == 0 }

// At returns the i-th parameter, decoded.
func (p ParamsView) At(i int) (Param, bool) {
	pairs := p.rawPairs()
	if i < 0 || i >= len(pairs) {
		return Param{}, false
	}
	k, v, hasValue := splitPair(pairs[i])
	opts := p.encOpts()
	param := Param{Key: newDecodedView(k, opts).String(), HasValue: hasValue}
	if hasValue {
		param.Value = newDecodedView(v, opts).String()
	}
	return param, true
}

// All returns every parameter, decoded, in order.
func (p ParamsView) All() []Param {
	pairs := p.rawPairs()
	out := make([]Param, len(pairs))
	for i := range pairs {
		out[i], _ = p.At(i)
	}
	return out
}

// Find returns the first parameter matching key (decoded comparison).
func (p ParamsView) Find(key string) (Param, int, bool) {
	return p.find(key, false, false)
}

// FindLast returns the last parameter matching key.
func (p ParamsView) FindLast(key string) (Param, int, bool) {
	return p.find(key, false, true)
}

// FindFold is Find with a case-insensitive key comparison.
func (p ParamsView) FindFold(key string) (Param, int, bool) {
	return p.find(key, true, false)
}

func (p ParamsView) find(key string, ignoreCase, last bool) (Param, int, bool) {
	pairs := p.rawPairs()
	found := -1
	var fp Param
	for i := range pairs {
		cand, _ := p.At(i)
		eq := cand.Key == key
		if ignoreCase {
			eq = strings.EqualFold(cand.Key, key)
		}
		if eq {
			found = i
			fp = cand
			if !last {
				break
			}
		}
	}
	if found < 0 {
		return Param{}, -1, false
	}
	return fp, found, true
}

// Get returns the first parameter matching key, decoded, by insertion
// order — spec §4.8's at(key), not-found on miss. Distinct from the
// index-based At(i).
func (p ParamsView) Get(key string) (Param, bool) {
	param, _, ok := p.find(key, false, false)
	return param, ok
}

// Contains reports whether any parameter has the given key.
func (p ParamsView) Contains(key string) bool {
	_, _, ok := p.Find(key)
	return ok
}

// Count returns how many parameters have the given key.
func (p ParamsView) Count(key string) int {
	n := 0
	for _, param := range p.All() {
		if param.Key == key {
			n++
		}
	}
	return n
}

// ParamsEditor is the mutating counterpart to ParamsView (C8).
//
// Grounded on fredbi-uri's builder.go WithQuery, generalized from
// whole-query replacement to the per-parameter insert/erase/set
// operations spec §4.8 calls for.
type ParamsEditor struct {
	b *buffer
}

func newParamsEditor(b *buffer) *ParamsEditor { return &ParamsEditor{b: b} }

func (e *ParamsEditor) view() ParamsView { return ParamsView{b: e.b} }

func (e *ParamsEditor) Len() int                           { return e.b.nparam }
func (e *ParamsEditor) Empty() bool                        { return e.b.nparam == 0 }
func (e *ParamsEditor) At(i int) (Param, bool)              { return e.view().At(i) }
func (e *ParamsEditor) All() []Param                        { return e.view().All() }
func (e *ParamsEditor) Find(key string) (Param, int, bool)  { return e.view().Find(key) }
func (e *ParamsEditor) Get(key string) (Param, bool)        { return e.view().Get(key) }
func (e *ParamsEditor) Contains(key string) bool            { return e.view().Contains(key) }
func (e *ParamsEditor) Count(key string) int                { return e.view().Count(key) }

func (e *ParamsEditor) encOpts() encodeOptions { return encodeOptions{spaceAsPlus: e.b.spaceAsPlus} }

func (e *ParamsEditor) encodePair(key, value string, hasValue bool) string {
	opts := e.encOpts()
	out := encode(nil, []byte(key), paramTokenClass, opts)
	if hasValue {
		out = append(out, '=')
		out = encode(out, []byte(value), paramTokenClass, opts)
	}
	return string(out)
}

// pairByteRange returns the absolute [start,end) byte range of parameter
// i within the query content, and whether an '&' precedes it.
func (e *ParamsEditor) pairByteRange(i int) (start, end int, hasAmpBefore bool, ok bool) {
	qStart, qEnd := e.b.contentBounds(compQuery)
	q := e.b.data[qStart:qEnd]
	idx := 0
	segStart := 0
	for k := 0; k <= len(q); k++ {
		if k == len(q) || q[k] == '&' {
			if idx == i {
				return qStart + segStart, qStart + k, segStart > 0, true
			}
			idx++
			segStart = k + 1
		}
	}
	return 0, 0, false, false
}

func (e *ParamsEditor) replacePairSpan(absStart, absEnd int, raw string, countDelta int) error {
	if _, err := e.b.resizeRange(compQuery, absStart, absEnd, len(raw), countDelta); err != nil {
		return err
	}
	copy(e.b.data[absStart:absStart+len(raw)], raw)
	e.b.flags |= flagHasQuery
	return nil
}

// Replace overwrites parameter i with a new key/value pair.
func (e *ParamsEditor) Replace(i int, key, value string, hasValue bool) error {
	start, end, _, ok := e.pairByteRange(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "parameter index %d out of range", i)
	}
	return e.replacePairSpan(start, end, e.encodePair(key, value, hasValue), 0)
}

// Insert inserts a new key/value pair before index i (i == Len() appends).
func (e *ParamsEditor) Insert(i int, key, value string, hasValue bool) error {
	enc := e.encodePair(key, value, hasValue)
	qStart, qEnd := e.b.contentBounds(compQuery)
	if e.Len() == 0 {
		if !e.b.has(flagHasQuery) {
			// no query yet: the '?' delimiter has to be written too
			return e.replacePairSpan(qStart, qEnd, "?"+enc, 1)
		}
		return e.replacePairSpan(qStart, qEnd, enc, 1)
	}
	if i >= e.Len() {
		return e.replacePairSpan(qEnd, qEnd, "&"+enc, 1)
	}
	start, _, _, ok := e.pairByteRange(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "parameter index %d out of range", i)
	}
	return e.replacePairSpan(start, start, enc+"&", 1)
}

// PushBack appends a new key/value pair.
func (e *ParamsEditor) PushBack(key, value string, hasValue bool) error {
	return e.Insert(e.Len(), key, value, hasValue)
}

// Append is an alias for PushBack, matching the "append one parameter"
// wording of spec §4.8.
func (e *ParamsEditor) Append(key, value string, hasValue bool) error {
	return e.PushBack(key, value, hasValue)
}

// Erase removes parameter i.
func (e *ParamsEditor) Erase(i int) error {
	start, end, hasAmpBefore, ok := e.pairByteRange(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "parameter index %d out of range", i)
	}
	if hasAmpBefore {
		start--
	} else if end < len(e.b.data) && e.b.data[end] == '&' {
		end++
	}
	return e.replacePairSpan(start, end, "", -1)
}

func (e *ParamsEditor) PopBack() error {
	if e.Len() == 0 {
		return newParseError(KindOutOfRange, 0, ErrOutOfRange, "query has no parameters to pop")
	}
	return e.Erase(e.Len() - 1)
}

// Clear empties the query entirely, including the leading '?'.
func (e *ParamsEditor) Clear() error {
	if _, err := e.b.resizeComponent(compQuery, 0); err != nil {
		return err
	}
	e.b.flags &^= flagHasQuery
	e.b.nparam = 0
	return nil
}

// Set replaces the value of the first parameter matching key, or appends
// a new one if none exists.
func (e *ParamsEditor) Set(key, value string) error {
	if _, i, ok := e.Find(key); ok {
		return e.Replace(i, key, value, true)
	}
	return e.PushBack(key, value, true)
}

// UnsetAt drops the "=value" of parameter i, reverting it to a bare flag
// (HasValue == false) in place. The parameter itself, and its key, are
// left untouched; a parameter that already has no value is a no-op.
// Spec §4.8's unset(it).
func (e *ParamsEditor) UnsetAt(i int) error {
	param, ok := e.At(i)
	if !ok {
		return newParseError(KindOutOfRange, i, ErrOutOfRange, "parameter index %d out of range", i)
	}
	if !param.HasValue {
		return nil
	}
	return e.Replace(i, param.Key, "", false)
}

// Unset drops the "=value" of the first parameter matching key, reverting
// it to a bare flag. It does not erase the parameter, and touches at most
// one match. A no-op if key is not found.
func (e *ParamsEditor) Unset(key string) error {
	_, i, ok := e.Find(key)
	if !ok {
		return nil
	}
	return e.UnsetAt(i)
}
