package uri

import "github.com/bits-and-blooms/bitset"

// charClass is a membership predicate over the 128-entry ASCII table,
// backed by a bitset the way fredbi-uri's decode.go builds its charSet
// values, extended here with one bitset per named RFC 3986 character set
// instead of the teacher's single ad hoc set-plus-extra-runes approach.
type charClass struct {
	bits *bitset.BitSet
}

func newCharClass() charClass {
	return charClass{bits: bitset.New(128)}
}

func (c charClass) add(bs ...byte) charClass {
	for _, b := range bs {
		c.bits.Set(uint(b))
	}
	return c
}

func (c charClass) addRange(lo, hi byte) charClass {
	for b := lo; b <= hi; b++ {
		c.bits.Set(uint(b))
	}
	return c
}

func (c charClass) union(other charClass) charClass {
	out := newCharClass()
	out.bits.InPlaceUnion(c.bits)
	out.bits.InPlaceUnion(other.bits)
	return out
}

// without returns a class containing every byte of c except those in bs,
// used to carve the query param grammar's reserved delimiters back out of
// the broader pchar set (spec §4.8: '&', '=', '+', '#' must always be
// percent-encoded inside a key or value).
func (c charClass) without(bs ...byte) charClass {
	out := newCharClass()
	out.bits.InPlaceUnion(c.bits)
	for _, b := range bs {
		out.bits.Clear(uint(b))
	}
	return out
}

// contains reports whether b belongs to the class. Bytes outside the ASCII
// range never belong: every component grammar in RFC 3986 is ASCII-only,
// non-ASCII octets only ever arrive percent-encoded.
func (c charClass) contains(b byte) bool {
	if b >= 128 {
		return false
	}
	return c.bits.Test(uint(b))
}

// findFirstNotOf returns the index of the first byte in s that is not a
// member of c, or len(s) if every byte belongs.
func (c charClass) findFirstNotOf(s []byte) int {
	for i := 0; i < len(s); i++ {
		if !c.contains(s[i]) {
			return i
		}
	}
	return len(s)
}

var (
	alphaClass      charClass
	digitClass      charClass
	alnumClass      charClass
	hexdigClass     charClass
	unreservedClass charClass
	subDelimsClass  charClass
	genDelimsClass  charClass
	reservedClass   charClass
	pcharClass      charClass
	userinfoClass   charClass
	regNameClass    charClass
	queryClass      charClass
	fragmentClass   charClass
	paramTokenClass charClass
	schemeClass     charClass
	schemeHeadClass charClass
)

func init() {
	alphaClass = newCharClass().addRange('a', 'z').addRange('A', 'Z')
	digitClass = newCharClass().addRange('0', '9')
	alnumClass = alphaClass.union(digitClass)
	hexdigClass = digitClass.union(newCharClass().addRange('a', 'f').addRange('A', 'F'))

	unreservedClass = alnumClass.union(newCharClass().add('-', '.', '_', '~'))
	subDelimsClass = newCharClass().add('!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=')
	genDelimsClass = newCharClass().add(':', '/', '?', '#', '[', ']', '@')
	reservedClass = genDelimsClass.union(subDelimsClass)

	pcharClass = unreservedClass.union(subDelimsClass).add(':', '@')
	userinfoClass = unreservedClass.union(subDelimsClass).add(':')
	regNameClass = unreservedClass.union(subDelimsClass)
	queryClass = pcharClass.union(newCharClass().add('/', '?'))
	fragmentClass = queryClass

	// paramTokenClass is pchar with the query parameter syntax's own
	// structural delimiters ('&' pair separator, '=' key/value separator,
	// '+' the space_as_plus escape) carved back out, so a literal one of
	// these bytes inside a decoded key or value is always percent-encoded
	// rather than silently becoming structure (spec §4.8).
	paramTokenClass = pcharClass.without('&', '=', '+')

	schemeHeadClass = alphaClass
	schemeClass = alnumClass.union(newCharClass().add('+', '-', '.'))
}

func isAlpha(b byte) bool  { return alphaClass.contains(b) }
func isDigitB(b byte) bool { return digitClass.contains(b) }
func isHexDig(b byte) bool { return hexdigClass.contains(b) }
func isUnreserved(b byte) bool { return unreservedClass.contains(b) }
func isSubDelim(b byte) bool   { return subDelimsClass.contains(b) }
func isGenDelim(b byte) bool   { return genDelimsClass.contains(b) }
func isPchar(b byte) bool      { return pcharClass.contains(b) }
