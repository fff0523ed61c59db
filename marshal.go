package uri

// MarshalText yields the serialized URI reference as UTF-8 bytes.
func (o *Owner) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// MarshalBinary is like MarshalText.
func (o *Owner) MarshalBinary() ([]byte, error) {
	return o.MarshalText()
}

// UnmarshalText parses b as a URI-reference using package-level default
// options, replacing o's contents.
//
// Grounded on fredbi-uri's uri_extra.go UnmarshalText/UnmarshalBinary,
// adapted from replacing a whole URI struct value to parsing into a fresh
// indexed buffer that then replaces o's View.
func (o *Owner) UnmarshalText(b []byte) error {
	def := borrowOptions()
	defer redeemOptions(def)

	nb := newBuffer(def.maxSize)
	nb.spaceAsPlus = def.spaceAsPlus
	if err := parseInto(nb, string(b), modeURIReference); err != nil {
		return err
	}
	o.View = newView(nb)
	return nil
}

// UnmarshalBinary is like UnmarshalText.
func (o *Owner) UnmarshalBinary(b []byte) error {
	return o.UnmarshalText(b)
}
