package tabular

import "unicode/utf8"

// DefaultComma is the field delimiter used when none is configured.
const DefaultComma = ','

// Option configures Decode and Encode.
type Option func(*options)

type options struct {
	comma  rune
	strict bool
}

// WithComma sets the field delimiter. It is an explicit setting; the input is
// never sniffed for a delimiter. A zero rune keeps the default.
func WithComma(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.comma = r
		}
	}
}

// WithStrict switches shape handling. When on, Decode rejects rows whose
// field count differs from the header and Encode rejects non-record
// elements instead of skipping them. Off is the default.
func WithStrict(on bool) Option {
	return func(o *options) {
		o.strict = on
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{comma: DefaultComma}
	for _, opt := range opts {
		opt(&o)
	}
	if !validComma(o.comma) {
		return o, arityError("invalid field delimiter %q", o.comma)
	}
	return o, nil
}

// validComma mirrors the delimiter rules of encoding/csv.
func validComma(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// ParseComma converts a delimiter flag or query value to a rune. A tab may be
// written as `\t` or "tab". The empty string yields zero, which WithComma
// treats as the default.
func ParseComma(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "TAB":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || !validComma(r) {
		return 0, arityError("invalid field delimiter %q", s)
	}
	return r, nil
}
