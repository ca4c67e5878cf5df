package tabular

import (
	"errors"
	"fmt"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// KindArityOrType: wrong argument count or wrong top-level argument type.
	KindArityOrType Kind = iota + 1
	// KindCodec: the codec rejected the input as malformed.
	KindCodec
	// KindShape: the encoder's first element is not a record, or a strict
	// mode shape check failed.
	KindShape
	// KindEncoding: the assembled output is not valid UTF-8 text.
	KindEncoding
)

func (k Kind) String() string {
	switch k {
	case KindArityOrType:
		return "arity or type error"
	case KindCodec:
		return "codec error"
	case KindShape:
		return "shape error"
	case KindEncoding:
		return "encoding error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every operation in this package.
//
// Error() is the human-readable message the host shows; for codec failures
// it is the codec's diagnostic verbatim.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrArityOrType = &Error{Kind: KindArityOrType}
	ErrCodec       = &Error{Kind: KindCodec}
	ErrShape       = &Error{Kind: KindShape}
	ErrEncoding    = &Error{Kind: KindEncoding}
)

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func arityError(format string, args ...any) error {
	return &Error{Kind: KindArityOrType, Msg: fmt.Sprintf(format, args...)}
}

func shapeError(format string, args ...any) error {
	return &Error{Kind: KindShape, Msg: fmt.Sprintf(format, args...)}
}

func codecError(err error) error {
	return &Error{Kind: KindCodec, Err: err}
}
