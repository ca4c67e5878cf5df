package host

import (
	"fmt"

	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/value"
)

const (
	ParseName     = "csv_parse"
	StringifyName = "csv_stringify"
)

func init() {
	RegisterAll(Builtins()...)
}

// Builtins returns the tabular conversion functions with default options.
func Builtins() []Function {
	return BuiltinsWith()
}

// BuiltinsWith returns the tabular conversion functions bound to opts.
func BuiltinsWith(opts ...tabular.Option) []Function {
	return []Function{
		{
			Name:      ParseName,
			Signature: "csv_parse(string) -> list",
			Doc:       "Parse delimited text into a list of records keyed by the header row.",
			Fn:        parseFunc(opts),
		},
		{
			Name:      StringifyName,
			Signature: "csv_stringify(list) -> string",
			Doc:       "Render a list of records as delimited text with a header row.",
			Fn:        stringifyFunc(opts),
		},
	}
}

func parseFunc(opts []tabular.Option) NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError("csv_parse(string) takes exactly 1 argument, got %d", len(args))
		}
		if _, ok := args[0].(value.Text); !ok {
			return nil, arityError("csv_parse(string): argument must be a string, got %s", value.KindOf(args[0]))
		}
		rows, err := tabular.DecodeValue(args[0], opts...)
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
}

func stringifyFunc(opts []tabular.Option) NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError("csv_stringify(list) takes exactly 1 argument, got %d", len(args))
		}
		if _, ok := args[0].(value.List); !ok {
			return nil, arityError("csv_stringify(list): argument must be a list, got %s", value.KindOf(args[0]))
		}
		text, err := tabular.EncodeValue(args[0], opts...)
		if err != nil {
			return nil, err
		}
		return text, nil
	}
}

func arityError(format string, args ...any) error {
	return &tabular.Error{Kind: tabular.KindArityOrType, Msg: fmt.Sprintf(format, args...)}
}
