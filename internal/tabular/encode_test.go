package tabular

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/tabconv/internal/value"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		rows value.List
		opts []Option
		want string
	}{
		{
			name: "empty table",
			rows: value.List{},
			want: "",
		},
		{
			name: "nil table",
			rows: nil,
			want: "",
		},
		{
			name: "missing key renders empty",
			rows: value.List{
				value.RecordOf("a", 1, "b", 2),
				value.RecordOf("a", 3),
			},
			want: "a,b\n1,2\n3,\n",
		},
		{
			name: "non-record elements skipped",
			rows: value.List{
				value.RecordOf("a", 1),
				value.Text("not-a-record"),
			},
			want: "a\n1\n",
		},
		{
			name: "nil record skipped",
			rows: value.List{
				value.RecordOf("a", 1),
				(*value.Record)(nil),
				value.RecordOf("a", 2),
			},
			want: "a\n1\n2\n",
		},
		{
			name: "header follows first record order",
			rows: value.List{
				value.RecordOf("b", 1, "a", 2),
				value.RecordOf("a", 3, "b", 4),
			},
			want: "b,a\n1,2\n4,3\n",
		},
		{
			name: "extra keys ignored",
			rows: value.List{
				value.RecordOf("a", 1),
				value.RecordOf("a", 2, "z", 9),
			},
			want: "a\n1\n2\n",
		},
		{
			name: "scalar rendering",
			rows: value.List{
				value.RecordOf("t", "x", "i", -42, "f", 1.5, "yes", true, "no", false, "n", nil),
			},
			want: "t,i,f,yes,no,n\nx,-42,1.5,true,false,\n",
		},
		{
			name: "float shortest form",
			rows: value.List{
				value.RecordOf("a", 0.1, "b", 1e21, "c", 100.0),
			},
			want: "a,b,c\n0.1,1e+21,100\n",
		},
		{
			name: "nested containers",
			rows: value.List{
				value.RecordOf("l", []any{1, "a"}, "r", value.RecordOf("k", 1)),
			},
			want: "l,r\n\"[1, \"\"a\"\"]\",{k: 1}\n",
		},
		{
			name: "quoting",
			rows: value.List{
				value.RecordOf("a", "x,y", "b", `say "hi"`, "c", "l1\nl2"),
			},
			want: "a,b,c\n\"x,y\",\"say \"\"hi\"\"\",\"l1\nl2\"\n",
		},
		{
			name: "single empty field is quoted",
			rows: value.List{
				value.RecordOf("a", ""),
				value.RecordOf("a", "x"),
			},
			want: "a\n\"\"\nx\n",
		},
		{
			name: "empty first record",
			rows: value.List{
				value.NewRecord(0),
			},
			want: "\n\n",
		},
		{
			name: "semicolon delimiter",
			rows: value.List{
				value.RecordOf("a", "1,5", "b", "x;y"),
			},
			opts: []Option{WithComma(';')},
			want: "a;b\n1,5;\"x;y\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.rows, tt.opts...)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	first := value.RecordOf("a", 1, "b", 2)
	second := value.RecordOf("b", 3)
	rows := value.List{first, second}

	if _, err := Encode(rows); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if got := second.Keys(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("second record keys = %v after Encode, want [b]", got)
	}
	if first.String() != "{a: 1, b: 2}" {
		t.Errorf("first record = %s after Encode", first)
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    value.List
		opts    []Option
		wantErr error
		wantMsg string
	}{
		{
			name:    "first element not a record",
			rows:    value.List{value.Text("x"), value.RecordOf("a", 1)},
			wantErr: ErrShape,
			wantMsg: "expected a Record as first element, got text",
		},
		{
			name:    "first element nil record",
			rows:    value.List{(*value.Record)(nil)},
			wantErr: ErrShape,
		},
		{
			name:    "first element nil interface",
			rows:    value.List{nil},
			wantErr: ErrShape,
			wantMsg: "got nil",
		},
		{
			name:    "strict rejects non-record element",
			rows:    value.List{value.RecordOf("a", 1), value.Int(2)},
			opts:    []Option{WithStrict(true)},
			wantErr: ErrShape,
			wantMsg: "element 1: expected a Record, got int",
		},
		{
			name:    "invalid utf-8 output",
			rows:    value.List{value.RecordOf("a", "\xff")},
			wantErr: ErrEncoding,
		},
		{
			name:    "invalid delimiter",
			rows:    value.List{value.RecordOf("a", 1)},
			opts:    []Option{WithComma('\r')},
			wantErr: ErrArityOrType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.rows, tt.opts...)
			if err == nil {
				t.Fatalf("Encode() = %q, want error", got)
			}
			if got != "" {
				t.Errorf("Encode() returned partial output %q", got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestEncodeValue(t *testing.T) {
	got, err := EncodeValue(value.List{value.RecordOf("a", 1)})
	if err != nil {
		t.Fatalf("EncodeValue() error = %v", err)
	}
	if got != value.Text("a\n1\n") {
		t.Errorf("EncodeValue() = %q, want %q", got, "a\n1\n")
	}
}

func TestEncodeValue_WrongType(t *testing.T) {
	args := []value.Value{
		nil,
		value.Text("a,b"),
		value.Int(1),
		value.RecordOf("a", 1),
	}

	for _, arg := range args {
		_, err := EncodeValue(arg)
		if !errors.Is(err, ErrArityOrType) {
			t.Errorf("EncodeValue(%s) error = %v, want ErrArityOrType", value.KindOf(arg), err)
		}
		if KindOf(err) != KindArityOrType {
			t.Errorf("KindOf() = %v, want %v", KindOf(err), KindArityOrType)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want string
	}{
		{"nil", nil, ""},
		{"null", value.Null{}, ""},
		{"text", value.Text("héllo"), "héllo"},
		{"int", value.Int(math.MinInt64), "-9223372036854775808"},
		{"float integral", value.Float(3), "3"},
		{"float fraction", value.Float(2.25), "2.25"},
		{"float small", value.Float(1e-7), "1e-07"},
		{"float inf", value.Float(math.Inf(1)), "+Inf"},
		{"true", value.Bool(true), "true"},
		{"false", value.Bool(false), "false"},
		{"list", value.List{value.Int(1), value.Null{}}, "[1, null]"},
		{"record", value.RecordOf("a", "x"), `{a: "x"}`},
		{"nil record", (*value.Record)(nil), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundTrip_Idempotent(t *testing.T) {
	inputs := []string{
		"a,b,c\n1,2,3\n4,5,6\n",
		"name,note\nAda,\"likes, commas\"\nBob,\"says \"\"hi\"\"\"\n",
		"k\n\"multi\nline\"\n",
		"a\n\"\"\nx\n",
		"a,b\n",
		"",
		"\ufeffh1,h2\n1,\n",
	}

	for _, input := range inputs {
		first, err := Decode(input)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", input, err)
		}

		text, err := Encode(value.TableFromRecords(first))
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		second, err := Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", text, err)
		}

		if !reflect.DeepEqual(dump(first), dump(second)) {
			t.Errorf("round trip of %q:\nfirst  %v\nsecond %v", input, dump(first), dump(second))
		}
	}
}

func TestRoundTrip_SpecialCharacters(t *testing.T) {
	values := []string{
		"plain",
		"with,comma",
		`with "quotes"`,
		"with\nnewline",
		"with\r\ncrlf",
		" leading space",
		"trailing space ",
		"",
		`"`,
		"tab\there",
	}

	for _, v := range values {
		rows := value.List{value.RecordOf("v", v, "w", "x")}
		text, err := Encode(rows)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", v, err)
		}

		got, err := Decode(text)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", text, err)
		}
		if len(got) != 1 {
			t.Fatalf("Decode(%q) returned %d records, want 1", text, len(got))
		}

		field, _ := got[0].Get("v")
		if field != value.Text(v) {
			t.Errorf("round trip of %q = %q", v, field)
		}
	}
}
