package tabular

import (
	"errors"
	"testing"
)

func TestParseComma(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{",", ',', false},
		{";", ';', false},
		{"|", '|', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{"§", '§', false},
		{`"`, 0, true},
		{"\n", 0, true},
		{"\r", 0, true},
		{"ab", 0, true},
		{"\xff", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseComma(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrArityOrType) {
				t.Errorf("ParseComma(%q) error = %v, want ErrArityOrType", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseComma(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseComma(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildOptions(t *testing.T) {
	o, err := buildOptions(nil)
	if err != nil {
		t.Fatalf("buildOptions(nil) error = %v", err)
	}
	if o.comma != DefaultComma || o.strict {
		t.Errorf("defaults = %+v", o)
	}

	o, err = buildOptions([]Option{WithComma(0), WithStrict(true), WithComma(';')})
	if err != nil {
		t.Fatalf("buildOptions() error = %v", err)
	}
	if o.comma != ';' || !o.strict {
		t.Errorf("options = %+v, want comma ';' strict", o)
	}

	if _, err := buildOptions([]Option{WithComma('"')}); !errors.Is(err, ErrArityOrType) {
		t.Errorf("quote delimiter error = %v, want ErrArityOrType", err)
	}
}
