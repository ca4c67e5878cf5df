package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/tabconv/internal/history"
	"github.com/JonMunkholm/tabconv/internal/host"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "arity error",
			err:      &tabular.Error{Kind: tabular.KindArityOrType, Msg: "csv_parse(string) takes exactly 1 argument"},
			wantCode: "ARG001",
		},
		{
			name:     "codec error",
			err:      &tabular.Error{Kind: tabular.KindCodec, Err: errors.New("bare \" in non-quoted-field")},
			wantCode: "CSV001",
		},
		{
			name:     "shape error",
			err:      &tabular.Error{Kind: tabular.KindShape, Msg: "expected a Record"},
			wantCode: "SHP001",
		},
		{
			name:     "encoding error",
			err:      tabular.ErrEncoding,
			wantCode: "ENC001",
		},
		{
			name:     "wrapped input too large",
			err:      fmt.Errorf("%w: 20 bytes exceeds limit of 10", textio.ErrInputTooLarge),
			wantCode: "INP001",
		},
		{
			name:     "empty input",
			err:      ErrEmptyInput,
			wantCode: "INP002",
		},
		{
			name:     "wrapped invalid input",
			err:      fmt.Errorf("%w: decode JSON: unexpected EOF", ErrInvalidInput),
			wantCode: "INP003",
		},
		{
			name:     "too many conversions",
			err:      ErrTooManyConversions,
			wantCode: "CNV001",
		},
		{
			name:     "cancelled",
			err:      fmt.Errorf("decode: %w", context.Canceled),
			wantCode: "CNV002",
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantCode: "CNV003",
		},
		{
			name:     "history not found",
			err:      history.ErrNotFound,
			wantCode: "HST001",
		},
		{
			name:     "unknown function",
			err:      &host.ErrUnknownFunction{Name: "nope"},
			wantCode: "FN001",
		},
		{
			name:     "rate limit by text",
			err:      errors.New("Rate Limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() returned empty message")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrTooManyConversions)

	expected := "System is busy with other conversions (Code: CNV001). Please wait a moment and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", tabular.ErrCodec, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	techErr := &tabular.Error{Kind: tabular.KindShape, Msg: "element 2: expected a Record, got int"}
	userErr := NewUserError(techErr)

	if userErr.Error() != "The rows do not have the expected shape" {
		t.Errorf("Error() = %q, want user message", userErr.Error())
	}
	if !errors.Is(userErr, tabular.ErrShape) {
		t.Error("Unwrap() should expose the original error")
	}
}
