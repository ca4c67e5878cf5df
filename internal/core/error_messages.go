package core

// # Error Codes Reference
//
// Conversion failures are mapped to user-facing messages with a code that can
// be quoted to support. Codes are grouped by category:
//
// # Argument Errors (ARG001)
//
//	ARG001 - Wrong argument: a function got the wrong number or type of arguments
//	         Action: Check the function signature in the functions list
//	         Matches: tabular.ErrArityOrType
//
// # Conversion Errors (CSV001, SHP001, ENC001)
//
//	CSV001 - Malformed input: the text could not be parsed as delimited rows
//	         Action: Check quoting and the field delimiter
//	         Matches: tabular.ErrCodec
//
//	SHP001 - Unexpected shape: rows are not a list of records, or a row has the
//	         wrong number of fields in strict mode
//	         Action: Send a list of objects, or disable strict mode
//	         Matches: tabular.ErrShape
//
//	ENC001 - Invalid text: the output is not valid UTF-8
//	         Action: Remove binary data from the values
//	         Matches: tabular.ErrEncoding
//
// # Input Errors (INP001-INP003)
//
//	INP001 - Input too large: the request body exceeds the configured limit
//	         Action: Split the input into smaller pieces
//	         Matches: textio.ErrInputTooLarge
//
//	INP002 - Empty input: the request carried no data
//	         Action: Paste or upload some text
//	         Matches: ErrEmptyInput
//
//	INP003 - Unreadable body: JSON or YAML rows could not be parsed
//	         Action: Send a JSON array of objects
//	         Matches: ErrInvalidInput
//
// # Service Errors (CNV001-CNV003, HST001, FN001)
//
//	CNV001 - System busy: every conversion slot is taken
//	         Action: Please wait a moment and try again
//	         Matches: ErrTooManyConversions
//
//	CNV002 - Request cancelled
//	         Matches: context.Canceled
//
//	CNV003 - Request timed out
//	         Matches: context.DeadlineExceeded
//
//	HST001 - History entry not found
//	         Matches: history.ErrNotFound
//
//	FN001  - Unknown function
//	         Matches: *host.ErrUnknownFunction
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application log for the original
// error when users report ERR000.
//
// Typed matches are tried first, in table order; text patterns are matched
// case-insensitively afterwards.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/tabconv/internal/history"
	"github.com/JonMunkholm/tabconv/internal/host"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorRule maps either a target error (errors.Is) or a text pattern to a
// user message.
type errorRule struct {
	target  error
	pattern string
	msg     UserMessage
}

var errorRules = []errorRule{
	// Conversion errors
	{
		target: tabular.ErrArityOrType,
		msg: UserMessage{
			Message: "Wrong number or type of arguments",
			Action:  "Check the function signature in the functions list",
			Code:    "ARG001",
		},
	},
	{
		target: tabular.ErrCodec,
		msg: UserMessage{
			Message: "The input is not valid delimited text",
			Action:  "Check quoting and the field delimiter",
			Code:    "CSV001",
		},
	},
	{
		target: tabular.ErrShape,
		msg: UserMessage{
			Message: "The rows do not have the expected shape",
			Action:  "Send a list of objects, or disable strict mode",
			Code:    "SHP001",
		},
	},
	{
		target: tabular.ErrEncoding,
		msg: UserMessage{
			Message: "The output is not valid UTF-8 text",
			Action:  "Remove binary data from the values",
			Code:    "ENC001",
		},
	},

	// Input errors
	{
		target: textio.ErrInputTooLarge,
		msg: UserMessage{
			Message: "Input exceeds the maximum size",
			Action:  "Split the input into smaller pieces",
			Code:    "INP001",
		},
	},
	{
		target: ErrEmptyInput,
		msg: UserMessage{
			Message: "No input was provided",
			Action:  "Paste or upload some text",
			Code:    "INP002",
		},
	},
	{
		target: ErrInvalidInput,
		msg: UserMessage{
			Message: "The request body could not be read as rows",
			Action:  "Send a JSON array of objects",
			Code:    "INP003",
		},
	},

	// Service errors
	{
		target: ErrTooManyConversions,
		msg: UserMessage{
			Message: "System is busy with other conversions",
			Action:  "Please wait a moment and try again",
			Code:    "CNV001",
		},
	},
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "CNV002",
		},
	},
	{
		target: context.DeadlineExceeded,
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller input or try again later",
			Code:    "CNV003",
		},
	},
	{
		target: history.ErrNotFound,
		msg: UserMessage{
			Message: "History entry not found",
			Action:  "It may have been pruned. Refresh the history list",
			Code:    "HST001",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var unknownFunctionMessage = UserMessage{
	Message: "Unknown function",
	Action:  "See the functions list for available names",
	Code:    "FN001",
}

// defaultMessage is returned when no rule matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	msg := MapError(tabular.ErrCodec)
//	// msg.Code == "CSV001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var unknown *host.ErrUnknownFunction
	if errors.As(err, &unknown) {
		return unknownFunctionMessage
	}

	for _, r := range errorRules {
		if r.target != nil && errors.Is(err, r.target) {
			return r.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, r := range errorRules {
		if r.pattern != "" && strings.Contains(errStr, r.pattern) {
			return r.msg
		}
	}

	return defaultMessage
}

// ErrorCode returns the support code for err, or "" for nil.
func ErrorCode(err error) string {
	return MapError(err).Code
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
