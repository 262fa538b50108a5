package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryBackend  Category = "backend"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// CLIError is a structured error with a code, explanation and hint.
type CLIError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *CLIError) WithDetail(d string) *CLIError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CLIError) WithSuggestion(s string) *CLIError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *CLIError) Wrap(err error) *CLIError {
	e.Wrapped = err
	return e
}

// New creates a CLIError from a registered error code.
func New(code string) *CLIError {
	template, ok := registry[code]
	if !ok {
		return &CLIError{Code: code, Message: "Unknown error"}
	}
	return &CLIError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a CLIError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *CLIError {
	return &CLIError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code unless it already is a CLIError.
func FromError(err error, code string) *CLIError {
	if err == nil {
		return nil
	}
	var ce *CLIError
	if stderrors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}

// errorTemplate defines a registered error type.
type errorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]errorTemplate{
	// Configuration (E100-E119)
	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The file passed with --config does not exist.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file is not valid TOML or holds a value of the wrong type.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},

	// Backend (E130-E149)
	"E130": {
		Category: CategoryBackend,
		Message:  "Backend unreachable",
		Detail:   "The WebSocket connection to the EIM backend could not be opened.",
	},
	"E131": {
		Category: CategoryBackend,
		Message:  "Backend connection lost",
	},
	"E132": {
		Category: CategoryBackend,
		Message:  "Backend request failed",
	},
	"E133": {
		Category: CategoryBackend,
		Message:  "Backend did not answer in time",
	},

	// CLI usage (E160-E179)
	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
	},
}
