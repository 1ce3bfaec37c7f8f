package codegen

import (
	"errors"
	"fmt"
)

// RenderError represents an internal-invariant violation detected while
// rendering. The frontend converter is contractually required to produce IR
// that never triggers one of these; there is no recovery path.
type RenderError struct {
	// Code identifies the violated invariant.
	Code RenderErrorCode

	// Message is a human-readable description.
	Message string
}

// RenderErrorCode categorizes invariant violations.
type RenderErrorCode string

const (
	// ErrCodeUnrecognizedForm indicates a form variant the dispatcher
	// does not know. Only possible if the sealed Form interface grows a
	// case without a matching renderer rule.
	ErrCodeUnrecognizedForm RenderErrorCode = "UNRECOGNIZED_FORM"

	// ErrCodeUnrecognizedExpr indicates an expression variant the
	// unparser does not know.
	ErrCodeUnrecognizedExpr RenderErrorCode = "UNRECOGNIZED_EXPR"

	// ErrCodeMissingFlag indicates a directive that requires a flag
	// attribute but carries none.
	ErrCodeMissingFlag RenderErrorCode = "MISSING_FLAG"

	// ErrCodeBadSignature indicates a call signature whose keyword-block
	// correction could not be applied.
	ErrCodeBadSignature RenderErrorCode = "BAD_SIGNATURE"

	// ErrCodeUnbalancedDirective indicates an else/endif with no open
	// conditional block.
	ErrCodeUnbalancedDirective RenderErrorCode = "UNBALANCED_DIRECTIVE"
)

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// renderErrorf builds a RenderError with a formatted message.
func renderErrorf(code RenderErrorCode, format string, args ...any) *RenderError {
	return &RenderError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsInvariantViolation reports whether err is (or wraps) a RenderError.
// Every RenderError is fatal; callers use this to distinguish a broken
// frontend contract from plain I/O failure on the output sink.
func IsInvariantViolation(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
