package codegen

import (
	"fmt"

	"effectful/internal/diag"
	"effectful/internal/source"
)

// Error is a generation failure anchored to a source span.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return e.Code.ID() + ": " + e.Message
}

// Diagnostic converts e for a diag.Bag.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message)
}

func errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Message: fmt.Sprintf(format, args...)}
}
