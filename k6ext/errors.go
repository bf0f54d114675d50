package k6ext

import (
	"context"
	"fmt"
)

// Panic converts an internal error into a JS exception at the public API
// boundary: the only place this module throws into user script rather
// than returning a Go error.
func Panic(ctx context.Context, format string, a ...interface{}) {
	rt := Runtime(ctx)
	err := fmt.Errorf(format, a...)
	if rt == nil {
		panic(err)
	}
	panic(rt.NewGoError(err))
}

// UserFriendlyError wraps an internal error with a hint meant for the
// script author rather than for an operator reading logs.
type UserFriendlyError struct {
	cause error
	hint  string
}

func (e *UserFriendlyError) Error() string {
	if e.hint == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.cause.Error(), e.hint)
}

func (e *UserFriendlyError) Unwrap() error { return e.cause }

// NewUserFriendlyError wraps cause with hint, the kind of message
// surfaced for an option named "visibility" or "waitFor" (§6) that the
// caller most likely meant as "state".
func NewUserFriendlyError(cause error, hint string) error {
	return &UserFriendlyError{cause: cause, hint: hint}
}
