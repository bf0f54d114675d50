package common

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TimeoutError is produced by a ProgressController when its deadline is
// reached before the operation completed.
type TimeoutError struct {
	timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s", e.timeout)
}

// NewTimeoutError returns a TimeoutError for the given timeout duration
// rendered as the caller supplied it (e.g. "30s").
func NewTimeoutError(timeout string) error {
	return &TimeoutError{timeout: timeout}
}

// NavigationError wraps a request failure whose documentId matched the
// frame's pendingDocumentId.
type NavigationError struct {
	cause error
}

func (e *NavigationError) Error() string { return e.cause.Error() }
func (e *NavigationError) Unwrap() error { return e.cause }

// NewNavigationError builds a NavigationError from the browser's error
// text, appending the detached-frame hint when canceled is set.
func NewNavigationError(errorText string, canceled bool) error {
	if canceled {
		errorText += "; maybe frame was detached?"
	}
	return &NavigationError{cause: errors.New(errorText)}
}

// NavigationInterruptedError is raised by waitForSpecificDocument when a
// different document id commits before the expected one.
type NavigationInterruptedError struct {
	expected, got string
}

func (e *NavigationInterruptedError) Error() string {
	return "navigation interrupted by another one"
}

// NewNavigationInterruptedError returns the error raised when document
// got committed while expected was still pending.
func NewNavigationInterruptedError(expected, got string) error {
	return &NavigationInterruptedError{expected: expected, got: got}
}

// FrameDetachedError is raised when a frame detaches while an operation
// held it.
type FrameDetachedError struct {
	url string
}

func (e *FrameDetachedError) Error() string {
	if e.url == "" {
		return "frame got detached"
	}
	return fmt.Sprintf("frame got detached (url: %q)", e.url)
}

// NewFrameDetachedError returns a FrameDetachedError for the frame that
// last lived at url.
func NewFrameDetachedError(url string) error {
	return &FrameDetachedError{url: url}
}

// PageDisconnectedError is raised when the browser transport disconnects
// while an operation was in flight.
type PageDisconnectedError struct{}

func (e *PageDisconnectedError) Error() string { return "page has been closed" }

// NewPageDisconnectedError returns a PageDisconnectedError.
func NewPageDisconnectedError() error { return &PageDisconnectedError{} }

// ExecutionContextDestroyedError is raised by an ExecutionContext
// implementation when the browser tears down its world. It is absorbed
// internally by RerunnableTask and must never reach a caller.
type ExecutionContextDestroyedError struct {
	cause error
}

func (e *ExecutionContextDestroyedError) Error() string { return e.cause.Error() }
func (e *ExecutionContextDestroyedError) Unwrap() error  { return e.cause }

// NewExecutionContextDestroyedError wraps cause (one of the two browser
// error strings RerunnableTask filters on) as the typed error.
func NewExecutionContextDestroyedError(cause error) error {
	return &ExecutionContextDestroyedError{cause: cause}
}

// isExecutionContextDestroyedMessage reports whether err's message is one
// of the two browser-reported strings that mean the world went away
// mid-evaluation, per the Rerunnable Task error filter.
func isExecutionContextDestroyedMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Execution context was destroyed") ||
		strings.Contains(msg, "Cannot find context with specified id")
}

// NotConnectedError is raised by an element action when the underlying
// DOM node was removed between resolution and the action. It is absorbed
// by the retry-with-selector-if-not-connected loop.
type NotConnectedError struct{}

func (e *NotConnectedError) Error() string { return "element is not attached to the DOM" }

// NewNotConnectedError returns a NotConnectedError.
func NewNotConnectedError() error { return &NotConnectedError{} }

// InvalidArgumentError is raised for malformed caller input: unknown
// lifecycle value, unknown wait-for-selector state, conflicting referer,
// too many evaluate arguments, or a missing exactly-one-of url/path/content.
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string { return e.msg }

// NewInvalidArgumentError returns an InvalidArgumentError with msg.
func NewInvalidArgumentError(msg string) error {
	return &InvalidArgumentError{msg: msg}
}

// CSPError is raised when an inline script or style tag is blocked by
// Content Security Policy; text is taken from the console message that
// reported it.
type CSPError struct {
	msg string
}

func (e *CSPError) Error() string { return e.msg }

// NewCSPError returns a CSPError carrying the console message's text.
func NewCSPError(msg string) error {
	return &CSPError{msg: msg}
}
