package common

import "context"

// World identifies one of the two JavaScript global scopes a frame
// exposes: the page's own (main) or this system's private one (utility).
type World string

const (
	MainWorld    World = "main"
	UtilityWorld World = "utility"
)

// PageDelegate is the browser-transport collaborator the Frame Manager
// and Frame drive: it turns caller intent into CDP calls and reports the
// results back as plain values, never as frame-coordination-core types.
type PageDelegate interface {
	// NavigateFrame asks the transport to navigate frame to url, with an
	// optional referer. If the navigation mints a fresh document,
	// newDocumentID is non-empty.
	NavigateFrame(ctx context.Context, frame *Frame, url, referer string) (newDocumentID string, err error)

	// GetFrameElement returns the <iframe>/<frame> ElementHandle that
	// embeds frame in its parent, or nil for the main frame.
	GetFrameElement(ctx context.Context, frame *Frame) (ElementHandle, error)

	// AdoptElementHandle moves handle, resolved in some world, into
	// targetContext, returning the adopted handle.
	AdoptElementHandle(ctx context.Context, handle ElementHandle, targetContext ExecutionContext) (ElementHandle, error)

	// InputActionEpilogue is awaited after every action whose source is
	// 'input' (click, type, press, ...), giving the transport a chance to
	// let the browser settle before the action is considered complete.
	InputActionEpilogue(ctx context.Context) error

	// CSPErrorsAsynchronousForInlineScripts reports whether a Content
	// Security Policy violation for an inline <script> is reported
	// asynchronously (requiring addScriptTag to race a console message)
	// rather than synchronously from the evaluation itself.
	CSPErrorsAsynchronousForInlineScripts() bool
}

// ExecutionContext evaluates user code inside one World of one Frame. An
// implementation is responsible for reporting its own destruction via an
// error whose message is one of the two strings RerunnableTask filters
// on ("Execution context was destroyed", "Cannot find context with
// specified id").
type ExecutionContext interface {
	// EvaluateInternal evaluates fn(arg) and returns its value.
	EvaluateInternal(ctx context.Context, fn string, arg interface{}) (interface{}, error)
	// EvaluateHandleInternal evaluates fn(arg) and returns a handle to
	// its (possibly non-serializable) result.
	EvaluateHandleInternal(ctx context.Context, fn string, arg interface{}) (JSHandle, error)
	// InjectedScript returns a handle to the page-side helper script used
	// for polling predicates (selector waits, waitForFunction).
	InjectedScript(ctx context.Context) (JSHandle, error)
	// Frame returns the frame this context belongs to.
	Frame() *Frame
	// World returns which of the frame's two worlds this context is.
	World() World
}

// JSHandle is a handle to a JS value living in some ExecutionContext;
// ElementHandle is the DOM-node-backed specialization of it.
type JSHandle interface {
	Dispose(ctx context.Context) error
}

// ElementHandle is the DOM-handle layer the core schedules actions
// against. Its concrete implementation lives in a browser-specific
// module; the core only needs to invoke actions and detect the
// NotConnectedError case for the retry loop (§4.4.1): every method below
// returns a *NotConnectedError if the underlying node was removed from the
// DOM between resolution and invocation.
type ElementHandle interface {
	JSHandle
	// ContentFrame returns the Frame this element embeds, if it is an
	// <iframe>/<frame> element.
	ContentFrame(ctx context.Context) (*Frame, error)

	Click(ctx context.Context) error
	DblClick(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	Focus(ctx context.Context) error
	Hover(ctx context.Context) error
	Check(ctx context.Context) error
	Uncheck(ctx context.Context) error
	SelectOption(ctx context.Context, values []string) ([]string, error)
	SetInputFiles(ctx context.Context, files []string) error
	Type(ctx context.Context, text string) error
	Press(ctx context.Context, key string) error
	TextContent(ctx context.Context) (string, error)
	InnerText(ctx context.Context) (string, error)
	InnerHTML(ctx context.Context) (string, error)
	GetAttribute(ctx context.Context, name string) (string, error)
}

// SchedulableTask is what a SelectorEngine wait / waitForFunction build
// hands to a RerunnableTask: given a live ExecutionContext, start a
// remote poll and return a handle to it.
type SchedulableTask func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error)

// InjectedScriptPollHandle is the local proxy for a page-side poll loop:
// Result resolves when the predicate is satisfied (or errors); Cancel
// tells the page side to stop polling, used when the owning RerunnableTask
// is cancelled or superseded by a context transition.
type InjectedScriptPollHandle interface {
	Result(ctx context.Context) (JSHandle, error)
	Cancel(ctx context.Context)
}

// SelectorWaitTask is what SelectorEngine._waitForSelectorTask returns:
// the world the task prefers to run in, and the schedulable task itself.
type SelectorWaitTask struct {
	World World
	Task  SchedulableTask
}

// SelectorEngine resolves selector strings into element handle(s), and
// builds the schedulable wait/dispatch tasks Frame.waitForSelector and
// Frame.dispatchEvent hand to a RerunnableTask.
type SelectorEngine interface {
	Query(ctx context.Context, frame *Frame, selector string) (ElementHandle, error)
	QueryAll(ctx context.Context, frame *Frame, selector string) ([]ElementHandle, error)
	QueryArray(ctx context.Context, frame *Frame, selector string) (JSHandle, error)
	WaitForSelectorTask(frame *Frame, selector string, state string) (SelectorWaitTask, error)
	DispatchEventTask(frame *Frame, selector, eventType string, eventInit interface{}) (SelectorWaitTask, error)
}
