package common

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/browsercore/xk6-frame/log"
)

// fakePageDelegate is a hand-written PageDelegate for exercising the
// coordination core without a live CDP session.
type fakePageDelegate struct {
	mu sync.Mutex

	navigateFn func(ctx context.Context, frame *Frame, url, referer string) (string, error)

	inputEpilogueCalls int
	cspAsync           bool
}

func (d *fakePageDelegate) NavigateFrame(ctx context.Context, frame *Frame, url, referer string) (string, error) {
	if d.navigateFn != nil {
		return d.navigateFn(ctx, frame, url, referer)
	}
	return "", nil
}

func (d *fakePageDelegate) GetFrameElement(ctx context.Context, frame *Frame) (ElementHandle, error) {
	return nil, nil
}

func (d *fakePageDelegate) AdoptElementHandle(
	ctx context.Context, handle ElementHandle, targetContext ExecutionContext,
) (ElementHandle, error) {
	return handle, nil
}

func (d *fakePageDelegate) InputActionEpilogue(ctx context.Context) error {
	d.mu.Lock()
	d.inputEpilogueCalls++
	d.mu.Unlock()
	return nil
}

func (d *fakePageDelegate) CSPErrorsAsynchronousForInlineScripts() bool {
	return d.cspAsync
}

var _ PageDelegate = &fakePageDelegate{}

// immediatePoll is an InjectedScriptPollHandle that resolves synchronously
// to a fixed handle/error, for fakes that don't need real polling.
type immediatePoll struct {
	handle JSHandle
	err    error
}

func (p *immediatePoll) Result(ctx context.Context) (JSHandle, error) { return p.handle, p.err }
func (p *immediatePoll) Cancel(ctx context.Context)                   {}

var _ InjectedScriptPollHandle = &immediatePoll{}

// fakeSelectorEngine hands back one ElementHandle per WaitForSelectorTask
// call, in order, so tests can simulate a selector re-resolving to a fresh
// element on every retry.
type fakeSelectorEngine struct {
	mu          sync.Mutex
	waitResults []ElementHandle
	waitCalls   int
	waitErr     error
}

func (e *fakeSelectorEngine) Query(ctx context.Context, frame *Frame, selector string) (ElementHandle, error) {
	return nil, nil
}

func (e *fakeSelectorEngine) QueryAll(ctx context.Context, frame *Frame, selector string) ([]ElementHandle, error) {
	return nil, nil
}

func (e *fakeSelectorEngine) QueryArray(ctx context.Context, frame *Frame, selector string) (JSHandle, error) {
	return nil, nil
}

func (e *fakeSelectorEngine) WaitForSelectorTask(frame *Frame, selector string, state string) (SelectorWaitTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.waitErr != nil {
		return SelectorWaitTask{}, e.waitErr
	}
	idx := e.waitCalls
	e.waitCalls++
	var handle ElementHandle
	if idx < len(e.waitResults) {
		handle = e.waitResults[idx]
	}
	return SelectorWaitTask{
		World: MainWorld,
		Task: func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error) {
			if handle == nil {
				return &immediatePoll{}, nil
			}
			return &immediatePoll{handle: handle}, nil
		},
	}, nil
}

func (e *fakeSelectorEngine) DispatchEventTask(
	frame *Frame, selector, eventType string, eventInit interface{},
) (SelectorWaitTask, error) {
	return SelectorWaitTask{
		World: MainWorld,
		Task: func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error) {
			return &immediatePoll{}, nil
		},
	}, nil
}

var _ SelectorEngine = &fakeSelectorEngine{}

// fakeElementHandle is a hand-written ElementHandle whose Click call
// returns clickErr (nil for success), for exercising the
// retry-with-selector-if-not-connected loop.
type fakeElementHandle struct {
	mu sync.Mutex

	clickErr          error
	disposeCalls      int
	clickCalls        int
	textContentResult string
}

func (h *fakeElementHandle) Dispose(ctx context.Context) error {
	h.mu.Lock()
	h.disposeCalls++
	h.mu.Unlock()
	return nil
}

func (h *fakeElementHandle) ContentFrame(ctx context.Context) (*Frame, error) { return nil, nil }

func (h *fakeElementHandle) Click(ctx context.Context) error {
	h.mu.Lock()
	h.clickCalls++
	err := h.clickErr
	h.mu.Unlock()
	return err
}

func (h *fakeElementHandle) DblClick(ctx context.Context) error                { return nil }
func (h *fakeElementHandle) Fill(ctx context.Context, value string) error      { return nil }
func (h *fakeElementHandle) Focus(ctx context.Context) error                   { return nil }
func (h *fakeElementHandle) Hover(ctx context.Context) error                   { return nil }
func (h *fakeElementHandle) Check(ctx context.Context) error                   { return nil }
func (h *fakeElementHandle) Uncheck(ctx context.Context) error                 { return nil }
func (h *fakeElementHandle) SetInputFiles(ctx context.Context, files []string) error { return nil }
func (h *fakeElementHandle) Type(ctx context.Context, text string) error       { return nil }
func (h *fakeElementHandle) Press(ctx context.Context, key string) error       { return nil }

func (h *fakeElementHandle) SelectOption(ctx context.Context, values []string) ([]string, error) {
	return values, nil
}

func (h *fakeElementHandle) TextContent(ctx context.Context) (string, error) {
	return h.textContentResult, nil
}

func (h *fakeElementHandle) InnerText(ctx context.Context) (string, error)  { return "", nil }
func (h *fakeElementHandle) InnerHTML(ctx context.Context) (string, error)  { return "", nil }
func (h *fakeElementHandle) GetAttribute(ctx context.Context, name string) (string, error) {
	return "", nil
}

var _ ElementHandle = &fakeElementHandle{}

// fakeExecutionContext is a hand-written ExecutionContext whose evaluation
// hooks are caller-supplied, for exercising WaitForFunction/SetContent/etc.
// without a real JS runtime.
type fakeExecutionContext struct {
	frame *Frame
	world World

	evalFn       func(ctx context.Context, fn string, arg interface{}) (interface{}, error)
	evalHandleFn func(ctx context.Context, fn string, arg interface{}) (JSHandle, error)
	injected     JSHandle
}

func (c *fakeExecutionContext) EvaluateInternal(
	ctx context.Context, fn string, arg interface{},
) (interface{}, error) {
	if c.evalFn != nil {
		return c.evalFn(ctx, fn, arg)
	}
	return nil, nil
}

func (c *fakeExecutionContext) EvaluateHandleInternal(
	ctx context.Context, fn string, arg interface{},
) (JSHandle, error) {
	if c.evalHandleFn != nil {
		return c.evalHandleFn(ctx, fn, arg)
	}
	return c.injected, nil
}

func (c *fakeExecutionContext) InjectedScript(ctx context.Context) (JSHandle, error) {
	return c.injected, nil
}

func (c *fakeExecutionContext) Frame() *Frame { return c.frame }
func (c *fakeExecutionContext) World() World  { return c.world }

var _ ExecutionContext = &fakeExecutionContext{}

// newTestPage builds a Page/FrameManager pair without dialing a CDP
// session, wiring delegate/engine in place of the real transport.
func newTestPage(t *testing.T, delegate PageDelegate, engine SelectorEngine) (*Page, *FrameManager) {
	t.Helper()
	if delegate == nil {
		delegate = &fakePageDelegate{}
	}
	if engine == nil {
		engine = &fakeSelectorEngine{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := log.NewLogger(ctx, log.NullLogger(), false, nil)

	page := &Page{
		BaseEventEmitter: NewBaseEventEmitter(ctx),
		ctx:              ctx,
		logger:           logger,
		defaultTimeout:   5 * time.Second,
		extraHTTPHeaders: map[string]string{},
		closedCh:         make(chan struct{}),
	}
	fm := NewFrameManager(page, delegate, engine, logger)
	page.frameManager = fm
	fm.FrameAttached("main", "")

	return page, fm
}

// newTestFrame is newTestPage trimmed to the main frame it bootstraps.
func newTestFrame(t *testing.T, delegate PageDelegate, engine SelectorEngine) (*Frame, *FrameManager) {
	t.Helper()
	_, fm := newTestPage(t, delegate, engine)
	return fm.MainFrame(), fm
}
