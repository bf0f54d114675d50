package common

import (
	"context"
	"fmt"
	"time"
)

func newPollTicker() *time.Ticker {
	return time.NewTicker(20 * time.Millisecond)
}

// cssSelectorEngine is the SelectorEngine implementation this module
// ships: a thin wrapper over document.querySelector/querySelectorAll
// evaluated through the frame's own ExecutionContext, rather than a
// CDP DOM-domain nodeId walk (nodeIds go stale under concurrent page
// mutation in a way remote-object handles do not).
type cssSelectorEngine struct{}

// NewCSSSelectorEngine returns the stock SelectorEngine.
func NewCSSSelectorEngine() SelectorEngine {
	return &cssSelectorEngine{}
}

var _ SelectorEngine = &cssSelectorEngine{}

func (e *cssSelectorEngine) worldFor(frame *Frame) World {
	return MainWorld
}

// Query resolves selector to the first matching element, or nil.
func (e *cssSelectorEngine) Query(ctx context.Context, frame *Frame, selector string) (ElementHandle, error) {
	execCtx, err := frame.context(ctx, e.worldFor(frame))
	if err != nil {
		return nil, err
	}
	handle, err := execCtx.EvaluateHandleInternal(ctx, `(sel) => document.querySelector(sel)`, selector)
	if err != nil {
		return nil, err
	}
	return asElementHandle(handle), nil
}

// QueryAll resolves selector to every matching element. Enumerating a
// remote NodeList into per-element handles needs Runtime.getProperties,
// which this module's Runtime domain wrapper does not expose; callers
// needing individual handles should use QueryArray and operate on the
// array handle directly.
func (e *cssSelectorEngine) QueryAll(ctx context.Context, frame *Frame, selector string) ([]ElementHandle, error) {
	return nil, fmt.Errorf("QueryAll is not supported by this transport; use QueryArray")
}

// QueryArray resolves selector to a handle of the full NodeList.
func (e *cssSelectorEngine) QueryArray(ctx context.Context, frame *Frame, selector string) (JSHandle, error) {
	execCtx, err := frame.context(ctx, e.worldFor(frame))
	if err != nil {
		return nil, err
	}
	return execCtx.EvaluateHandleInternal(ctx, `(sel) => Array.from(document.querySelectorAll(sel))`, selector)
}

// WaitForSelectorTask builds the SchedulableTask a RerunnableTask polls:
// it re-evaluates document.querySelector(selector) against the requested
// state until satisfied.
func (e *cssSelectorEngine) WaitForSelectorTask(frame *Frame, selector string, state string) (SelectorWaitTask, error) {
	world := e.worldFor(frame)
	fn := selectorStateScript(state)

	task := func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error) {
		return newSelectorPoll(ctx, execCtx, fn, selector, state), nil
	}
	return SelectorWaitTask{World: world, Task: task}, nil
}

// DispatchEventTask builds the SchedulableTask that waits for selector to
// be attached, then dispatches a synthetic event against it.
func (e *cssSelectorEngine) DispatchEventTask(frame *Frame, selector, eventType string, eventInit interface{}) (SelectorWaitTask, error) {
	world := e.worldFor(frame)

	task := func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error) {
		return newDispatchPoll(ctx, execCtx, selector, eventType, eventInit), nil
	}
	return SelectorWaitTask{World: world, Task: task}, nil
}

func asElementHandle(h JSHandle) ElementHandle {
	if h == nil {
		return nil
	}
	elem, ok := h.(ElementHandle)
	if !ok {
		return nil
	}
	return elem
}

// selectorStateScript returns the `(sel) => element|null` predicate
// appropriate for state, matching the attached/detached/visible/hidden
// vocabulary of §4.4's waitForSelector row.
func selectorStateScript(state string) string {
	switch state {
	case "attached":
		return `(sel) => document.querySelector(sel)`
	case "detached":
		return `(sel) => document.querySelector(sel) ? null : true`
	case "hidden":
		return `(sel) => { const el = document.querySelector(sel); if (!el) return true; const r = el.getBoundingClientRect(); return (r.width === 0 || r.height === 0) ? true : null; }`
	default: // visible
		return `(sel) => { const el = document.querySelector(sel); if (!el) return null; const r = el.getBoundingClientRect(); return (r.width > 0 && r.height > 0) ? el : null; }`
	}
}

// selectorPoll re-evaluates fn(selector) on an interval until it returns
// a truthy value.
type selectorPoll struct {
	cancel context.CancelFunc
	resCh  chan pollOutcome
}

func newSelectorPoll(ctx context.Context, execCtx ExecutionContext, fn, selector, state string) InjectedScriptPollHandle {
	pctx, cancel := context.WithCancel(ctx)
	p := &selectorPoll{cancel: cancel, resCh: make(chan pollOutcome, 1)}

	go func() {
		ticker := newPollTicker()
		defer ticker.Stop()
		for {
			select {
			case <-pctx.Done():
				p.resCh <- pollOutcome{nil, pctx.Err()}
				return
			case <-ticker.C:
				if state == "detached" || state == "hidden" {
					r, err := execCtx.EvaluateInternal(pctx, fn, selector)
					if err != nil {
						p.resCh <- pollOutcome{nil, err}
						return
					}
					if r == true {
						p.resCh <- pollOutcome{nil, nil}
						return
					}
					continue
				}
				v, err := execCtx.EvaluateHandleInternal(pctx, fn, selector)
				if err != nil {
					p.resCh <- pollOutcome{nil, err}
					return
				}
				if v != nil {
					p.resCh <- pollOutcome{v, nil}
					return
				}
			}
		}
	}()

	return p
}

func (p *selectorPoll) Result(ctx context.Context) (JSHandle, error) {
	select {
	case o := <-p.resCh:
		return o.handle, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *selectorPoll) Cancel(ctx context.Context) { p.cancel() }

type dispatchPoll struct {
	cancel context.CancelFunc
	resCh  chan pollOutcome
}

func newDispatchPoll(ctx context.Context, execCtx ExecutionContext, selector, eventType string, eventInit interface{}) InjectedScriptPollHandle {
	pctx, cancel := context.WithCancel(ctx)
	p := &dispatchPoll{cancel: cancel, resCh: make(chan pollOutcome, 1)}

	go func() {
		ticker := newPollTicker()
		defer ticker.Stop()
		for {
			select {
			case <-pctx.Done():
				p.resCh <- pollOutcome{nil, pctx.Err()}
				return
			case <-ticker.C:
				v, err := execCtx.EvaluateHandleInternal(pctx, `(args) => {
					const el = document.querySelector(args.sel);
					if (!el) return null;
					el.dispatchEvent(new Event(args.type, {bubbles: true, ...(args.init || {})}));
					return el;
				}`, map[string]interface{}{"sel": selector, "type": eventType, "init": eventInit})
				if err != nil {
					p.resCh <- pollOutcome{nil, err}
					return
				}
				if v == nil {
					continue
				}
				p.resCh <- pollOutcome{v, nil}
				return
			}
		}
	}()

	return p
}

func (p *dispatchPoll) Result(ctx context.Context) (JSHandle, error) {
	select {
	case o := <-p.resCh:
		return o.handle, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *dispatchPoll) Cancel(ctx context.Context) { p.cancel() }
