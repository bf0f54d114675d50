package common

import (
	"context"
	"time"
)

// WaitForSelectorOptions configures WaitForSelector.
type WaitForSelectorOptions struct {
	State   string        `js:"state"` // attached, detached, visible, hidden
	Timeout time.Duration `js:"timeout"`
}

// WaitForSelector schedules the SelectorEngine's wait task in the world it
// requests, adopting the resolved handle into the main world if it
// resolved in the utility one, per §4.4's waitForSelector row.
func (f *Frame) WaitForSelector(ctx context.Context, selector string, opts WaitForSelectorOptions) (ElementHandle, error) {
	state := opts.State
	if state == "" {
		state = "visible"
	}
	switch state {
	case "attached", "detached", "visible", "hidden":
	default:
		return nil, NewInvalidArgumentError("unknown waitForSelector state: " + state)
	}

	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			waitTask, err := f.manager.selectorEngine.WaitForSelectorTask(f, selector, state)
			if err != nil {
				return nil, err
			}

			task := newRerunnableTask(f, waitTask.World, waitTask.Task)
			progress.CleanupWhenAborted(func() { task.terminate(NewTimeoutError(f.operationTimeout(opts.Timeout).String())) })

			res, err := task.Result(progress.Context())
			if err != nil {
				return nil, err
			}
			handle, _ := res.(JSHandle)
			if handle == nil {
				return nil, nil
			}
			elem, ok := handle.(ElementHandle)
			if !ok {
				return nil, nil
			}
			if waitTask.World != MainWorld {
				mainCtx, err := f.context(progress.Context(), MainWorld)
				if err != nil {
					return nil, err
				}
				return f.delegate.AdoptElementHandle(progress.Context(), elem, mainCtx)
			}
			return elem, nil
		})
	if err != nil {
		return nil, err
	}
	elem, _ := v.(ElementHandle)
	return elem, nil
}

// WaitForFunctionOptions configures WaitForFunction.
type WaitForFunctionOptions struct {
	Polling interface{}   `js:"polling"` // "raf" or a positive time.Duration
	Timeout time.Duration `js:"timeout"`
}

// WaitForFunction builds an injected-script poll evaluating fn(arg) in the
// main world until it returns a truthy value.
func (f *Frame) WaitForFunction(ctx context.Context, fn string, arg interface{}, opts WaitForFunctionOptions) (JSHandle, error) {
	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(opts.Timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			builder := func(ctx context.Context, execCtx ExecutionContext) (InjectedScriptPollHandle, error) {
				injected, err := execCtx.InjectedScript(ctx)
				if err != nil {
					return nil, err
				}
				return newPredicatePoll(ctx, execCtx, injected, fn, arg, opts.Polling)
			}
			task := newRerunnableTask(f, MainWorld, builder)
			progress.CleanupWhenAborted(func() { task.terminate(NewTimeoutError(f.operationTimeout(opts.Timeout).String())) })
			res, err := task.Result(progress.Context())
			if err != nil {
				return nil, err
			}
			handle, _ := res.(JSHandle)
			return handle, nil
		})
	if err != nil {
		return nil, err
	}
	handle, _ := v.(JSHandle)
	return handle, nil
}

// predicatePoll is the stock InjectedScriptPollHandle used by
// WaitForFunction: it re-evaluates fn(arg) on an interval (the polling
// duration, or 20ms when polling is "raf" or not a positive duration)
// until it returns a truthy value or ctx is done.
type predicatePoll struct {
	cancel context.CancelFunc
	resCh  chan pollOutcome
}

type pollOutcome struct {
	handle JSHandle
	err    error
}

func newPredicatePoll(ctx context.Context, execCtx ExecutionContext, injected JSHandle, fn string, arg interface{}, polling interface{}) (InjectedScriptPollHandle, error) {
	pctx, cancel := context.WithCancel(ctx)
	p := &predicatePoll{cancel: cancel, resCh: make(chan pollOutcome, 1)}

	interval := 20 * time.Millisecond
	if d, ok := polling.(time.Duration); ok && d > 0 {
		interval = d
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-pctx.Done():
				p.resCh <- pollOutcome{nil, pctx.Err()}
				return
			case <-ticker.C:
				v, err := execCtx.EvaluateHandleInternal(pctx, fn, arg)
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

	return p, nil
}

func (p *predicatePoll) Result(ctx context.Context) (JSHandle, error) {
	select {
	case o := <-p.resCh:
		return o.handle, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *predicatePoll) Cancel(ctx context.Context) { p.cancel() }

// Query resolves selector to a single element handle in the main world.
func (f *Frame) Query(ctx context.Context, selector string) (ElementHandle, error) {
	return f.manager.selectorEngine.Query(ctx, f, selector)
}

// QueryAll resolves selector to every matching element handle.
func (f *Frame) QueryAll(ctx context.Context, selector string) ([]ElementHandle, error) {
	return f.manager.selectorEngine.QueryAll(ctx, f, selector)
}

// DispatchEvent dispatches a synthetic DOM event on the element resolved
// by selector, using the retry-with-selector protocol since the element
// may detach between resolution and dispatch.
func (f *Frame) DispatchEvent(ctx context.Context, selector, eventType string, eventInit interface{}, timeout time.Duration) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, handle ElementHandle) error {
		waitTask, err := f.manager.selectorEngine.DispatchEventTask(f, selector, eventType, eventInit)
		if err != nil {
			return err
		}
		task := newRerunnableTask(f, waitTask.World, waitTask.Task)
		_, err = task.Result(progress.Context())
		return err
	})
}

// elementAction is one entry of the retry-with-selector-if-not-connected
// table (§4.4.1): it performs the action against a resolved, still-attached
// element.
type elementAction func(ctx context.Context, handle ElementHandle) error

// retryWithSelector implements §4.4.1: while the progress deadline has
// not expired, resolve selector via a fresh RerunnableTask wait, invoke
// action against the resulting handle, and retry on NotConnectedError.
func (f *Frame) retryWithSelector(ctx context.Context, selector string, timeout time.Duration, action func(progress *Progress, handle ElementHandle) error) error {
	controller := NewProgressController(f.logger)
	_, err := controller.RunAbortableTask(ctx, f.operationTimeout(timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			return nil, f.retryWithSelectorCtx(progress, selector, func(h ElementHandle) error {
				return action(progress, h)
			})
		})
	return err
}

// click/dblclick/fill/focus/hover/check/uncheck/selectOption/setInputFiles/
// type/press/textContent/innerText/innerHTML/getAttribute: every one of
// these shares the retryWithSelector wrapper (§4.4.1); the 'input'-sourced
// ones (click, dblclick, check, uncheck, type, press) additionally await
// the PageDelegate's InputActionEpilogue before returning.

// Click clicks the element resolved by selector.
func (f *Frame) Click(ctx context.Context, selector string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.Click(ctx)
	})
}

// DblClick double-clicks the element resolved by selector.
func (f *Frame) DblClick(ctx context.Context, selector string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.DblClick(ctx)
	})
}

// Fill sets the element's value to text.
func (f *Frame) Fill(ctx context.Context, selector, text string, timeout time.Duration) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, h ElementHandle) error {
		return h.Fill(progress.Context(), text)
	})
}

// Focus focuses the element resolved by selector.
func (f *Frame) Focus(ctx context.Context, selector string, timeout time.Duration) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, h ElementHandle) error {
		return h.Focus(progress.Context())
	})
}

// Hover moves the pointer over the element resolved by selector.
func (f *Frame) Hover(ctx context.Context, selector string, timeout time.Duration) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, h ElementHandle) error {
		return h.Hover(progress.Context())
	})
}

// Check checks the checkbox/radio resolved by selector.
func (f *Frame) Check(ctx context.Context, selector string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.Check(ctx)
	})
}

// Uncheck unchecks the checkbox resolved by selector.
func (f *Frame) Uncheck(ctx context.Context, selector string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.Uncheck(ctx)
	})
}

// SelectOption selects values on the <select> resolved by selector.
func (f *Frame) SelectOption(ctx context.Context, selector string, values []string, timeout time.Duration) ([]string, error) {
	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			var selected []string
			err := f.retryWithSelectorCtx(progress, selector, func(h ElementHandle) error {
				var err error
				selected, err = h.SelectOption(progress.Context(), values)
				return err
			})
			return selected, err
		})
	if err != nil {
		return nil, err
	}
	selected, _ := v.([]string)
	return selected, nil
}

// SetInputFiles sets the files on the <input type=file> resolved by selector.
func (f *Frame) SetInputFiles(ctx context.Context, selector string, files []string, timeout time.Duration) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, h ElementHandle) error {
		return h.SetInputFiles(progress.Context(), files)
	})
}

// Type types text into the element resolved by selector, key by key.
func (f *Frame) Type(ctx context.Context, selector, text string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.Type(ctx, text)
	})
}

// Press presses key on the element resolved by selector.
func (f *Frame) Press(ctx context.Context, selector, key string, timeout time.Duration) error {
	return f.actionWithEpilogue(ctx, selector, timeout, func(ctx context.Context, h ElementHandle) error {
		return h.Press(ctx, key)
	})
}

// TextContent returns the textContent of the element resolved by selector.
func (f *Frame) TextContent(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	return f.stringProperty(ctx, selector, timeout, func(h ElementHandle) (string, error) { return h.TextContent(ctx) })
}

// InnerText returns the innerText of the element resolved by selector.
func (f *Frame) InnerText(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	return f.stringProperty(ctx, selector, timeout, func(h ElementHandle) (string, error) { return h.InnerText(ctx) })
}

// InnerHTML returns the innerHTML of the element resolved by selector.
func (f *Frame) InnerHTML(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	return f.stringProperty(ctx, selector, timeout, func(h ElementHandle) (string, error) { return h.InnerHTML(ctx) })
}

// GetAttribute returns attribute name of the element resolved by selector.
func (f *Frame) GetAttribute(ctx context.Context, selector, name string, timeout time.Duration) (string, error) {
	return f.stringProperty(ctx, selector, timeout, func(h ElementHandle) (string, error) { return h.GetAttribute(ctx, name) })
}

func (f *Frame) stringProperty(ctx context.Context, selector string, timeout time.Duration, get func(h ElementHandle) (string, error)) (string, error) {
	controller := NewProgressController(f.logger)
	v, err := controller.RunAbortableTask(ctx, f.operationTimeout(timeout), f.abortables(),
		func(progress *Progress) (interface{}, error) {
			var out string
			err := f.retryWithSelectorCtx(progress, selector, func(h ElementHandle) error {
				var err error
				out, err = get(h)
				return err
			})
			return out, err
		})
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// retryWithSelectorCtx is retryWithSelector's inner loop, reusable by
// callers (SelectOption, the string-property getters) that already hold a
// Progress from their own RunAbortableTask and so must not open a second
// one.
func (f *Frame) retryWithSelectorCtx(progress *Progress, selector string, action func(h ElementHandle) error) error {
	for progress.IsRunning() {
		waitTask, err := f.manager.selectorEngine.WaitForSelectorTask(f, selector, "attached")
		if err != nil {
			return err
		}
		task := newRerunnableTask(f, waitTask.World, waitTask.Task)
		res, err := task.Result(progress.Context())
		if err != nil {
			return err
		}
		handle, ok := res.(ElementHandle)
		if !ok || handle == nil {
			return NewNotConnectedError()
		}

		err = action(handle)
		_ = handle.Dispose(context.Background())
		if err == nil {
			return nil
		}
		if _, notConnected := err.(*NotConnectedError); notConnected {
			progress.Log("retry", "element was detached from the DOM, retrying")
			continue
		}
		return err
	}
	return NewTimeoutError(f.operationTimeout(0).String())
}

// actionWithEpilogue is like retryWithSelector but additionally awaits the
// PageDelegate's InputActionEpilogue once the action's source is 'input',
// per the PageDelegate contract (§4.6).
func (f *Frame) actionWithEpilogue(ctx context.Context, selector string, timeout time.Duration, action elementAction) error {
	return f.retryWithSelector(ctx, selector, timeout, func(progress *Progress, h ElementHandle) error {
		if err := action(progress.Context(), h); err != nil {
			return err
		}
		return f.delegate.InputActionEpilogue(progress.Context())
	})
}
