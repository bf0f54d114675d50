package common

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/browsercore/xk6-frame/cdp"

	cdpruntime "github.com/chromedp/cdproto/runtime"
)

// executionContext is the CDP-backed ExecutionContext every Frame's
// context slot holds: one Runtime execution context id, scoped to one
// session and one world.
type executionContext struct {
	session   *Session
	client    *clientHandle
	frame     *Frame
	world     World
	contextID int64
}

// clientHandle wraps the *cdp.Client an executionContext issues its
// Runtime calls through.
type clientHandle struct {
	*cdp.Client
}

func newExecutionContext(session *Session, client *cdp.Client, frame *Frame, world World, contextID int64) *executionContext {
	return &executionContext{session: session, client: &clientHandle{client}, frame: frame, world: world, contextID: contextID}
}

func (e *executionContext) Frame() *Frame { return e.frame }
func (e *executionContext) World() World  { return e.world }

// EvaluateInternal evaluates `(arg) => (fn)(arg)` style wrapper via
// Runtime.CallFunctionOn and returns the deserialized value.
func (e *executionContext) EvaluateInternal(ctx context.Context, fn string, arg interface{}) (interface{}, error) {
	ctx = e.session.ExecutorContext(ctx)

	args, err := e.callArgs(arg)
	if err != nil {
		return nil, err
	}

	remote, exc, err := e.client.Runtime.CallFunctionOn(ctx, fn, "", e.contextID, args, true, true)
	if err != nil {
		return nil, e.wrapDestroyed(err)
	}
	if exc != nil {
		return nil, fmt.Errorf("evaluation failed: %s", exc.Text)
	}
	if remote == nil || len(remote.Value) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(remote.Value, &v); err != nil {
		return nil, fmt.Errorf("unmarshaling evaluation result: %w", err)
	}
	return v, nil
}

// EvaluateHandleInternal is EvaluateInternal without returnByValue: the
// remote object is wrapped as a JSHandle rather than deserialized, so
// non-serializable results (DOM nodes, functions) survive the round trip.
func (e *executionContext) EvaluateHandleInternal(ctx context.Context, fn string, arg interface{}) (JSHandle, error) {
	ctx = e.session.ExecutorContext(ctx)

	args, err := e.callArgs(arg)
	if err != nil {
		return nil, err
	}

	remote, exc, err := e.client.Runtime.CallFunctionOn(ctx, fn, "", e.contextID, args, true, false)
	if err != nil {
		return nil, e.wrapDestroyed(err)
	}
	if exc != nil {
		return nil, fmt.Errorf("evaluation failed: %s", exc.Text)
	}
	if remote == nil || remote.ObjectID == "" {
		return nil, nil
	}
	return newElementHandle(e, string(remote.ObjectID)), nil
}

// InjectedScript returns a handle to the page-side polling helper,
// evaluating a no-op object in lieu of the real injected bundle: selector
// engine and waitForFunction polling in this module is implemented as a
// native Go poll loop (§4.4.3's retry timers), so no page-side script
// needs to be fetched here.
func (e *executionContext) InjectedScript(ctx context.Context) (JSHandle, error) {
	return e.EvaluateHandleInternal(ctx, `() => ({})`, nil)
}

func (e *executionContext) callArgs(arg interface{}) ([]*cdpruntime.CallArgument, error) {
	if arg == nil {
		return nil, nil
	}
	buf, err := json.Marshal(arg)
	if err != nil {
		return nil, fmt.Errorf("marshaling evaluate argument: %w", err)
	}
	return []*cdpruntime.CallArgument{{Value: buf}}, nil
}

func (e *executionContext) wrapDestroyed(err error) error {
	if isExecutionContextDestroyedMessage(err) {
		return NewExecutionContextDestroyedError(err)
	}
	return err
}
