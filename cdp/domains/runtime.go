package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpr "github.com/chromedp/cdproto/runtime"
)

// Runtime exposes the CDP Runtime domain actions an ExecutionContext needs
// to evaluate expressions and call functions inside a JS world.
type Runtime interface {
	Enable(ctx context.Context) error
	Evaluate(
		ctx context.Context, expression string, contextID int64, awaitPromise bool,
	) (*cdpr.RemoteObject, *cdpr.ExceptionDetails, error)
	CallFunctionOn(
		ctx context.Context, functionDeclaration string, objectID string, contextID int64,
		args []*cdpr.CallArgument, awaitPromise, returnByValue bool,
	) (*cdpr.RemoteObject, *cdpr.ExceptionDetails, error)
	ReleaseObject(ctx context.Context, objectID string) error
	AddBinding(ctx context.Context, name string) error
}

var _ Runtime = &rt{}

type rt struct {
	exec cdp.Executor
}

// NewRuntime returns a new CDP Runtime domain wrapper.
func NewRuntime(exec cdp.Executor) Runtime {
	return &rt{exec}
}

func (r *rt) Enable(ctx context.Context) error {
	action := cdpr.Enable()
	if err := action.Do(cdp.WithExecutor(ctx, r.exec)); err != nil {
		return fmt.Errorf("enabling runtime CDP domain: %w", err)
	}
	return nil
}

func (r *rt) Evaluate(
	ctx context.Context, expression string, contextID int64, awaitPromise bool,
) (*cdpr.RemoteObject, *cdpr.ExceptionDetails, error) {
	action := cdpr.Evaluate(expression).
		WithContextID(cdpr.ExecutionContextID(contextID)).
		WithAwaitPromise(awaitPromise).
		WithReturnByValue(false)
	obj, exc, err := action.Do(cdp.WithExecutor(ctx, r.exec))
	if err != nil {
		return nil, nil, fmt.Errorf("evaluating expression: %w", err)
	}
	return obj, exc, nil
}

func (r *rt) CallFunctionOn(
	ctx context.Context, functionDeclaration string, objectID string, contextID int64,
	args []*cdpr.CallArgument, awaitPromise, returnByValue bool,
) (*cdpr.RemoteObject, *cdpr.ExceptionDetails, error) {
	action := cdpr.CallFunctionOn(functionDeclaration).
		WithArguments(args).
		WithAwaitPromise(awaitPromise).
		WithReturnByValue(returnByValue)
	if objectID != "" {
		action = action.WithObjectID(cdpr.RemoteObjectID(objectID))
	} else {
		action = action.WithExecutionContextID(cdpr.ExecutionContextID(contextID))
	}
	obj, exc, err := action.Do(cdp.WithExecutor(ctx, r.exec))
	if err != nil {
		return nil, nil, fmt.Errorf("calling function: %w", err)
	}
	return obj, exc, nil
}

func (r *rt) ReleaseObject(ctx context.Context, objectID string) error {
	action := cdpr.ReleaseObject(cdpr.RemoteObjectID(objectID))
	if err := action.Do(cdp.WithExecutor(ctx, r.exec)); err != nil {
		return fmt.Errorf("releasing remote object %q: %w", objectID, err)
	}
	return nil
}

func (r *rt) AddBinding(ctx context.Context, name string) error {
	action := cdpr.AddBinding(name)
	if err := action.Do(cdp.WithExecutor(ctx, r.exec)); err != nil {
		return fmt.Errorf("adding runtime binding %q: %w", name, err)
	}
	return nil
}
