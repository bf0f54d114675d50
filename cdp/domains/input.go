package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpi "github.com/chromedp/cdproto/input"
)

// Input exposes the CDP Input domain actions element actions dispatch
// (retry-with-selector-if-not-connected clicks/typing).
type Input interface {
	DispatchKeyEvent(
		ctx context.Context, eventType string, modifiers int64, key, code string, windowsVirtualKeyCode int64,
	) error
	DispatchMouseEvent(
		ctx context.Context, eventType string, x, y float64, button string, clickCount int64,
	) error
}

var _ Input = &inputDomain{}

type inputDomain struct {
	exec cdp.Executor
}

// NewInput returns a new CDP Input domain wrapper.
func NewInput(exec cdp.Executor) Input {
	return &inputDomain{exec}
}

func (i *inputDomain) DispatchKeyEvent(
	ctx context.Context, eventType string, modifiers int64, key, code string, windowsVirtualKeyCode int64,
) error {
	action := cdpi.DispatchKeyEvent(cdpi.KeyType(eventType)).
		WithModifiers(cdpi.Modifier(modifiers)).
		WithKey(key).
		WithCode(code).
		WithWindowsVirtualKeyCode(windowsVirtualKeyCode).
		WithNativeVirtualKeyCode(windowsVirtualKeyCode)
	if err := action.Do(cdp.WithExecutor(ctx, i.exec)); err != nil {
		return fmt.Errorf("dispatching key event %q for key %q: %w", eventType, key, err)
	}
	return nil
}

func (i *inputDomain) DispatchMouseEvent(
	ctx context.Context, eventType string, x, y float64, button string, clickCount int64,
) error {
	action := cdpi.DispatchMouseEvent(cdpi.MouseType(eventType), x, y).
		WithButton(cdpi.MouseButton(button)).
		WithClickCount(clickCount)
	if err := action.Do(cdp.WithExecutor(ctx, i.exec)); err != nil {
		return fmt.Errorf("dispatching mouse event %q at (%v, %v): %w", eventType, x, y, err)
	}
	return nil
}
