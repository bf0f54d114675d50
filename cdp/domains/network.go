package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpn "github.com/chromedp/cdproto/network"
)

// Network exposes the subset of the CDP Network domain the coordination
// core needs to drive its network-idle timer and per-request bookkeeping.
type Network interface {
	Enable(ctx context.Context) error
	SetCacheDisabled(ctx context.Context, disabled bool) error
	SetExtraHTTPHeaders(ctx context.Context, headers map[string]string) error
}

var _ Network = &network{}

type network struct {
	exec cdp.Executor
}

// NewNetwork returns a new CDP Network domain wrapper.
func NewNetwork(exec cdp.Executor) Network {
	return &network{exec}
}

func (n *network) Enable(ctx context.Context) error {
	action := cdpn.Enable()
	if err := action.Do(cdp.WithExecutor(ctx, n.exec)); err != nil {
		return fmt.Errorf("enabling network CDP domain: %w", err)
	}
	return nil
}

func (n *network) SetCacheDisabled(ctx context.Context, disabled bool) error {
	action := cdpn.SetCacheDisabled(disabled)
	if err := action.Do(cdp.WithExecutor(ctx, n.exec)); err != nil {
		return fmt.Errorf("setting cache disabled to %v: %w", disabled, err)
	}
	return nil
}

func (n *network) SetExtraHTTPHeaders(ctx context.Context, headers map[string]string) error {
	h := make(cdpn.Headers, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	action := cdpn.SetExtraHTTPHeaders(h)
	if err := action.Do(cdp.WithExecutor(ctx, n.exec)); err != nil {
		return fmt.Errorf("setting extra HTTP headers: %w", err)
	}
	return nil
}
