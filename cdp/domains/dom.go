package domains

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	cdpd "github.com/chromedp/cdproto/dom"
	cdpr "github.com/chromedp/cdproto/runtime"
)

// DOM exposes the CDP DOM domain actions a SelectorEngine and
// ElementHandle need to resolve nodes without reimplementing a full
// query-selector polyfill.
type DOM interface {
	GetDocument(ctx context.Context) (rootNodeID int64, err error)
	QuerySelector(ctx context.Context, nodeID int64, selector string) (int64, error)
	QuerySelectorAll(ctx context.Context, nodeID int64, selector string) ([]int64, error)
	ResolveNode(ctx context.Context, nodeID int64, executionContextID int64) (objectID string, err error)
}

var _ DOM = &domDomain{}

type domDomain struct {
	exec cdp.Executor
}

// NewDOM returns a new CDP DOM domain wrapper.
func NewDOM(exec cdp.Executor) DOM {
	return &domDomain{exec}
}

func (d *domDomain) GetDocument(ctx context.Context) (int64, error) {
	action := cdpd.GetDocument()
	doc, err := action.Do(cdp.WithExecutor(ctx, d.exec))
	if err != nil {
		return 0, fmt.Errorf("getting document root node: %w", err)
	}
	return int64(doc.NodeID), nil
}

func (d *domDomain) QuerySelector(ctx context.Context, nodeID int64, selector string) (int64, error) {
	action := cdpd.QuerySelector(cdp.NodeID(nodeID), selector)
	id, err := action.Do(cdp.WithExecutor(ctx, d.exec))
	if err != nil {
		return 0, fmt.Errorf("querying selector %q: %w", selector, err)
	}
	return int64(id), nil
}

func (d *domDomain) QuerySelectorAll(ctx context.Context, nodeID int64, selector string) ([]int64, error) {
	action := cdpd.QuerySelectorAll(cdp.NodeID(nodeID), selector)
	ids, err := action.Do(cdp.WithExecutor(ctx, d.exec))
	if err != nil {
		return nil, fmt.Errorf("querying selector all %q: %w", selector, err)
	}
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out, nil
}

func (d *domDomain) ResolveNode(ctx context.Context, nodeID int64, executionContextID int64) (string, error) {
	action := cdpd.ResolveNode().
		WithNodeID(cdp.NodeID(nodeID)).
		WithExecutionContextID(cdpr.ExecutionContextID(executionContextID))
	obj, err := action.Do(cdp.WithExecutor(ctx, d.exec))
	if err != nil {
		return "", fmt.Errorf("resolving node %d: %w", nodeID, err)
	}
	return string(obj.ObjectID), nil
}
