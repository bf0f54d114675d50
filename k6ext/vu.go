package k6ext

import (
	"context"

	"github.com/dop251/goja"
	k6modules "go.k6.io/k6/js/modules"
)

type ctxKey int

const ctxKeyVU ctxKey = iota

// WithVU attaches vu to ctx so deeper layers (common, browser) can reach
// the JS runtime and callback registry without threading it through
// every function signature.
func WithVU(ctx context.Context, vu k6modules.VU) context.Context {
	return context.WithValue(ctx, ctxKeyVU, vu)
}

// GetVU returns the k6 VU attached to ctx, or nil if none.
func GetVU(ctx context.Context) k6modules.VU {
	v, _ := ctx.Value(ctxKeyVU).(k6modules.VU)
	return v
}

// Runtime returns the goja runtime of the VU attached to ctx, or nil.
func Runtime(ctx context.Context) *goja.Runtime {
	vu := GetVU(ctx)
	if vu == nil {
		return nil
	}
	return vu.Runtime()
}

// ValueExists reports whether v is a goja.Value actually holding
// something — neither the Go nil interface, nor JS undefined/null.
func ValueExists(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}
