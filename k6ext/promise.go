package k6ext

import (
	"context"

	"github.com/dop251/goja"
)

// Promise runs fn on its own goroutine and bridges its result back onto
// the VU's single-threaded JS event loop via RegisterCallback, the way
// every async xk6-browser API method returns a JS Promise to the script.
func Promise(ctx context.Context, fn func() (interface{}, error)) *goja.Promise {
	vu := GetVU(ctx)
	rt := vu.Runtime()
	p, resolve, reject := rt.NewPromise()
	callback := vu.RegisterCallback()

	go func() {
		v, err := fn()
		callback(func() error {
			if err != nil {
				reject(err)
				return nil //nolint:nilerr
			}
			resolve(v)
			return nil
		})
	}()

	return p
}
