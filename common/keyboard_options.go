package common

import (
	"context"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// KeyboardOptions holds the options for Keyboard.Press and Keyboard.Type.
type KeyboardOptions struct {
	Delay int64 `js:"delay"`
}

// NewKeyboardOptions returns the default set of keyboard options.
func NewKeyboardOptions() *KeyboardOptions {
	return &KeyboardOptions{}
}

// Parse reads opts's js-tagged fields into o.
func (o *KeyboardOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		switch k {
		case "delay":
			o.Delay = obj.Get(k).ToInteger()
		}
	}
	return nil
}
