package common

import (
	"context"
	"time"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// LaunchOptions stores browser launch options, parsed from a goja.Value
// the same way BrowserContextOptions is.
type LaunchOptions struct {
	Args            []string      `js:"args"`
	Devtools        bool          `js:"devtools"`
	Env             []string      `js:"env"`
	ExecutablePath  string        `js:"executablePath"`
	Headless        bool          `js:"headless"`
	IgnoreHTTPSErrs bool          `js:"ignoreHTTPSErrors"`
	SlowMo          time.Duration `js:"slowMo"`
	Timeout         time.Duration `js:"timeout"`
}

// NewLaunchOptions returns the default set of browser launch options.
func NewLaunchOptions() *LaunchOptions {
	return &LaunchOptions{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// Parse reads opts's js-tagged fields into l, leaving defaults in place
// for anything opts doesn't set.
func (l *LaunchOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "headless":
			l.Headless = v.ToBoolean()
		case "devtools":
			l.Devtools = v.ToBoolean()
		case "ignoreHTTPSErrors":
			l.IgnoreHTTPSErrs = v.ToBoolean()
		case "executablePath":
			l.ExecutablePath = v.String()
		case "slowMo":
			l.SlowMo = time.Duration(v.ToInteger()) * time.Millisecond
		case "timeout":
			l.Timeout = time.Duration(v.ToInteger()) * time.Millisecond
		case "args":
			l.Args = toStringSlice(rt, v)
		case "env":
			l.Env = toStringSlice(rt, v)
		}
	}
	return nil
}

func toStringSlice(rt *goja.Runtime, v goja.Value) []string {
	obj := v.ToObject(rt)
	if obj == nil {
		return nil
	}
	keys := obj.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, obj.Get(k).String())
	}
	return out
}
