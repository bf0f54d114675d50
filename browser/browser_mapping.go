package browser

import (
	"context"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/chromium"
)

// mapBrowserToGoja builds the goja object exposed to scripts as the
// module's default export's Chromium field, binding each BrowserType
// method to the VU that owns this module instance.
func mapBrowserToGoja(ctx context.Context, vu moduleVU) *goja.Object {
	rt := vu.Runtime()
	bt := chromium.NewBrowserType()
	obj := rt.NewObject()

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(obj.Set("launch", func(opts goja.Value) goja.Value {
		b, _ := bt.Launch(vu, opts)
		return rt.ToValue(b)
	}))
	must(obj.Set("connect", func(wsEndpoint string, opts goja.Value) goja.Value {
		return rt.ToValue(bt.Connect(vu, wsEndpoint, opts))
	}))
	must(obj.Set("launchPersistentContext", func(userDataDir string, opts goja.Value) goja.Value {
		return rt.ToValue(bt.LaunchPersistentContext(vu, userDataDir, opts))
	}))
	must(obj.Set("executablePath", bt.ExecutablePath))
	must(obj.Set("name", bt.Name))

	return obj
}
