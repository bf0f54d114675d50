package api

import (
	"github.com/dop251/goja"
)

// Browser is the public interface of a CDP browser, exposed to user
// scripts as the value returned by browserType.launch()/connect().
type Browser interface {
	Close()
	Contexts() []BrowserContext
	IsConnected() bool
	NewContext(opts goja.Value) BrowserContext
	NewPage(opts goja.Value) Page
	On(event string) *goja.Promise
	UserAgent() string
	Version() string
}
