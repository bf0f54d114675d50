package api

import "github.com/dop251/goja"

// BrowserContext is the public interface of an incognito-like browser
// context: an isolated cookie/storage/permission jar that owns zero or
// more Pages.
type BrowserContext interface {
	Close()
	NewPage() Page
	Pages() []Page
	GrantPermissions(permissions []string, opts goja.Value)
	ClearPermissions()
}
