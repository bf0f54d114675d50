package common

import (
	"context"
	"sync"

	"github.com/browsercore/xk6-frame/api"
	"github.com/browsercore/xk6-frame/k6ext"
	"github.com/browsercore/xk6-frame/log"

	"github.com/dop251/goja"
)

var _ api.BrowserContext = &BrowserContext{}

// BrowserContext is an incognito-like isolated cookie/storage/permission
// jar owning zero or more Pages, matching the CDP "browser context"
// boundary one-to-one.
type BrowserContext struct {
	ctx     context.Context
	browser *Browser
	id      string
	options *BrowserContextOptions
	logger  *log.Logger

	permissionsMu sync.Mutex
	permissions   map[string][]string // origin -> granted permissions

	pagesMu sync.Mutex
	pages   map[string]*Page
}

// NewBrowserContext returns a BrowserContext for the given CDP browser
// context id ("" denotes the browser's default context).
func NewBrowserContext(ctx context.Context, browser *Browser, id string, options *BrowserContextOptions, logger *log.Logger) *BrowserContext {
	return &BrowserContext{
		ctx:         ctx,
		browser:     browser,
		id:          id,
		options:     options,
		logger:      logger,
		permissions: make(map[string][]string),
		pages:       make(map[string]*Page),
	}
}

// NewPage opens a new tab in this context.
func (b *BrowserContext) NewPage() api.Page {
	page, err := b.browser.newPageInContext(b.id)
	if err != nil {
		k6ext.Panic(b.ctx, "opening a new page: %w", err)
	}
	b.pagesMu.Lock()
	b.pages[string(page.targetID)] = page
	b.pagesMu.Unlock()
	return wrapPage(page)
}

// Pages returns every page currently open in this context.
func (b *BrowserContext) Pages() []api.Page {
	b.pagesMu.Lock()
	defer b.pagesMu.Unlock()
	out := make([]api.Page, 0, len(b.pages))
	for _, p := range b.pages {
		out = append(out, wrapPage(p))
	}
	return out
}

// Close disposes this context and every page it owns.
func (b *BrowserContext) Close() {
	if b.id == "" {
		return // the default context cannot be disposed
	}
	if err := b.browser.disposeContext(b.id); err != nil {
		k6ext.Panic(b.ctx, "closing browser context: %w", err)
	}
}

// GrantPermissions grants permissions to requests from the given origin
// (or every origin, if opts carries none).
func (b *BrowserContext) GrantPermissions(permissions []string, opts goja.Value) {
	popts := NewGrantPermissionsOptions()
	popts.Parse(b.ctx, opts)

	b.permissionsMu.Lock()
	defer b.permissionsMu.Unlock()
	b.permissions[popts.Origin] = permissions
}

// ClearPermissions revokes every previously granted permission.
func (b *BrowserContext) ClearPermissions() {
	b.permissionsMu.Lock()
	defer b.permissionsMu.Unlock()
	b.permissions = make(map[string][]string)
}
