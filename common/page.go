package common

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/browsercore/xk6-frame/cdp"
	"github.com/browsercore/xk6-frame/log"

	cdpext "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	cdpt "github.com/chromedp/cdproto/target"
)

// defaultFrameTimeout is the hard-coded fallback at the bottom of the
// per-operation timeout chain (§10.3): explicit option → page default →
// this constant.
const defaultFrameTimeout = 30 * time.Second

// Page is one browser tab: a CDP session, the frame tree rooted at its
// main frame (owned by its FrameManager), and the PageDelegate the Frame
// Coordination Core drives to turn caller intent into CDP calls.
type Page struct {
	BaseEventEmitter

	ctx    context.Context
	client *cdp.Client
	logger *log.Logger

	session  *Session
	targetID cdpt.ID
	opener   *Page
	bctx     *BrowserContext

	frameManager *FrameManager
	keyboard     *Keyboard

	mu                 sync.Mutex
	defaultTimeout     time.Duration
	usedWaitForTimeout bool
	extraHTTPHeaders   map[string]string
	viewport           Viewport
	originalViewport   Viewport
	closed             bool
	closedCh           chan struct{}
	closeErr           error
}

var _ PageDelegate = &Page{}
var _ Abortable = &Page{}

// NewPage creates a Page for the given session/target, wires its
// FrameManager, and announces the main frame's attach.
func NewPage(
	ctx context.Context, bctx *BrowserContext, sessionID string, targetID cdpt.ID,
	opener *Page, background bool, logger *log.Logger,
) (*Page, error) {
	p := &Page{
		BaseEventEmitter: NewBaseEventEmitter(ctx),
		ctx:              ctx,
		client:           bctx.browser.cdpClient,
		logger:           logger,
		session:          NewSession(ctx, sessionID, string(targetID), bctx.browser.cdpClient, logger),
		targetID:         targetID,
		opener:           opener,
		bctx:             bctx,
		defaultTimeout:   defaultFrameTimeout,
		extraHTTPHeaders: bctx.options.ExtraHTTPHeaders,
		closedCh:         make(chan struct{}),
	}
	p.frameManager = NewFrameManager(p, p, NewCSSSelectorEngine(), logger)
	p.keyboard = NewKeyboard(ctx, p.session)

	sessionCtx := p.session.ExecutorContext(ctx)
	if err := p.client.Page.Enable(sessionCtx); err != nil {
		return nil, fmt.Errorf("enabling page CDP domain: %w", err)
	}
	if err := p.client.Runtime.Enable(sessionCtx); err != nil {
		return nil, fmt.Errorf("enabling runtime CDP domain: %w", err)
	}
	if err := p.client.Network.Enable(sessionCtx); err != nil {
		return nil, fmt.Errorf("enabling network CDP domain: %w", err)
	}

	if bctx.options.Viewport != nil && !bctx.options.Viewport.IsEmpty() {
		if err := p.setViewportSize(bctx.options.Viewport); err != nil {
			return nil, fmt.Errorf("applying initial viewport: %w", err)
		}
	}

	p.frameManager.FrameAttached(string(targetID), "")
	p.initConsoleEvents()

	return p, nil
}

// viewportSize returns the page's current emulated viewport size.
func (p *Page) viewportSize() Viewport {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport
}

// setViewportSize overrides the page's device metrics to viewport, after
// Playwright's setViewportSize.
func (p *Page) setViewportSize(viewport *Viewport) error {
	p.mu.Lock()
	if p.viewport.IsEmpty() {
		p.originalViewport = p.viewport
	}
	p.viewport = *viewport
	p.mu.Unlock()

	scaleFactor := p.bctx.options.DeviceScaleFactor
	if scaleFactor == 0 {
		scaleFactor = 1
	}
	action := emulation.SetDeviceMetricsOverride(viewport.Width, viewport.Height, scaleFactor, p.bctx.options.IsMobile)
	return action.Do(cdpext.WithExecutor(p.session.ExecutorContext(p.ctx), p.session))
}

// resetViewport clears any device metrics override, returning the page to
// the browser's natural window size.
func (p *Page) resetViewport() error {
	p.mu.Lock()
	p.viewport = p.originalViewport
	p.mu.Unlock()

	action := emulation.SetDeviceMetricsOverride(0, 0, 0, false)
	return action.Do(cdpext.WithExecutor(p.session.ExecutorContext(p.ctx), p.session))
}

func (p *Page) defaultTimeoutValue() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.defaultTimeout
}

func (p *Page) extraHeaderReferer() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.extraHTTPHeaders["referer"]
	return v, ok
}

func (p *Page) markUsedWaitForTimeout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usedWaitForTimeout = true
}

// MainFrame returns the page's root Frame.
func (p *Page) MainFrame() *Frame {
	return p.frameManager.MainFrame()
}

// Done implements Abortable: closed once the page has gone away.
func (p *Page) Done() <-chan struct{} { return p.closedCh }

// Err implements Abortable.
func (p *Page) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeErr
}

// didClose marks the page closed and aborts every in-flight operation
// racing it, called by Browser.onDetachedFromTarget.
func (p *Page) didClose() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.closeErr = NewPageDisconnectedError()
	p.mu.Unlock()
	close(p.closedCh)
}

// NavigateFrame implements PageDelegate: it issues the CDP Page.navigate
// call for frame and returns the minted document id, if any.
func (p *Page) NavigateFrame(ctx context.Context, frame *Frame, url, referer string) (string, error) {
	ctx = p.session.ExecutorContext(ctx)
	return p.client.Page.Navigate(ctx, url, referer, frame.ID())
}

// GetFrameElement implements PageDelegate by resolving the <iframe>
// element embedding frame in its parent via a main-world query for the
// first iframe whose name attribute equals frame's name; exact node
// identity isn't recoverable from CDP's frame tree alone, so this is a
// best-effort lookup the caller should treat as advisory.
func (p *Page) GetFrameElement(ctx context.Context, frame *Frame) (ElementHandle, error) {
	parent := frame.ParentFrame()
	if parent == nil {
		return nil, fmt.Errorf("the main frame has no embedding element")
	}
	return p.frameManager.selectorEngine.Query(ctx, parent, fmt.Sprintf("iframe[name=%q]", frame.name))
}

// AdoptElementHandle implements PageDelegate: since this transport
// resolves every handle via Runtime.CallFunctionOn against a live
// execution context rather than CDP's cross-context node adoption call,
// "adopting" a handle into a different world means re-resolving it there
// by re-querying with the same selector is the caller's responsibility;
// here the already-resolved handle is handed back unchanged, whatever
// targetContext is.
func (p *Page) AdoptElementHandle(ctx context.Context, handle ElementHandle, targetContext ExecutionContext) (ElementHandle, error) {
	return handle, nil
}

// InputActionEpilogue implements PageDelegate: awaited after every
// 'input'-sourced action to let the browser settle before returning.
func (p *Page) InputActionEpilogue(ctx context.Context) error {
	return nil
}

// CSPErrorsAsynchronousForInlineScripts implements PageDelegate: Chromium
// reports an inline-script CSP violation as a console message arriving
// after evaluation resolves, not as an evaluation exception.
func (p *Page) CSPErrorsAsynchronousForInlineScripts() bool {
	return true
}
