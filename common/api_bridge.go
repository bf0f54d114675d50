package common

import (
	"context"
	"time"

	"github.com/browsercore/xk6-frame/api"
	"github.com/browsercore/xk6-frame/k6ext"

	"github.com/dop251/goja"
)

// This file is the public-API boundary (§6): one wrapper type per core
// coordination type (Page, Frame, ElementHandle), each translating a
// caller-supplied goja.Value into the typed internal options the wrapped
// type's own ctx-taking, error-returning methods expect, and turning a
// returned Go error into a thrown JS exception via k6ext.Panic, the way
// common/browser.go's own methods do. The wrappers exist because the
// script-facing method names (Goto, Click, WaitForSelector, ...) are the
// same names the coordination core already uses for its Go-native,
// context-aware methods with different signatures; Go has no overloading,
// so the public and internal surfaces need distinct receiver types.
//
// Every options struct used below parses itself from a goja.Value through
// its own Parse(ctx, goja.Value) error method (common/frame_options.go),
// the way BrowserContextOptions.Parse already does for browser contexts -
// that is also where the §6/§7 validation (lifecycle values, waitForSelector
// state, waitForFunction polling) lives, so a bad caller value is rejected
// here at the boundary rather than surfacing as a misleading timeout deep
// inside the coordination core.

var _ api.Page = &apiPage{}
var _ api.Frame = &apiFrame{}
var _ api.ElementHandle = &apiElementHandle{}
var _ api.JSHandle = &apiJSHandle{}
var _ api.Response = &NetworkResponse{}

// apiPage adapts *Page to api.Page.
type apiPage struct {
	p *Page
}

func wrapPage(p *Page) *apiPage {
	if p == nil {
		return nil
	}
	return &apiPage{p: p}
}

func (a *apiPage) Close() {
	ctx := a.p.ctx
	if err := a.p.client.Target.CloseTarget(ctx, string(a.p.targetID)); err != nil {
		k6ext.Panic(ctx, "closing page: %w", err)
	}
	a.p.didClose()
}

func (a *apiPage) MainFrame() api.Frame {
	return wrapFrame(a.p.MainFrame())
}

func (a *apiPage) URL() string {
	return a.p.MainFrame().URL()
}

func (a *apiPage) Goto(url string, opts goja.Value) api.Response {
	return a.MainFrame().Goto(url, opts)
}

func (a *apiPage) Content() string {
	return a.MainFrame().(*apiFrame).content()
}

func (a *apiPage) SetContent(html string, opts goja.Value) {
	a.MainFrame().(*apiFrame).setContent(html, opts)
}

func (a *apiPage) WaitForTimeout(ms int64) {
	ctx := a.p.ctx
	a.p.MainFrame().WaitForTimeout(ctx, ms)
}

func (a *apiPage) Keyboard() api.Keyboard {
	return a.p.keyboard
}

func (a *apiPage) Screenshot(opts goja.Value) goja.ArrayBuffer {
	ctx := a.p.ctx
	rt := k6ext.Runtime(ctx)
	o := NewPageScreenshotOptions()
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing screenshot options: %w", err)
	}
	buf, err := NewScreenshotter(ctx).screenshotPage(a.p, o)
	if err != nil {
		k6ext.Panic(ctx, "taking screenshot: %w", err)
	}
	return rt.NewArrayBuffer(buf)
}

// apiFrame adapts *Frame to api.Frame.
type apiFrame struct {
	f *Frame
}

func wrapFrame(f *Frame) *apiFrame {
	if f == nil {
		return nil
	}
	return &apiFrame{f: f}
}

func (a *apiFrame) ctx() context.Context { return a.f.page.ctx }

func (a *apiFrame) parseTimeout(opts goja.Value) time.Duration {
	o := TimeoutOptions{}
	if err := o.Parse(a.ctx(), opts); err != nil {
		k6ext.Panic(a.ctx(), "parsing options: %w", err)
	}
	return o.Timeout
}

func (a *apiFrame) URL() string { return a.f.URL() }

func (a *apiFrame) ChildFrames() []api.Frame {
	children := a.f.ChildFrames()
	out := make([]api.Frame, 0, len(children))
	for _, c := range children {
		out = append(out, wrapFrame(c))
	}
	return out
}

func (a *apiFrame) Goto(url string, opts goja.Value) api.Response {
	ctx := a.ctx()
	o := GotoOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing goto options: %w", err)
	}
	resp, err := a.f.Goto(ctx, url, o)
	if err != nil {
		k6ext.Panic(ctx, "navigating: %w", err)
	}
	if resp == nil {
		return nil
	}
	return resp
}

func (a *apiFrame) WaitForNavigation(opts goja.Value) api.Response {
	ctx := a.ctx()
	o := WaitForNavigationOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing waitForNavigation options: %w", err)
	}
	resp, err := a.f.WaitForNavigation(ctx, o)
	if err != nil {
		k6ext.Panic(ctx, "waiting for navigation: %w", err)
	}
	if resp == nil {
		return nil
	}
	return resp
}

func (a *apiFrame) WaitForLoadState(state string, opts goja.Value) {
	ctx := a.ctx()
	timeout := a.parseTimeout(opts)
	if err := a.f.WaitForLoadState(ctx, state, timeout); err != nil {
		k6ext.Panic(ctx, "waiting for load state %q: %w", state, err)
	}
}

func (a *apiFrame) WaitForSelector(selector string, opts goja.Value) api.ElementHandle {
	ctx := a.ctx()
	o := WaitForSelectorOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing waitForSelector options: %w", err)
	}
	h, err := a.f.WaitForSelector(ctx, selector, o)
	if err != nil {
		k6ext.Panic(ctx, "waiting for selector %q: %w", selector, err)
	}
	if h == nil {
		return nil
	}
	return wrapElementHandle(ctx, h)
}

func (a *apiFrame) WaitForFunction(pageFunc goja.Value, opts goja.Value, args ...goja.Value) api.JSHandle {
	ctx := a.ctx()
	o := WaitForFunctionOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing waitForFunction options: %w", err)
	}
	var arg interface{}
	if len(args) > 0 {
		arg = args[0].Export()
	}
	h, err := a.f.WaitForFunction(ctx, pageFunc.String(), arg, o)
	if err != nil {
		k6ext.Panic(ctx, "waiting for function: %w", err)
	}
	return wrapJSHandle(ctx, h)
}

func (a *apiFrame) Click(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Click(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "clicking %q: %w", selector, err)
	}
}

func (a *apiFrame) DblClick(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.DblClick(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "double-clicking %q: %w", selector, err)
	}
}

func (a *apiFrame) Fill(selector, value string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Fill(ctx, selector, value, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "filling %q: %w", selector, err)
	}
}

func (a *apiFrame) Focus(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Focus(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "focusing %q: %w", selector, err)
	}
}

func (a *apiFrame) Hover(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Hover(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "hovering %q: %w", selector, err)
	}
}

func (a *apiFrame) Check(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Check(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "checking %q: %w", selector, err)
	}
}

func (a *apiFrame) Uncheck(selector string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Uncheck(ctx, selector, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "unchecking %q: %w", selector, err)
	}
}

func (a *apiFrame) SelectOption(selector string, values goja.Value, opts goja.Value) []string {
	ctx := a.ctx()
	rt := k6ext.Runtime(ctx)
	selected, err := a.f.SelectOption(ctx, selector, toStringSlice(rt, values), a.parseTimeout(opts))
	if err != nil {
		k6ext.Panic(ctx, "selecting options on %q: %w", selector, err)
	}
	return selected
}

func (a *apiFrame) SetInputFiles(selector string, files goja.Value, opts goja.Value) {
	ctx := a.ctx()
	rt := k6ext.Runtime(ctx)
	if err := a.f.SetInputFiles(ctx, selector, toStringSlice(rt, files), a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "setting input files on %q: %w", selector, err)
	}
}

func (a *apiFrame) Type(selector, text string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Type(ctx, selector, text, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "typing into %q: %w", selector, err)
	}
}

func (a *apiFrame) Press(selector, key string, opts goja.Value) {
	ctx := a.ctx()
	if err := a.f.Press(ctx, selector, key, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "pressing %q on %q: %w", key, selector, err)
	}
}

func (a *apiFrame) TextContent(selector string, opts goja.Value) string {
	ctx := a.ctx()
	s, err := a.f.TextContent(ctx, selector, a.parseTimeout(opts))
	if err != nil {
		k6ext.Panic(ctx, "getting text content of %q: %w", selector, err)
	}
	return s
}

func (a *apiFrame) InnerText(selector string, opts goja.Value) string {
	ctx := a.ctx()
	s, err := a.f.InnerText(ctx, selector, a.parseTimeout(opts))
	if err != nil {
		k6ext.Panic(ctx, "getting inner text of %q: %w", selector, err)
	}
	return s
}

func (a *apiFrame) InnerHTML(selector string, opts goja.Value) string {
	ctx := a.ctx()
	s, err := a.f.InnerHTML(ctx, selector, a.parseTimeout(opts))
	if err != nil {
		k6ext.Panic(ctx, "getting inner HTML of %q: %w", selector, err)
	}
	return s
}

func (a *apiFrame) GetAttribute(selector, name string, opts goja.Value) string {
	ctx := a.ctx()
	s, err := a.f.GetAttribute(ctx, selector, name, a.parseTimeout(opts))
	if err != nil {
		k6ext.Panic(ctx, "getting attribute %q of %q: %w", name, selector, err)
	}
	return s
}

func (a *apiFrame) DispatchEvent(selector, eventType string, eventInit goja.Value, opts goja.Value) {
	ctx := a.ctx()
	var init interface{}
	if k6ext.ValueExists(eventInit) {
		init = eventInit.Export()
	}
	if err := a.f.DispatchEvent(ctx, selector, eventType, init, a.parseTimeout(opts)); err != nil {
		k6ext.Panic(ctx, "dispatching %q on %q: %w", eventType, selector, err)
	}
}

func (a *apiFrame) Query(selector string) api.ElementHandle {
	ctx := a.ctx()
	h, err := a.f.Query(ctx, selector)
	if err != nil {
		k6ext.Panic(ctx, "querying %q: %w", selector, err)
	}
	if h == nil {
		return nil
	}
	return wrapElementHandle(ctx, h)
}

func (a *apiFrame) QueryAll(selector string) []api.ElementHandle {
	ctx := a.ctx()
	handles, err := a.f.QueryAll(ctx, selector)
	if err != nil {
		k6ext.Panic(ctx, "querying %q: %w", selector, err)
	}
	out := make([]api.ElementHandle, 0, len(handles))
	for _, h := range handles {
		out = append(out, wrapElementHandle(ctx, h))
	}
	return out
}

func (a *apiFrame) AddScriptTag(opts goja.Value) {
	ctx := a.ctx()
	o := AddScriptTagOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing addScriptTag options: %w", err)
	}
	if err := a.f.AddScriptTag(ctx, o); err != nil {
		k6ext.Panic(ctx, "adding script tag: %w", err)
	}
}

func (a *apiFrame) AddStyleTag(opts goja.Value) {
	ctx := a.ctx()
	o := AddStyleTagOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing addStyleTag options: %w", err)
	}
	if err := a.f.AddStyleTag(ctx, o); err != nil {
		k6ext.Panic(ctx, "adding style tag: %w", err)
	}
}

func (a *apiFrame) FrameElement() api.ElementHandle {
	ctx := a.ctx()
	h, err := a.f.FrameElement(ctx)
	if err != nil {
		k6ext.Panic(ctx, "getting frame element: %w", err)
	}
	if h == nil {
		return nil
	}
	return wrapElementHandle(ctx, h)
}

func (a *apiFrame) Evaluate(pageFunc goja.Value, args ...goja.Value) interface{} {
	ctx := a.ctx()
	var arg interface{}
	if len(args) > 0 {
		arg = args[0].Export()
	}
	v, err := a.f.Evaluate(ctx, pageFunc.String(), arg)
	if err != nil {
		k6ext.Panic(ctx, "evaluating: %w", err)
	}
	return v
}

func (a *apiFrame) EvaluateHandle(pageFunc goja.Value, args ...goja.Value) api.JSHandle {
	ctx := a.ctx()
	var arg interface{}
	if len(args) > 0 {
		arg = args[0].Export()
	}
	h, err := a.f.EvaluateHandle(ctx, pageFunc.String(), arg)
	if err != nil {
		k6ext.Panic(ctx, "evaluating: %w", err)
	}
	return wrapJSHandle(ctx, h)
}

func (a *apiFrame) content() string {
	ctx := a.ctx()
	s, err := a.f.Content(ctx)
	if err != nil {
		k6ext.Panic(ctx, "getting page content: %w", err)
	}
	return s
}

func (a *apiFrame) setContent(html string, opts goja.Value) {
	ctx := a.ctx()
	o := SetContentOptions{}
	if err := o.Parse(ctx, opts); err != nil {
		k6ext.Panic(ctx, "parsing setContent options: %w", err)
	}
	if err := a.f.SetContent(ctx, html, o); err != nil {
		k6ext.Panic(ctx, "setting page content: %w", err)
	}
}

// apiJSHandle adapts the internal JSHandle interface to api.JSHandle's
// script-facing shape (ambient ctx, thrown exception), the same pattern
// apiElementHandle uses for the richer ElementHandle interface.
type apiJSHandle struct {
	ctx context.Context
	h   JSHandle
}

func wrapJSHandle(ctx context.Context, h JSHandle) *apiJSHandle {
	if h == nil {
		return nil
	}
	return &apiJSHandle{ctx: ctx, h: h}
}

func (j *apiJSHandle) Dispose() {
	if err := j.h.Dispose(j.ctx); err != nil {
		k6ext.Panic(j.ctx, "disposing handle: %w", err)
	}
}

// apiElementHandle adapts the internal ElementHandle interface (explicit
// ctx, Go error) to api.ElementHandle's script-facing shape (ambient ctx,
// thrown exception).
type apiElementHandle struct {
	ctx context.Context
	h   ElementHandle
}

func wrapElementHandle(ctx context.Context, h ElementHandle) *apiElementHandle {
	if h == nil {
		return nil
	}
	return &apiElementHandle{ctx: ctx, h: h}
}

func (e *apiElementHandle) Dispose() {
	if err := e.h.Dispose(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "disposing element handle: %w", err)
	}
}

func (e *apiElementHandle) Click(opts goja.Value) {
	if err := e.h.Click(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "clicking element: %w", err)
	}
}

func (e *apiElementHandle) DblClick(opts goja.Value) {
	if err := e.h.DblClick(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "double-clicking element: %w", err)
	}
}

func (e *apiElementHandle) Fill(value string, opts goja.Value) {
	if err := e.h.Fill(e.ctx, value); err != nil {
		k6ext.Panic(e.ctx, "filling element: %w", err)
	}
}

func (e *apiElementHandle) Focus() {
	if err := e.h.Focus(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "focusing element: %w", err)
	}
}

func (e *apiElementHandle) Hover(opts goja.Value) {
	if err := e.h.Hover(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "hovering element: %w", err)
	}
}

func (e *apiElementHandle) Check() {
	if err := e.h.Check(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "checking element: %w", err)
	}
}

func (e *apiElementHandle) Uncheck() {
	if err := e.h.Uncheck(e.ctx); err != nil {
		k6ext.Panic(e.ctx, "unchecking element: %w", err)
	}
}

func (e *apiElementHandle) SelectOption(values goja.Value, opts goja.Value) []string {
	rt := k6ext.Runtime(e.ctx)
	selected, err := e.h.SelectOption(e.ctx, toStringSlice(rt, values))
	if err != nil {
		k6ext.Panic(e.ctx, "selecting options: %w", err)
	}
	return selected
}

func (e *apiElementHandle) SetInputFiles(files goja.Value, opts goja.Value) {
	rt := k6ext.Runtime(e.ctx)
	if err := e.h.SetInputFiles(e.ctx, toStringSlice(rt, files)); err != nil {
		k6ext.Panic(e.ctx, "setting input files: %w", err)
	}
}

func (e *apiElementHandle) Type(text string, opts goja.Value) {
	if err := e.h.Type(e.ctx, text); err != nil {
		k6ext.Panic(e.ctx, "typing into element: %w", err)
	}
}

func (e *apiElementHandle) Press(key string, opts goja.Value) {
	if err := e.h.Press(e.ctx, key); err != nil {
		k6ext.Panic(e.ctx, "pressing key on element: %w", err)
	}
}

func (e *apiElementHandle) TextContent() string {
	s, err := e.h.TextContent(e.ctx)
	if err != nil {
		k6ext.Panic(e.ctx, "getting element text content: %w", err)
	}
	return s
}

func (e *apiElementHandle) InnerText() string {
	s, err := e.h.InnerText(e.ctx)
	if err != nil {
		k6ext.Panic(e.ctx, "getting element inner text: %w", err)
	}
	return s
}

func (e *apiElementHandle) InnerHTML() string {
	s, err := e.h.InnerHTML(e.ctx)
	if err != nil {
		k6ext.Panic(e.ctx, "getting element inner HTML: %w", err)
	}
	return s
}

func (e *apiElementHandle) GetAttribute(name string) string {
	s, err := e.h.GetAttribute(e.ctx, name)
	if err != nil {
		k6ext.Panic(e.ctx, "getting element attribute: %w", err)
	}
	return s
}
