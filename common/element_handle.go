package common

import (
	"context"
	"encoding/json"
	"fmt"

	cdpr "github.com/chromedp/cdproto/runtime"
)

// elementHandle is the concrete JSHandle/ElementHandle backing a remote
// object living in one executionContext. Every action method below
// evaluates a small JS helper against the handle and translates the
// DOM-detached case into NotConnectedError for the retry-with-selector
// loop (§4.4.1) to catch.
type elementHandle struct {
	ctx      *executionContext
	objectID string
}

func newElementHandle(ctx *executionContext, objectID string) *elementHandle {
	return &elementHandle{ctx: ctx, objectID: objectID}
}

var _ ElementHandle = &elementHandle{}

// Dispose releases the remote object backing this handle.
func (h *elementHandle) Dispose(ctx context.Context) error {
	if h.objectID == "" {
		return nil
	}
	ctx = h.ctx.session.ExecutorContext(ctx)
	return h.ctx.client.Runtime.ReleaseObject(ctx, h.objectID)
}

// ContentFrame returns the Frame embedded by this element, if it is an
// <iframe>/<frame>. Resolving the owning frame from a bare remote object
// id requires a reverse lookup this transport does not perform; callers
// needing the embedded frame should instead locate it by name/URL on the
// owning Frame's ChildFrames.
func (h *elementHandle) ContentFrame(ctx context.Context) (*Frame, error) {
	return nil, fmt.Errorf("resolving content frame from an element handle is not supported")
}

func (h *elementHandle) evalOnSelf(ctx context.Context, fn string, arg interface{}) (interface{}, error) {
	ctx = h.ctx.session.ExecutorContext(ctx)

	var args []byte
	if arg != nil {
		var err error
		args, err = json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("marshaling action argument: %w", err)
		}
	}

	cargs, err := h.callArgs(args)
	if err != nil {
		return nil, err
	}

	remote, exc, err := h.ctx.client.Runtime.CallFunctionOn(ctx, fn, h.objectID, 0, cargs, true, true)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		if isNotConnectedMessage(exc.Text) {
			return nil, NewNotConnectedError()
		}
		return nil, fmt.Errorf("element action failed: %s", exc.Text)
	}
	if remote == nil || len(remote.Value) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(remote.Value, &v); err != nil {
		return nil, fmt.Errorf("unmarshaling action result: %w", err)
	}
	return v, nil
}

func isNotConnectedMessage(text string) bool {
	return text != "" && (containsFold(text, "not attached") || containsFold(text, "not connected") || containsFold(text, "detached"))
}

func (h *elementHandle) callArgs(raw []byte) ([]*cdpr.CallArgument, error) {
	if raw == nil {
		return nil, nil
	}
	return []*cdpr.CallArgument{{Value: raw}}, nil
}

// Click clicks the element after scrolling it into view.
func (h *elementHandle) Click(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, clickScript, nil)
	return err
}

// DblClick double-clicks the element.
func (h *elementHandle) DblClick(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, dblClickScript, nil)
	return err
}

// Fill sets the element's value.
func (h *elementHandle) Fill(ctx context.Context, value string) error {
	_, err := h.evalOnSelf(ctx, fillScript, value)
	return err
}

// Focus focuses the element.
func (h *elementHandle) Focus(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, focusScript, nil)
	return err
}

// Hover moves the pointer over the element (no-op beyond scroll-into-view
// and a synthetic mouseover in this transport-light implementation).
func (h *elementHandle) Hover(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, hoverScript, nil)
	return err
}

// Check checks a checkbox/radio if not already checked.
func (h *elementHandle) Check(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, setCheckedScript, true)
	return err
}

// Uncheck unchecks a checkbox if currently checked.
func (h *elementHandle) Uncheck(ctx context.Context) error {
	_, err := h.evalOnSelf(ctx, setCheckedScript, false)
	return err
}

// SelectOption sets the <select>'s selected options to values and returns
// the ones that actually matched.
func (h *elementHandle) SelectOption(ctx context.Context, values []string) ([]string, error) {
	v, err := h.evalOnSelf(ctx, selectOptionScript, values)
	if err != nil {
		return nil, err
	}
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// SetInputFiles is unsupported over this transport's evaluate-only action
// surface: setting files requires DOM.setFileInputFiles, a capability this
// module's PageDelegate does not currently expose.
func (h *elementHandle) SetInputFiles(ctx context.Context, files []string) error {
	return fmt.Errorf("setInputFiles is not supported by this transport")
}

// Type types text key by key.
func (h *elementHandle) Type(ctx context.Context, text string) error {
	_, err := h.evalOnSelf(ctx, typeScript, text)
	return err
}

// Press presses a single key.
func (h *elementHandle) Press(ctx context.Context, key string) error {
	_, err := h.evalOnSelf(ctx, pressScript, key)
	return err
}

// TextContent returns the element's textContent.
func (h *elementHandle) TextContent(ctx context.Context) (string, error) {
	return h.stringProp(ctx, `(el) => el.textContent`)
}

// InnerText returns the element's innerText.
func (h *elementHandle) InnerText(ctx context.Context) (string, error) {
	return h.stringProp(ctx, `(el) => el.innerText`)
}

// InnerHTML returns the element's innerHTML.
func (h *elementHandle) InnerHTML(ctx context.Context) (string, error) {
	return h.stringProp(ctx, `(el) => el.innerHTML`)
}

// GetAttribute returns the named attribute, or "" if absent.
func (h *elementHandle) GetAttribute(ctx context.Context, name string) (string, error) {
	return h.stringProp(ctx, fmt.Sprintf(`(el) => el.getAttribute(%q) || ''`, name))
}

func (h *elementHandle) stringProp(ctx context.Context, fn string) (string, error) {
	v, err := h.evalOnSelf(ctx, fn, nil)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

func containsFold(s, substr string) bool {
	return len(s) >= len(substr) && indexFold(s, substr) >= 0
}

func indexFold(s, substr string) int {
	ls, lsub := []byte(toLower(s)), []byte(toLower(substr))
	for i := 0; i+len(lsub) <= len(ls); i++ {
		if string(ls[i:i+len(lsub)]) == string(lsub) {
			return i
		}
	}
	return -1
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

const (
	clickScript = `(el) => { el.scrollIntoView({block:'center',inline:'center'}); if (!el.isConnected) throw new Error('not connected'); el.click(); }`
	dblClickScript = `(el) => { el.scrollIntoView({block:'center',inline:'center'}); if (!el.isConnected) throw new Error('not connected'); const ev = new MouseEvent('dblclick', {bubbles:true}); el.dispatchEvent(ev); }`
	fillScript = `(el, value) => { if (!el.isConnected) throw new Error('not connected'); el.value = value; el.dispatchEvent(new Event('input', {bubbles:true})); el.dispatchEvent(new Event('change', {bubbles:true})); }`
	focusScript = `(el) => { if (!el.isConnected) throw new Error('not connected'); el.focus(); }`
	hoverScript = `(el) => { el.scrollIntoView({block:'center',inline:'center'}); if (!el.isConnected) throw new Error('not connected'); el.dispatchEvent(new MouseEvent('mouseover', {bubbles:true})); }`
	setCheckedScript = `(el, checked) => { if (!el.isConnected) throw new Error('not connected'); if (el.checked !== checked) { el.checked = checked; el.dispatchEvent(new Event('click', {bubbles:true})); el.dispatchEvent(new Event('change', {bubbles:true})); } }`
	selectOptionScript = `(el, values) => { if (!el.isConnected) throw new Error('not connected'); const set = new Set(values); const selected = []; for (const o of el.options) { o.selected = set.has(o.value); if (o.selected) selected.push(o.value); } el.dispatchEvent(new Event('input', {bubbles:true})); el.dispatchEvent(new Event('change', {bubbles:true})); return selected; }`
	typeScript = `(el, text) => { if (!el.isConnected) throw new Error('not connected'); el.focus(); for (const ch of text) { el.value += ch; el.dispatchEvent(new Event('input', {bubbles:true})); } }`
	pressScript = `(el, key) => { if (!el.isConnected) throw new Error('not connected'); el.focus(); el.dispatchEvent(new KeyboardEvent('keydown', {key, bubbles:true})); el.dispatchEvent(new KeyboardEvent('keyup', {key, bubbles:true})); }`
)
