package common

import (
	"strings"

	"github.com/chromedp/cdproto"
	cdpruntime "github.com/chromedp/cdproto/runtime"
)

// initConsoleEvents subscribes to the page's CDP Runtime.consoleAPICalled
// events and routes each one through the frame manager's console-tag
// back-channel (§4.5), exactly mirroring Browser.initEvents's
// Subscribe-plus-goroutine pattern but scoped to this page's session.
func (p *Page) initConsoleEvents() {
	sessionCtx := p.session.ExecutorContext(p.ctx)
	evtCh, cancel := p.client.Subscribe(sessionCtx, "", cdproto.EventRuntimeConsoleAPICalled)

	go func() {
		defer cancel()
		for {
			select {
			case event, ok := <-evtCh:
				if !ok {
					return
				}
				ev, ok := event.Data.(*cdpruntime.EventConsoleAPICalled)
				if !ok {
					continue
				}
				p.onConsoleAPICalled(ev)
			case <-p.closedCh:
				return
			case <-p.ctx.Done():
				return
			}
		}
	}()
}

// onConsoleAPICalled decodes a console.* call reported over CDP and hands
// it to the frame manager, which either consumes it as a one-shot tag or
// fans it out as a page Console event.
func (p *Page) onConsoleAPICalled(event *cdpruntime.EventConsoleAPICalled) {
	text := formatConsoleArgs(event.Args)
	p.frameManager.interceptConsoleMessage(p.ctx, string(event.Type), text)
}

// formatConsoleArgs joins a console call's arguments the way a browser
// console would print them: each arg rendered from its RemoteObject
// description/value, space-separated.
func formatConsoleArgs(args []*cdpruntime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatConsoleArg(arg))
	}
	return strings.Join(parts, " ")
}

func formatConsoleArg(arg *cdpruntime.RemoteObject) string {
	if arg == nil {
		return ""
	}
	if arg.Description != "" {
		return arg.Description
	}
	if len(arg.Value) > 0 {
		return strings.Trim(string(arg.Value), `"`)
	}
	return string(arg.Type)
}
