package api

import "github.com/dop251/goja"

// Page is the public interface of one browser tab.
type Page interface {
	Close()
	MainFrame() Frame
	Goto(url string, opts goja.Value) Response
	Content() string
	SetContent(html string, opts goja.Value)
	WaitForTimeout(ms int64)
	URL() string
	Keyboard() Keyboard
	Screenshot(opts goja.Value) goja.ArrayBuffer
}

// Frame is the public interface of one node of a page's frame tree.
type Frame interface {
	URL() string
	ChildFrames() []Frame
	Goto(url string, opts goja.Value) Response
	WaitForNavigation(opts goja.Value) Response
	WaitForLoadState(state string, opts goja.Value)
	WaitForSelector(selector string, opts goja.Value) ElementHandle
	WaitForFunction(pageFunc goja.Value, opts goja.Value, args ...goja.Value) JSHandle
	Click(selector string, opts goja.Value)
	DblClick(selector string, opts goja.Value)
	Fill(selector, value string, opts goja.Value)
	Focus(selector string, opts goja.Value)
	Hover(selector string, opts goja.Value)
	Check(selector string, opts goja.Value)
	Uncheck(selector string, opts goja.Value)
	SelectOption(selector string, values goja.Value, opts goja.Value) []string
	SetInputFiles(selector string, files goja.Value, opts goja.Value)
	Type(selector, text string, opts goja.Value)
	Press(selector, key string, opts goja.Value)
	TextContent(selector string, opts goja.Value) string
	InnerText(selector string, opts goja.Value) string
	InnerHTML(selector string, opts goja.Value) string
	GetAttribute(selector, name string, opts goja.Value) string
	DispatchEvent(selector, eventType string, eventInit goja.Value, opts goja.Value)
	Query(selector string) ElementHandle
	QueryAll(selector string) []ElementHandle
	AddScriptTag(opts goja.Value)
	AddStyleTag(opts goja.Value)
	FrameElement() ElementHandle
	Evaluate(pageFunc goja.Value, args ...goja.Value) interface{}
	EvaluateHandle(pageFunc goja.Value, args ...goja.Value) JSHandle
}

// ElementHandle is the public interface of a resolved DOM element.
type ElementHandle interface {
	Click(opts goja.Value)
	DblClick(opts goja.Value)
	Fill(value string, opts goja.Value)
	Focus()
	Hover(opts goja.Value)
	Check()
	Uncheck()
	SelectOption(values goja.Value, opts goja.Value) []string
	SetInputFiles(files goja.Value, opts goja.Value)
	Type(text string, opts goja.Value)
	Press(key string, opts goja.Value)
	TextContent() string
	InnerText() string
	InnerHTML() string
	GetAttribute(name string) string
	Dispose()
}

// JSHandle is the public interface of a handle to a JS value living in a
// page's execution context, returned by Frame.EvaluateHandle and
// Frame.WaitForFunction.
type JSHandle interface {
	Dispose()
}

// Response is the public interface of a navigation's top-level response.
type Response interface {
	Status() int
}
