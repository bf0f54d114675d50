package api

import "github.com/dop251/goja"

// Keyboard is the public interface of a page's keyboard input device.
type Keyboard interface {
	Down(key string)
	Up(key string)
	Press(key string, opts goja.Value)
	InsertText(text string)
	Type(text string, opts goja.Value)
}
