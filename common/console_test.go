package common

import (
	"testing"

	cdpruntime "github.com/chromedp/cdproto/runtime"

	"github.com/stretchr/testify/assert"
)

func TestFormatConsoleArgs(t *testing.T) {
	t.Parallel()

	t.Run("description_preferred", func(t *testing.T) {
		t.Parallel()
		args := []*cdpruntime.RemoteObject{
			{Type: cdpruntime.TypeString, Description: "hello"},
			{Type: cdpruntime.TypeNumber, Value: []byte(`42`)},
		}
		assert.Equal(t, "hello 42", formatConsoleArgs(args))
	})

	t.Run("value_falls_back_when_no_description", func(t *testing.T) {
		t.Parallel()
		args := []*cdpruntime.RemoteObject{
			{Type: cdpruntime.TypeString, Value: []byte(`"quoted"`)},
		}
		assert.Equal(t, "quoted", formatConsoleArgs(args))
	})

	t.Run("type_is_last_resort", func(t *testing.T) {
		t.Parallel()
		args := []*cdpruntime.RemoteObject{
			{Type: cdpruntime.TypeUndefined},
		}
		assert.Equal(t, "undefined", formatConsoleArgs(args))
	})

	t.Run("nil_arg_ignored", func(t *testing.T) {
		t.Parallel()
		args := []*cdpruntime.RemoteObject{nil}
		assert.Equal(t, "", formatConsoleArgs(args))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", formatConsoleArgs(nil))
	})
}
