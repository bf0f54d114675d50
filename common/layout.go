package common

import (
	"context"
	"fmt"
	"math"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// Position represents an x/y position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect represents a rectangle.
type Rect struct {
	X      float64 `js:"x"`
	Y      float64 `js:"y"`
	Width  float64 `js:"width"`
	Height float64 `js:"height"`
}

func (r *Rect) enclosingIntRect() *Rect {
	x := math.Floor(r.X + 1e-3)
	y := math.Floor(r.Y + 1e-3)
	x2 := math.Ceil(r.X + r.Width - 1e-3)
	y2 := math.Ceil(r.Y + r.Height - 1e-3)
	return &Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Size represents a width/height pair.
type Size struct {
	Width  float64 `js:"width"`
	Height float64 `js:"height"`
}

func (s Size) enclosingIntSize() *Size {
	return &Size{
		Width:  math.Floor(s.Width + 1e-3),
		Height: math.Floor(s.Height + 1e-3),
	}
}

// Parse reads width/height from viewport if it exists.
func (s *Size) Parse(ctx context.Context, viewport goja.Value) error {
	if !k6ext.ValueExists(viewport) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := viewport.ToObject(rt)
	for _, k := range obj.Keys() {
		switch k {
		case "width":
			s.Width = obj.Get(k).ToFloat()
		case "height":
			s.Height = obj.Get(k).ToFloat()
		}
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%fx%f", s.Width, s.Height)
}

// Viewport represents a page viewport.
type Viewport struct {
	Width  int64 `js:"width"`
	Height int64 `js:"height"`
}

// IsEmpty reports whether the viewport has no width and height set.
func (v Viewport) IsEmpty() bool {
	return v.Width == 0 && v.Height == 0
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Parse reads width/height from viewport if it exists.
func (v *Viewport) Parse(ctx context.Context, viewport goja.Value) error {
	if !k6ext.ValueExists(viewport) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := viewport.ToObject(rt)
	for _, k := range obj.Keys() {
		switch k {
		case "width":
			v.Width = obj.Get(k).ToInteger()
		case "height":
			v.Height = obj.Get(k).ToInteger()
		}
	}
	return nil
}

// recalculateInset adds the OS-specific chrome inset to v, unless running
// headless, and returns the adjusted Viewport.
func (v Viewport) recalculateInset(headless bool, os string) Viewport {
	if headless {
		return v
	}
	var inset Viewport
	switch os {
	default:
		inset = Viewport{Width: 24, Height: 88}
	case "windows":
		inset = Viewport{Width: 16, Height: 88}
	case "linux":
		inset = Viewport{Width: 8, Height: 85}
	case "darwin":
		inset = Viewport{Width: 0, Height: 79}
	}

	return Viewport{
		Width:  v.Width + inset.Width,
		Height: v.Height + inset.Height,
	}
}
