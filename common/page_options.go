package common

import (
	"context"
	"strings"

	"github.com/dop251/goja"

	"github.com/browsercore/xk6-frame/k6ext"
)

// ImageFormat represents a screenshot's image encoding.
type ImageFormat string

// Valid image formats.
const (
	ImageFormatJPEG ImageFormat = "jpeg"
	ImageFormatPNG  ImageFormat = "png"
)

// PageScreenshotOptions are the options accepted by page.screenshot().
type PageScreenshotOptions struct {
	Clip           *Rect       `js:"clip"`
	Path           string      `js:"path"`
	Format         ImageFormat `js:"format"`
	FullPage       bool        `js:"fullPage"`
	OmitBackground bool        `js:"omitBackground"`
	Quality        int64       `js:"quality"`
}

// NewPageScreenshotOptions returns screenshot options with Playwright's
// defaults.
func NewPageScreenshotOptions() *PageScreenshotOptions {
	return &PageScreenshotOptions{
		Format:  ImageFormatPNG,
		Quality: 100,
	}
}

// Parse reads opts's js-tagged fields into o.
func (o *PageScreenshotOptions) Parse(ctx context.Context, opts goja.Value) error {
	if !k6ext.ValueExists(opts) {
		return nil
	}
	rt := k6ext.Runtime(ctx)
	obj := opts.ToObject(rt)
	formatSpecified := false
	for _, k := range obj.Keys() {
		v := obj.Get(k)
		switch k {
		case "clip":
			c := v.ToObject(rt)
			clip := &Rect{}
			for _, ck := range c.Keys() {
				switch ck {
				case "x":
					clip.X = c.Get(ck).ToFloat()
				case "y":
					clip.Y = c.Get(ck).ToFloat()
				case "width":
					clip.Width = c.Get(ck).ToFloat()
				case "height":
					clip.Height = c.Get(ck).ToFloat()
				}
			}
			o.Clip = clip
		case "fullPage":
			o.FullPage = v.ToBoolean()
		case "omitBackground":
			o.OmitBackground = v.ToBoolean()
		case "path":
			o.Path = v.String()
		case "quality":
			o.Quality = v.ToInteger()
		case "type":
			formatSpecified = true
			o.Format = ImageFormat(v.String())
		}
	}
	if !formatSpecified && o.Path != "" {
		if strings.HasSuffix(o.Path, ".jpg") || strings.HasSuffix(o.Path, ".jpeg") {
			o.Format = ImageFormatJPEG
		}
	}
	return nil
}
