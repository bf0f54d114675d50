package common

import (
	"testing"

	"github.com/browsercore/xk6-frame/k6ext/k6test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageScreenshotOptionsParse(t *testing.T) {
	t.Parallel()

	vu := k6test.NewVU(t)
	ctx := vu.Context()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		o := NewPageScreenshotOptions()
		require.NoError(t, o.Parse(ctx, nil))
		assert.Equal(t, ImageFormatPNG, o.Format)
		assert.Equal(t, int64(100), o.Quality)
		assert.Nil(t, o.Clip)
	})

	t.Run("explicit_type_overrides_path_extension", func(t *testing.T) {
		t.Parallel()
		o := NewPageScreenshotOptions()
		opts := vu.ToGojaValue(struct {
			Path string `js:"path"`
			Type string `js:"type"`
		}{Path: "out.jpg", Type: "png"})
		require.NoError(t, o.Parse(ctx, opts))
		assert.Equal(t, ImageFormatPNG, o.Format)
	})

	t.Run("path_extension_infers_jpeg", func(t *testing.T) {
		t.Parallel()
		o := NewPageScreenshotOptions()
		opts := vu.ToGojaValue(struct {
			Path string `js:"path"`
		}{Path: "out.jpeg"})
		require.NoError(t, o.Parse(ctx, opts))
		assert.Equal(t, ImageFormatJPEG, o.Format)
	})

	t.Run("clip", func(t *testing.T) {
		t.Parallel()
		o := NewPageScreenshotOptions()
		opts := vu.ToGojaValue(struct {
			Clip struct {
				X      float64 `js:"x"`
				Y      float64 `js:"y"`
				Width  float64 `js:"width"`
				Height float64 `js:"height"`
			} `js:"clip"`
			FullPage       bool `js:"fullPage"`
			OmitBackground bool `js:"omitBackground"`
		}{
			Clip: struct {
				X      float64 `js:"x"`
				Y      float64 `js:"y"`
				Width  float64 `js:"width"`
				Height float64 `js:"height"`
			}{X: 1, Y: 2, Width: 3, Height: 4},
			FullPage:       true,
			OmitBackground: true,
		})
		require.NoError(t, o.Parse(ctx, opts))
		require.NotNil(t, o.Clip)
		assert.Equal(t, &Rect{X: 1, Y: 2, Width: 3, Height: 4}, o.Clip)
		assert.True(t, o.FullPage)
		assert.True(t, o.OmitBackground)
	})
}
