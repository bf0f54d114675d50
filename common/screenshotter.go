/*
 *
 * xk6-browser - a browser automation extension for k6
 * Copyright (C) 2021 Load Impact
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package common

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	cdpext "github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	cdppage "github.com/chromedp/cdproto/page"
	"github.com/pkg/errors"
)

// Screenshotter drives CDP's Page.captureScreenshot to satisfy
// page.screenshot(), after Playwright's full-page/clip/viewport dance.
type Screenshotter struct {
	ctx context.Context
}

// NewScreenshotter returns a Screenshotter scoped to ctx.
func NewScreenshotter(ctx context.Context) *Screenshotter {
	return &Screenshotter{ctx: ctx}
}

func (s *Screenshotter) fullPageSize(p *Page) (*Size, error) {
	result, err := p.MainFrame().Evaluate(s.ctx, `
        () => {
            if (!document.body || !document.documentElement) {
                return null;
            }
            return {
                width: Math.max(
                    document.body.scrollWidth, document.documentElement.scrollWidth,
                    document.body.offsetWidth, document.documentElement.offsetWidth,
                    document.body.clientWidth, document.documentElement.clientWidth
                ),
                height: Math.max(
                    document.body.scrollHeight, document.documentElement.scrollHeight,
                    document.body.offsetHeight, document.documentElement.offsetHeight,
                    document.body.clientHeight, document.documentElement.clientHeight
                ),
            };
        }`, nil)
	if err != nil {
		return nil, err
	}
	o, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("measuring full page size: unexpected result %#v", result)
	}
	return &Size{Width: toFloat(o["width"]), Height: toFloat(o["height"])}, nil
}

func (s *Screenshotter) originalViewportSize(p *Page) (*Size, *Size, error) {
	originalViewport := p.viewportSize()
	viewportSize := Size{Width: float64(originalViewport.Width), Height: float64(originalViewport.Height)}
	if viewportSize.Width == 0 && viewportSize.Height == 0 {
		result, err := p.MainFrame().Evaluate(s.ctx, `() => ({ width: window.innerWidth, height: window.innerHeight })`, nil)
		if err != nil {
			return nil, nil, err
		}
		if o, ok := result.(map[string]interface{}); ok {
			viewportSize.Width = toFloat(o["width"])
			viewportSize.Height = toFloat(o["height"])
		}
	}
	return &viewportSize, &Size{Width: viewportSize.Width, Height: viewportSize.Height}, nil
}

func toFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

func (s *Screenshotter) restoreViewport(p *Page, originalViewport *Size) error {
	if originalViewport != nil {
		return p.setViewportSize(&Viewport{Width: int64(originalViewport.Width), Height: int64(originalViewport.Height)})
	}
	return p.resetViewport()
}

func (s *Screenshotter) screenshot(session *Session, format ImageFormat, documentRect, viewportRect *Rect, opts *PageScreenshotOptions) ([]byte, error) {
	capture := cdppage.CaptureScreenshot()

	shouldSetDefaultBackground := opts.OmitBackground && format == ImageFormatPNG
	if shouldSetDefaultBackground {
		action := emulation.SetDefaultBackgroundColorOverride().WithColor(&cdpext.RGBA{R: 0, G: 0, B: 0, A: 0})
		if err := action.Do(cdpext.WithExecutor(s.ctx, session)); err != nil {
			return nil, fmt.Errorf("unable to set screenshot background transparency: %w", err)
		}
	}

	capture.WithQuality(opts.Quality)
	switch format {
	case ImageFormatJPEG:
		capture.WithFormat(cdppage.CaptureScreenshotFormatJpeg)
	default:
		capture.WithFormat(cdppage.CaptureScreenshotFormatPng)
	}

	_, visualViewport, _, _, _, _, err := cdppage.GetLayoutMetrics().Do(cdpext.WithExecutor(s.ctx, session))
	if err != nil {
		return nil, fmt.Errorf("unable to get layout metrics for screenshot: %w", err)
	}

	if documentRect == nil {
		sz := (&Size{
			Width:  viewportRect.Width / visualViewport.Scale,
			Height: viewportRect.Height / visualViewport.Scale,
		}).enclosingIntSize()
		documentRect = &Rect{
			X:      visualViewport.PageX + viewportRect.X,
			Y:      visualViewport.PageY + viewportRect.Y,
			Width:  sz.Width,
			Height: sz.Height,
		}
	}

	scale := 1.0
	if viewportRect != nil {
		scale = visualViewport.Scale
	}
	clip := &cdppage.Viewport{
		X:      documentRect.X,
		Y:      documentRect.Y,
		Width:  documentRect.Width,
		Height: documentRect.Height,
		Scale:  scale,
	}
	if clip.Width > 0 && clip.Height > 0 {
		capture = capture.WithClip(clip)
	}

	buf, err := capture.Do(cdpext.WithExecutor(s.ctx, session))
	if err != nil {
		return nil, fmt.Errorf("unable to capture screenshot: %w", err)
	}

	if shouldSetDefaultBackground {
		action := emulation.SetDefaultBackgroundColorOverride()
		if err := action.Do(cdpext.WithExecutor(s.ctx, session)); err != nil {
			return nil, fmt.Errorf("unable to reset screenshot background color: %w", err)
		}
	}

	if opts.Path != "" {
		dir := filepath.Dir(opts.Path)
		if err := os.MkdirAll(dir, 0o775); err != nil {
			return nil, fmt.Errorf("unable to create directory for screenshot: %w", err)
		}
		if err := os.WriteFile(opts.Path, buf, 0o664); err != nil {
			return nil, fmt.Errorf("unable to save screenshot to file: %w", err)
		}
	}

	return buf, nil
}

// screenshotPage implements page.screenshot()'s full-page/clip/viewport
// logic, after Playwright's Page.screenshot.
func (s *Screenshotter) screenshotPage(p *Page, opts *PageScreenshotOptions) ([]byte, error) {
	format := opts.Format

	viewportSize, originalViewportSize, err := s.originalViewportSize(p)
	if err != nil {
		return nil, err
	}

	if opts.FullPage {
		fullPageSize, err := s.fullPageSize(p)
		if err != nil {
			return nil, err
		}
		documentRect := &Rect{Width: fullPageSize.Width, Height: fullPageSize.Height}

		var overriddenViewportSize *Size
		fitsViewport := fullPageSize.Width <= viewportSize.Width && fullPageSize.Height <= viewportSize.Height
		if !fitsViewport {
			overriddenViewportSize = fullPageSize
			if err := p.setViewportSize(&Viewport{
				Width:  int64(overriddenViewportSize.Width),
				Height: int64(overriddenViewportSize.Height),
			}); err != nil {
				return nil, err
			}
		}
		if opts.Clip != nil {
			documentRect, err = s.trimClipToSize(opts.Clip, &Size{Width: documentRect.Width, Height: documentRect.Height})
			if err != nil {
				return nil, err
			}
		}

		buf, err := s.screenshot(p.session, format, documentRect, nil, opts)
		if err != nil {
			return nil, err
		}
		if overriddenViewportSize != nil {
			if err := s.restoreViewport(p, originalViewportSize); err != nil {
				return nil, err
			}
		}
		return buf, nil
	}

	viewportRect := &Rect{Width: viewportSize.Width, Height: viewportSize.Height}
	if opts.Clip != nil {
		viewportRect, err = s.trimClipToSize(opts.Clip, viewportSize)
		if err != nil {
			return nil, err
		}
	}
	return s.screenshot(p.session, format, nil, viewportRect, opts)
}

func (s *Screenshotter) trimClipToSize(clip *Rect, size *Size) (*Rect, error) {
	p1 := Position{
		X: math.Max(0, math.Min(clip.X, size.Width)),
		Y: math.Max(0, math.Min(clip.Y, size.Height)),
	}
	p2 := Position{
		X: math.Max(0, math.Min(clip.X+clip.Width, size.Width)),
		Y: math.Max(0, math.Min(clip.Y+clip.Height, size.Height)),
	}
	result := &Rect{
		X:      p1.X,
		Y:      p1.Y,
		Width:  p2.X - p1.X,
		Height: p2.Y - p1.Y,
	}
	if result.Width == 0 || result.Height == 0 {
		return nil, errors.New("clip area is either empty or outside the viewport")
	}
	return result, nil
}
