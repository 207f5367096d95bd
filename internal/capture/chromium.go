package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Default capture parameters for the weekend poster.
const (
	DefaultWidth      = 900
	DefaultHeight     = 1200
	DefaultScale      = 3.0
	DefaultTimeoutSec = 30
	DefaultSelector   = "#poster"
)

// CaptureOptions defines parameters for a Chromium-based screenshot capture.
// Exactly one of URL or HTML is used; URL wins when both are set.
type CaptureOptions struct {
	// URL to capture, e.g. "http://127.0.0.1:8080/poster".
	URL string

	// HTML is a complete document loaded into a blank page.
	HTML string

	// Selector is the element to capture. Defaults to DefaultSelector.
	Selector string

	// Width and Height are the CSS viewport in pixels.
	Width  int
	Height int

	// Scale multiplies the output resolution (device pixel ratio).
	Scale float64

	// Timeout bounds the entire capture operation.
	Timeout time.Duration
}

func (o *CaptureOptions) normalize() {
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
}

// CapturePNG launches a headless Chromium instance via chromedp, loads the
// page, waits for `[data-ready="true"]` and returns a PNG of opts.Selector
// rendered at opts.Scale over a white page background.
func CapturePNG(parentCtx context.Context, opts CaptureOptions) ([]byte, error) {
	if opts.URL == "" && opts.HTML == "" {
		return nil, fmt.Errorf("capture: URL or HTML is required")
	}
	opts.normalize()

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	white := &cdp.RGBA{R: 255, G: 255, B: 255, A: 1}

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(white),
	}
	if opts.URL != "" {
		tasks = append(tasks, chromedp.Navigate(opts.URL))
	} else {
		tasks = append(tasks, chromedp.Navigate("about:blank"), setDocument(opts.HTML))
	}
	tasks = append(tasks,
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		chromedp.ScreenshotScale(opts.Selector, opts.Scale, &png, chromedp.ByQuery),
	)

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: chromedp run failed: %w", err)
	}
	return png, nil
}

// setDocument replaces the main frame's document with html.
func setDocument(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}
