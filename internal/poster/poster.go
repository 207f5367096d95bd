package poster

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"weekendly/internal/capture"
	"weekendly/internal/convert"
	appLog "weekendly/internal/log"
	"weekendly/internal/schedule"
)

//go:embed poster.html.tmpl
var pageSource string

var page = template.Must(template.New("poster").Funcs(template.FuncMap{
	"mul": func(a, b int) int { return a * b },
}).Parse(pageSource))

// WriteHTML renders v as a standalone HTML document.
func WriteHTML(w io.Writer, v View) error {
	return page.Execute(w, v)
}

// CaptureFunc rasterizes a page; capture.CapturePNG in production.
type CaptureFunc func(ctx context.Context, opts capture.CaptureOptions) ([]byte, error)

// Options configure an Exporter.
type Options struct {
	GridStart int
	GridEnd   int
	Theme     string
	Width     int
	Height    int
	Scale     float64
	Timeout   time.Duration
}

// Exporter turns schedule snapshots into poster PNGs.
type Exporter struct {
	opts    Options
	capture CaptureFunc
}

// NewExporter returns an Exporter using headless Chromium.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts, capture: capture.CapturePNG}
}

// WithCapture swaps the rasterizer, e.g. for tests.
func (e *Exporter) WithCapture(fn CaptureFunc) *Exporter {
	e.capture = fn
	return e
}

// View builds the template input for snap with the exporter's grid.
func (e *Exporter) View(snap schedule.Snapshot) View {
	return BuildView(snap, e.opts.GridStart, e.opts.GridEnd, e.opts.Theme)
}

// Render produces the poster PNG for snap. An empty plan still renders.
func (e *Exporter) Render(ctx context.Context, snap schedule.Snapshot) ([]byte, error) {
	var html bytes.Buffer
	if err := WriteHTML(&html, e.View(snap)); err != nil {
		return nil, fmt.Errorf("poster: render html: %w", err)
	}

	start := time.Now()
	raw, err := e.capture(ctx, capture.CaptureOptions{
		HTML:    html.String(),
		Width:   e.opts.Width,
		Height:  e.opts.Height,
		Scale:   e.opts.Scale,
		Timeout: e.opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("poster: %w", err)
	}

	png, err := convert.FlattenPNG(raw)
	if err != nil {
		return nil, fmt.Errorf("poster: %w", err)
	}
	appLog.Info("poster rendered", "items", snap.Len(), "bytes", len(png), "took", time.Since(start).Round(time.Millisecond))
	return png, nil
}
