package sink

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/Roman-/img2pdf/pkg/layout"
)

// DefaultPreviewDPI is the resolution of PNG previews.
const DefaultPreviewDPI = 96.0

// PNGOption configures the PNG preview sink.
type PNGOption func(*PNG)

// WithPage selects the zero-based page to rasterise (default 0).
func WithPage(i int) PNGOption { return func(p *PNG) { p.page = i } }

// WithDPI sets the preview resolution.
func WithDPI(dpi float64) PNGOption { return func(p *PNG) { p.dpi = dpi } }

// WithFill sets the page colour as "#rrggbb". Empty leaves the page transparent.
func WithFill(hex string) PNGOption { return func(p *PNG) { p.fill = hex } }

// PNG rasterises one page of the plan. Other pages are accepted and ignored.
type PNG struct {
	state pageState
	page  int
	dpi   float64
	fill  string

	current int
	dc      *gg.Context
	out     image.Image
}

// NewPNG creates a PNG preview sink.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{dpi: DefaultPreviewDPI, fill: "#ffffff"}
	for _, opt := range opts {
		opt(p)
	}
	if p.dpi <= 0 {
		p.dpi = DefaultPreviewDPI
	}
	return p
}

func (p *PNG) scale() float64 { return p.dpi / mmPerInch }

// BeginPage starts a canvas when the page is the selected one.
func (p *PNG) BeginPage(size layout.PageSize) error {
	if err := p.state.begin(); err != nil {
		return err
	}
	p.current = p.state.pages
	if p.current != p.page {
		return nil
	}
	s := p.scale()
	p.dc = gg.NewContext(int(math.Ceil(size.WidthMm*s)), int(math.Ceil(size.HeightMm*s)))
	if p.fill != "" {
		p.dc.SetHexColor(p.fill)
		p.dc.Clear()
	}
	return nil
}

// PlaceImage resamples the payload to its placed size and draws it.
func (p *PNG) PlaceImage(img layout.PlacedImage) error {
	if err := p.state.draw(); err != nil {
		return err
	}
	if p.dc == nil || p.current != p.page {
		return nil
	}
	if img.Source == nil || img.Source.Payload == nil {
		return p.state.fail(fmt.Errorf("image %q: %w", img.Name, errNoPayload))
	}
	s := p.scale()
	w := max(int(math.Round(img.WidthMm*s)), 1)
	h := max(int(math.Round(img.HeightMm*s)), 1)
	scaled := imaging.Resize(img.Source.Payload, w, h, imaging.Lanczos)
	p.dc.DrawImage(scaled, int(math.Round(img.XMm*s)), int(math.Round(img.YMm*s)))
	return nil
}

// DrawLine strokes a separator, dashed when the line carries a pattern.
func (p *PNG) DrawLine(l layout.SeparatorLine) error {
	if err := p.state.draw(); err != nil {
		return err
	}
	if p.dc == nil || p.current != p.page {
		return nil
	}
	s := p.scale()
	x1, y1, x2, y2 := l.Endpoints()
	p.dc.SetRGB255(int(l.Color.R), int(l.Color.G), int(l.Color.B))
	p.dc.SetLineWidth(max(l.ThicknessMm*s, 1))
	if l.Dash != nil {
		p.dc.SetDash(l.Dash.OnMm*s, l.Dash.OffMm*s)
	} else {
		p.dc.SetDash()
	}
	p.dc.DrawLine(x1*s, y1*s, x2*s, y2*s)
	p.dc.Stroke()
	return nil
}

// EndPage keeps the finished canvas of the selected page.
func (p *PNG) EndPage() error {
	if err := p.state.end(); err != nil {
		return err
	}
	if p.dc != nil && p.current == p.page {
		p.out = p.dc.Image()
		p.dc = nil
	}
	return nil
}

// Finalize encodes the selected page. It fails when the plan has no such page.
func (p *PNG) Finalize() ([]byte, error) {
	if err := p.state.finalize(); err != nil {
		return nil, err
	}
	if p.out == nil {
		return nil, fmt.Errorf("page %d not in plan (%d pages)", p.page, p.state.pages)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.out, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Image returns the rendered page after Finalize.
func (p *PNG) Image() image.Image { return p.out }
