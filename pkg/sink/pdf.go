package sink

import (
	"context"
	"errors"

	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/render"
)

// PDF renders pages through [SVG] and converts them to a multi-page PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type PDF struct {
	ctx context.Context
	svg *SVG
}

// NewPDF creates a PDF sink. Payloads are capped at [DefaultPDFMaxDPI] unless
// [WithMaxDPI] says otherwise. ctx bounds the conversion in Finalize.
func NewPDF(ctx context.Context, opts ...Option) *PDF {
	opts = append([]Option{WithMaxDPI(DefaultPDFMaxDPI)}, opts...)
	return &PDF{ctx: ctx, svg: NewSVG(opts...)}
}

// BeginPage starts an SVG page.
func (p *PDF) BeginPage(size layout.PageSize) error { return p.svg.BeginPage(size) }

// PlaceImage embeds the image on the current SVG page.
func (p *PDF) PlaceImage(img layout.PlacedImage) error { return p.svg.PlaceImage(img) }

// DrawLine draws a separator on the current SVG page.
func (p *PDF) DrawLine(l layout.SeparatorLine) error { return p.svg.DrawLine(l) }

// EndPage closes the current SVG page.
func (p *PDF) EndPage() error { return p.svg.EndPage() }

// Finalize converts the SVG pages into one PDF with a page per SVG.
func (p *PDF) Finalize() ([]byte, error) {
	if _, err := p.svg.Finalize(); err != nil {
		return nil, err
	}
	pages := p.svg.Pages()
	if len(pages) == 0 {
		return nil, errors.New("pdf needs at least one page")
	}
	return render.ToPDF(p.ctx, pages...)
}
