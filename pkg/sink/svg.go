package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/Roman-/img2pdf/pkg/layout"
)

// contactGapMm separates pages in the combined SVG returned by Finalize.
const contactGapMm = 10.0

// SVG renders each page as a standalone SVG document in millimetre units.
//
// Finalize returns a single SVG with all pages stacked vertically; use
// [SVG.Pages] for the per-page documents.
type SVG struct {
	cfg   config
	state pageState

	size   layout.PageSize
	buf    bytes.Buffer
	bodies [][]byte
	pages  [][]byte
	sizes  []layout.PageSize
}

// NewSVG creates an SVG sink.
func NewSVG(opts ...Option) *SVG {
	return &SVG{cfg: newConfig(opts)}
}

// BeginPage starts a page body, filled with the background colour if one is set.
func (s *SVG) BeginPage(size layout.PageSize) error {
	if err := s.state.begin(); err != nil {
		return err
	}
	s.size = size
	s.buf.Reset()
	w, h := num(size.WidthMm), num(size.HeightMm)
	if s.cfg.background != "" {
		fmt.Fprintf(&s.buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", w, h, s.cfg.background)
	}
	return nil
}

// PlaceImage embeds the image payload as a data URI.
func (s *SVG) PlaceImage(img layout.PlacedImage) error {
	if err := s.state.draw(); err != nil {
		return err
	}
	uri, err := dataURI(img, s.cfg)
	if err != nil {
		return s.state.fail(fmt.Errorf("image %q: %w", img.Name, err))
	}
	fmt.Fprintf(&s.buf, `  <image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" xlink:href="%s"><title>%s</title></image>`+"\n",
		num(img.XMm), num(img.YMm), num(img.WidthMm), num(img.HeightMm), uri, html.EscapeString(img.Name))
	return nil
}

// DrawLine writes a line element.
func (s *SVG) DrawLine(l layout.SeparatorLine) error {
	if err := s.state.draw(); err != nil {
		return err
	}
	x1, y1, x2, y2 := l.Endpoints()
	fmt.Fprintf(&s.buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"`,
		num(x1), num(y1), num(x2), num(y2), l.Color.Hex(), num(l.ThicknessMm))
	if l.Dash != nil {
		fmt.Fprintf(&s.buf, ` stroke-dasharray="%s %s"`, num(l.Dash.OnMm), num(l.Dash.OffMm))
	}
	s.buf.WriteString("/>\n")
	return nil
}

// EndPage closes the page as a standalone document.
func (s *SVG) EndPage() error {
	if err := s.state.end(); err != nil {
		return err
	}
	body := bytes.Clone(s.buf.Bytes())

	var doc bytes.Buffer
	writeHeader(&doc, s.size.WidthMm, s.size.HeightMm)
	doc.Write(body)
	doc.WriteString("</svg>\n")

	s.bodies = append(s.bodies, body)
	s.pages = append(s.pages, doc.Bytes())
	s.sizes = append(s.sizes, s.size)
	return nil
}

// Finalize returns every page stacked into one SVG.
func (s *SVG) Finalize() ([]byte, error) {
	if err := s.state.finalize(); err != nil {
		return nil, err
	}
	return s.contactSheet(), nil
}

// Pages returns the finished per-page documents.
func (s *SVG) Pages() [][]byte { return s.pages }

func (s *SVG) contactSheet() []byte {
	var width, height float64
	for i, sz := range s.sizes {
		width = max(width, sz.WidthMm)
		height += sz.HeightMm
		if i > 0 {
			height += contactGapMm
		}
	}

	var buf bytes.Buffer
	writeHeader(&buf, width, height)
	y := 0.0
	for i, body := range s.bodies {
		sz := s.sizes[i]
		w, h := num(sz.WidthMm), num(sz.HeightMm)
		fmt.Fprintf(&buf, `<svg id="page-%d" x="0" y="%s" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
			i, num(y), w, h, w, h)
		buf.Write(body)
		buf.WriteString("</svg>\n")
		y += sz.HeightMm + contactGapMm
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, widthMm, heightMm float64) {
	w, h := num(widthMm), num(heightMm)
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		w, h, w, h)
}
