package sink

import (
	"bytes"
	"encoding/base64"
	"image"
	"math"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/Roman-/img2pdf/pkg/layout"
)

const (
	// DefaultJPEGQuality is used when re-encoding JPEG sources.
	DefaultJPEGQuality = 90

	// DefaultPDFMaxDPI caps the resolution of images embedded in PDFs.
	DefaultPDFMaxDPI = 300.0

	mmPerInch = 25.4
)

// Option configures the SVG and PDF sinks.
type Option func(*config)

type config struct {
	jpegQuality int
	maxDPI      float64
	background  string
}

// WithJPEGQuality sets the quality used for JPEG payloads (1-100).
func WithJPEGQuality(q int) Option { return func(c *config) { c.jpegQuality = q } }

// WithMaxDPI downscales payloads whose resolution at their placed size would
// exceed dpi. Zero disables downscaling.
func WithMaxDPI(dpi float64) Option { return func(c *config) { c.maxDPI = dpi } }

// WithBackground sets the page fill colour as "#rrggbb" (default white).
// Empty means transparent.
func WithBackground(hex string) Option { return func(c *config) { c.background = hex } }

func newConfig(opts []Option) config {
	c := config{jpegQuality: DefaultJPEGQuality, background: "#ffffff"}
	for _, opt := range opts {
		opt(&c)
	}
	c.jpegQuality = min(max(c.jpegQuality, 1), 100)
	return c
}

// downscale shrinks img so that it has at most dpi pixels per inch when
// printed at widthMm×heightMm. Smaller images are returned unchanged.
func downscale(img image.Image, widthMm, heightMm, dpi float64) image.Image {
	if dpi <= 0 {
		return img
	}
	maxW := pixelsAt(widthMm, dpi)
	maxH := pixelsAt(heightMm, dpi)
	b := img.Bounds()
	if maxW < 1 || maxH < 1 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// pixelsAt returns the pixel count covering mm at dpi, ignoring float noise
// just above a whole pixel.
func pixelsAt(mm, dpi float64) int {
	return int(math.Ceil(mm*dpi/mmPerInch - 1e-6))
}

// dataURI encodes the payload of p as a base64 data URI. JPEG sources stay
// JPEG; everything else becomes PNG.
func dataURI(p layout.PlacedImage, c config) (string, error) {
	if p.Source == nil || p.Source.Payload == nil {
		return "", errNoPayload
	}
	img := downscale(p.Source.Payload, p.WidthMm, p.HeightMm, c.maxDPI)

	var buf bytes.Buffer
	mime := "image/png"
	var err error
	if p.Source.Format == "jpeg" {
		mime = "image/jpeg"
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.jpegQuality))
	} else {
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// num formats a millimetre value with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
