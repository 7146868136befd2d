package layout

import (
	"fmt"
	"image"
	"strings"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

// PageSize is a page's physical size in millimetres.
type PageSize struct {
	WidthMm  float64 `json:"width_mm"`
	HeightMm float64 `json:"height_mm"`
}

// Page size presets.
var (
	Portrait  = PageSize{WidthMm: 210, HeightMm: 297}
	Landscape = PageSize{WidthMm: 297, HeightMm: 210}
)

// Orientation selects one of the page size presets.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ParseOrientation parses "portrait" or "landscape" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case OrientationPortrait, OrientationLandscape:
		return o, nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidInput, "invalid orientation: %q (must be 'portrait' or 'landscape')", s)
	}
}

// PageSizeFor returns the preset for o. Unknown values fall back to portrait.
func PageSizeFor(o Orientation) PageSize {
	if o == OrientationLandscape {
		return Landscape
	}
	return Portrait
}

// GridSpec is the number of rows and columns of cells on every page.
type GridSpec struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// ImagesPerPage returns the page capacity.
func (g GridSpec) ImagesPerPage() int { return g.Rows * g.Cols }

// CellSize is the resolved size of one grid cell.
type CellSize struct {
	WidthMm  float64 `json:"width_mm"`
	HeightMm float64 `json:"height_mm"`
}

// SourceImage is a decoded image handed to the engine.
// The engine only reads the pixel dimensions; Payload is carried through to
// the sink untouched.
type SourceImage struct {
	Name     string
	WidthPx  int
	HeightPx int
	Format   string      // decoder name, e.g. "jpeg" or "png"
	Payload  image.Image // opaque to the engine
}

// Valid reports whether the image has positive pixel dimensions.
func (s SourceImage) Valid() bool { return s.WidthPx > 0 && s.HeightPx > 0 }

// RGB is an 8-bit colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black is the default separator colour.
var Black = RGB{}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// SeparatorStyle selects how divider lines between cells are drawn.
type SeparatorStyle string

const (
	SeparatorNone   SeparatorStyle = "none"
	SeparatorSolid  SeparatorStyle = "solid"
	SeparatorDashed SeparatorStyle = "dashed"
)

// ParseSeparatorStyle parses "none", "solid" or "dashed" (case-insensitive).
// The empty string means none.
func ParseSeparatorStyle(s string) (SeparatorStyle, error) {
	switch st := SeparatorStyle(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return SeparatorNone, nil
	case SeparatorNone, SeparatorSolid, SeparatorDashed:
		return st, nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidInput, "invalid separator style: %q (must be 'none', 'solid' or 'dashed')", s)
	}
}

// Separator is the separator configuration for a run.
type Separator struct {
	Style       SeparatorStyle `json:"style"`
	Color       RGB            `json:"color"`
	ThicknessMm float64        `json:"thickness_mm"`
}

// DashPattern is an on/off dash length pair.
type DashPattern struct {
	OnMm  float64 `json:"on_mm"`
	OffMm float64 `json:"off_mm"`
}

// Constants are the fixed geometry parameters of a run.
type Constants struct {
	MarginMm float64     `json:"margin_mm"`
	GapMm    float64     `json:"gap_mm"`
	PxPerMm  float64     `json:"px_per_mm"`
	Dash     DashPattern `json:"dash"`
}

const (
	// DefaultDPI is the assumed resolution of source bitmaps.
	DefaultDPI = 96.0

	// DefaultMarginMm is the page margin on every side.
	DefaultMarginMm = 6.0

	// DefaultGapMm is the space between adjacent cells.
	DefaultGapMm = 2.0

	// SmallCellThresholdMm is the cell size below which callers should warn.
	SmallCellThresholdMm = 10.0

	mmPerInch = 25.4
)

// DefaultDash is the dash pattern attached to dashed separators.
var DefaultDash = DashPattern{OnMm: 2, OffMm: 2}

// PxPerMmForDPI converts a resolution in dots per inch to pixels per millimetre.
func PxPerMmForDPI(dpi float64) float64 { return dpi / mmPerInch }

// DefaultConstants returns the default margin, gap, resolution and dash pattern.
func DefaultConstants() Constants {
	return Constants{
		MarginMm: DefaultMarginMm,
		GapMm:    DefaultGapMm,
		PxPerMm:  PxPerMmForDPI(DefaultDPI),
		Dash:     DefaultDash,
	}
}
