// Package pipeline provides the load → layout → render pipeline for img2pdf.
//
// Every CLI command goes through this package, so defaults, validation and
// caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: expand input paths and decode the images
//  2. Layout: order the images and assemble a [layout.Plan]
//  3. Render: emit the plan to one sink per requested format (PDF, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Inputs:  []string{"scans/"},
//	    Rows:    pipeline.Int(3),
//	    Cols:    pipeline.Int(2),
//	    Formats: []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
//
// Run individual stages:
//
//	images, paths, err := runner.Load(ctx, opts)
//	plan, err := runner.ComputeLayout(ctx, images, opts)
//	artifacts, err := runner.Render(ctx, plan, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Roman-/img2pdf/pkg/cache"
	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/sink"
	"github.com/Roman-/img2pdf/pkg/transform"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and the config file
// =============================================================================

const (
	// DefaultRows and DefaultCols give four images per page.
	DefaultRows = 2
	DefaultCols = 2

	// MaxGridDim bounds rows and columns. At 20 an A4 cell is already 8mm.
	MaxGridDim = 20

	// DefaultThicknessMm is the separator line width.
	DefaultThicknessMm = 0.3

	// DefaultColor is the separator colour.
	DefaultColor = "#000000"

	// DefaultSeed is the default shuffle seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultBackground is the page colour of rendered documents.
	DefaultBackground = "#ffffff"

	// BackgroundNone leaves pages transparent.
	BackgroundNone = "none"
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
//
// Zero values take defaults. The numeric layout settings are pointers
// because zero is a value to validate there, not "unset"; leave them nil for
// the default.
type Options struct {
	// Load options
	Inputs       []string `json:"inputs"`
	Workers      int      `json:"workers,omitempty"`
	NoAutoOrient bool     `json:"no_auto_orient,omitempty"`

	// Layout options
	Rows        *int     `json:"rows,omitempty"`
	Cols        *int     `json:"cols,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	MarginMm    *float64 `json:"margin_mm,omitempty"`
	GapMm       *float64 `json:"gap_mm,omitempty"`
	DPI         *float64 `json:"dpi,omitempty"`
	Separator   string   `json:"separator,omitempty"`
	Color       string   `json:"color,omitempty"`
	ThicknessMm *float64 `json:"thickness_mm,omitempty"`
	Order       string   `json:"order,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Page        int      `json:"page,omitempty"`        // PNG preview page (0-based)
	PreviewDPI  float64  `json:"preview_dpi,omitempty"` // PNG preview resolution
	MaxDPI      float64  `json:"max_dpi,omitempty"`     // PDF payload cap
	JPEGQuality int      `json:"jpeg_quality,omitempty"`
	Background  string   `json:"background,omitempty"` // page colour or "none"
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Float returns a pointer to v, for the optional float fields of [Options].
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for Rows and Cols.
func Int(v int) *int { return &v }

// Uint64 returns a pointer to v, for Seed.
func Uint64(v uint64) *uint64 { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Paths are the expanded input files, in input order.
	Paths []string

	// Plan is the computed layout. After a full cache hit its images carry
	// no payloads.
	Plan layout.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings are non-fatal findings: skipped images, tiny cells.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount   int
	PageCount    int
	SkippedCount int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGrid checks rows and columns against 1..MaxGridDim.
func ValidateGrid(rows, cols int) error {
	if rows < 1 || rows > MaxGridDim || cols < 1 || cols > MaxGridDim {
		return apperr.New(apperr.ErrCodeInvalidGrid, "grid %dx%d out of range (rows and cols must be 1-%d)", rows, cols, MaxGridDim)
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rgb" into an RGB colour.
func ParseColor(s string) (layout.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return layout.RGB{}, apperr.New(apperr.ErrCodeInvalidInput, "invalid color: %q (want #rrggbb)", s)
	}
	r, g, b := c.RGB255()
	return layout.RGB{R: r, G: g, B: b}, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if len(o.Inputs) == 0 {
		return apperr.New(apperr.ErrCodeEmptyInput, "no input images given")
	}
	for _, in := range o.Inputs {
		if in == "" {
			return apperr.New(apperr.ErrCodeInvalidPath, "empty input path")
		}
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Rows == nil {
		o.Rows = Int(DefaultRows)
	}
	if o.Cols == nil {
		o.Cols = Int(DefaultCols)
	}
	if o.Orientation == "" {
		o.Orientation = string(layout.OrientationPortrait)
	}
	if o.MarginMm == nil {
		o.MarginMm = Float(layout.DefaultMarginMm)
	}
	if o.GapMm == nil {
		o.GapMm = Float(layout.DefaultGapMm)
	}
	if o.DPI == nil {
		o.DPI = Float(layout.DefaultDPI)
	}
	if o.Separator == "" {
		o.Separator = string(layout.SeparatorNone)
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.ThicknessMm == nil {
		o.ThicknessMm = Float(DefaultThicknessMm)
	}
	if o.Order == "" {
		o.Order = string(transform.OrderIdentity)
	}
	if o.Seed == nil {
		o.Seed = Uint64(DefaultSeed)
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateGrid(*o.Rows, *o.Cols); err != nil {
		return err
	}
	if _, err := layout.ParseOrientation(o.Orientation); err != nil {
		return err
	}
	if err := apperr.ValidateNonNegative("margin", *o.MarginMm); err != nil {
		return err
	}
	if err := apperr.ValidateNonNegative("gap", *o.GapMm); err != nil {
		return err
	}
	if err := apperr.ValidatePositive("dpi", *o.DPI); err != nil {
		return err
	}
	if _, err := layout.ParseSeparatorStyle(o.Separator); err != nil {
		return err
	}
	if _, err := ParseColor(o.Color); err != nil {
		return err
	}
	if err := apperr.ValidatePositive("thickness", *o.ThicknessMm); err != nil {
		return err
	}
	if _, err := transform.ParseOrder(o.Order); err != nil {
		return err
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.PreviewDPI == 0 {
		o.PreviewDPI = sink.DefaultPreviewDPI
	}
	if o.MaxDPI == 0 {
		o.MaxDPI = sink.DefaultPDFMaxDPI
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = sink.DefaultJPEGQuality
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := apperr.ValidateRange("page", o.Page, 0, math.MaxInt32); err != nil {
		return err
	}
	if err := apperr.ValidatePositive("preview dpi", o.PreviewDPI); err != nil {
		return err
	}
	if err := apperr.ValidatePositive("max dpi", o.MaxDPI); err != nil {
		return err
	}
	if o.Background != BackgroundNone {
		if _, err := ParseColor(o.Background); err != nil {
			return apperr.New(apperr.ErrCodeInvalidInput, "invalid background: %q (want #rrggbb or none)", o.Background)
		}
	}
	return apperr.ValidateRange("jpeg quality", o.JPEGQuality, 1, 100)
}

// PageFill returns the page colour as "#rrggbb", or "" for transparent pages.
func (o *Options) PageFill() string {
	switch o.Background {
	case BackgroundNone:
		return ""
	case "":
		return DefaultBackground
	}
	c, _ := ParseColor(o.Background)
	return c.Hex()
}

// Grid returns the rows and columns. Call after validation.
func (o *Options) Grid() layout.GridSpec {
	return layout.GridSpec{Rows: *o.Rows, Cols: *o.Cols}
}

// ShuffleSeed returns the seed for the shuffle order. Call after validation.
func (o *Options) ShuffleSeed() uint64 {
	return *o.Seed
}

// PageSize returns the page preset for the orientation.
func (o *Options) PageSize() layout.PageSize {
	orient, _ := layout.ParseOrientation(o.Orientation)
	return layout.PageSizeFor(orient)
}

// SeparatorSpec returns the separator configuration.
func (o *Options) SeparatorSpec() layout.Separator {
	style, _ := layout.ParseSeparatorStyle(o.Separator)
	color, _ := ParseColor(o.Color)
	return layout.Separator{Style: style, Color: color, ThicknessMm: *o.ThicknessMm}
}

// Constants returns the geometry constants.
func (o *Options) Constants() layout.Constants {
	c := layout.DefaultConstants()
	if o.MarginMm != nil {
		c.MarginMm = *o.MarginMm
	}
	if o.GapMm != nil {
		c.GapMm = *o.GapMm
	}
	if o.DPI != nil && *o.DPI > 0 {
		c.PxPerMm = layout.PxPerMmForDPI(*o.DPI)
	}
	return c
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.Constants()
	return cache.LayoutKeyOpts{
		Rows:        *o.Rows,
		Cols:        *o.Cols,
		Orientation: o.Orientation,
		MarginMm:    c.MarginMm,
		GapMm:       c.GapMm,
		DPI:         *o.DPI,
		Separator:   o.Separator,
		Color:       o.SeparatorSpec().Color.Hex(),
		ThicknessMm: *o.ThicknessMm,
		Order:       o.Order,
		Seed:        *o.Seed,
		AutoOrient:  !o.NoAutoOrient,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPDF:
		k.MaxDPI = o.MaxDPI
		k.JPEGQuality = o.JPEGQuality
		k.Background = o.PageFill()
	case FormatSVG:
		k.JPEGQuality = o.JPEGQuality
		k.Background = o.PageFill()
	case FormatPNG:
		k.Page = o.Page
		k.PreviewDPI = o.PreviewDPI
		k.Background = o.PageFill()
	}
	return k
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
