package cache

import "time"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a layout plan computed from the given inputs.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered document of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout plan.
type LayoutKeyOpts struct {
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Orientation string  `json:"orientation"`
	MarginMm    float64 `json:"margin_mm"`
	GapMm       float64 `json:"gap_mm"`
	DPI         float64 `json:"dpi"`
	Separator   string  `json:"separator"`
	Color       string  `json:"color"`
	ThicknessMm float64 `json:"thickness_mm"`
	Order       string  `json:"order"`
	Seed        uint64  `json:"seed"`

	// AutoOrient changes the decoded dimensions of rotated photos.
	AutoOrient bool `json:"auto_orient"`
}

// ArtifactKeyOpts are the options that change a rendered document.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	MaxDPI      float64 `json:"max_dpi,omitempty"`
	JPEGQuality int     `json:"jpeg_quality,omitempty"`
	Page        int     `json:"page,omitempty"`
	PreviewDPI  float64 `json:"preview_dpi,omitempty"`
	Background  string  `json:"background,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)

// Default time-to-live values per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
