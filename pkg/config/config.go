// Package config reads and writes the img2pdf TOML configuration file.
//
// The file holds defaults for every layout and render option; command-line
// flags override it. Unknown keys are rejected so typos do not pass silently.
//
//	[grid]
//	rows = 3
//	cols = 2
//
//	[separator]
//	style = "dashed"
//	color = "#808080"
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/pipeline"
	"github.com/Roman-/img2pdf/pkg/sink"
	"github.com/Roman-/img2pdf/pkg/transform"
)

const (
	appName  = "img2pdf"
	fileName = "config.toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the on-disk configuration.
type Config struct {
	Page      PageConfig      `toml:"page"`
	Grid      GridConfig      `toml:"grid"`
	Separator SeparatorConfig `toml:"separator"`
	Image     ImageConfig     `toml:"image"`
	Output    OutputConfig    `toml:"output"`
	Cache     CacheConfig     `toml:"cache"`
}

type PageConfig struct {
	Orientation string  `toml:"orientation"`
	MarginMm    float64 `toml:"margin_mm"`
	GapMm       float64 `toml:"gap_mm"`
}

type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

type SeparatorConfig struct {
	Style       string  `toml:"style"`
	Color       string  `toml:"color"`
	ThicknessMm float64 `toml:"thickness_mm"`
}

type ImageConfig struct {
	DPI        float64 `toml:"dpi"`
	Order      string  `toml:"order"`
	Seed       uint64  `toml:"seed"`
	AutoOrient bool    `toml:"auto_orient"`
	Workers    int     `toml:"workers"`
}

type OutputConfig struct {
	Formats     []string `toml:"formats"`
	MaxDPI      float64  `toml:"max_dpi"`
	JPEGQuality int      `toml:"jpeg_quality"`
	PreviewDPI  float64  `toml:"preview_dpi"`
	Background  string   `toml:"background"`
}

type CacheConfig struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Page: PageConfig{
			Orientation: string(layout.OrientationPortrait),
			MarginMm:    layout.DefaultMarginMm,
			GapMm:       layout.DefaultGapMm,
		},
		Grid: GridConfig{Rows: pipeline.DefaultRows, Cols: pipeline.DefaultCols},
		Separator: SeparatorConfig{
			Style:       string(layout.SeparatorNone),
			Color:       pipeline.DefaultColor,
			ThicknessMm: pipeline.DefaultThicknessMm,
		},
		Image: ImageConfig{
			DPI:        layout.DefaultDPI,
			Order:      string(transform.OrderIdentity),
			Seed:       pipeline.DefaultSeed,
			AutoOrient: true,
		},
		Output: OutputConfig{
			Formats:     []string{pipeline.FormatPDF},
			MaxDPI:      sink.DefaultPDFMaxDPI,
			JPEGQuality: sink.DefaultJPEGQuality,
			PreviewDPI:  sink.DefaultPreviewDPI,
			Background:  pipeline.DefaultBackground,
		},
		Cache: CacheConfig{Backend: CacheFile, Prefix: appName + ":"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/img2pdf/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperr.New(apperr.ErrCodeFileNotFound, "config %s not found", path)
		}
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperr.New(apperr.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath], or returns the defaults when
// it does not exist.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if apperr.Is(err, apperr.ErrCodeFileNotFound) {
		return Default(), "", nil
	}
	return cfg, path, err
}

// Validate checks every value the same way the pipeline does.
func (c Config) Validate() error {
	opts := c.Options([]string{"-"})
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return apperr.New(apperr.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "invalid cache backend: %q (must be 'file', 'redis' or 'none')", c.Cache.Backend)
	}
	return nil
}

// Options converts the configuration into pipeline options for inputs.
func (c Config) Options(inputs []string) pipeline.Options {
	return pipeline.Options{
		Inputs:       inputs,
		Workers:      c.Image.Workers,
		NoAutoOrient: !c.Image.AutoOrient,
		Rows:         pipeline.Int(c.Grid.Rows),
		Cols:         pipeline.Int(c.Grid.Cols),
		Orientation:  c.Page.Orientation,
		MarginMm:     pipeline.Float(c.Page.MarginMm),
		GapMm:        pipeline.Float(c.Page.GapMm),
		DPI:          pipeline.Float(c.Image.DPI),
		Separator:    c.Separator.Style,
		Color:        c.Separator.Color,
		ThicknessMm:  pipeline.Float(c.Separator.ThicknessMm),
		Order:        c.Image.Order,
		Seed:         pipeline.Uint64(c.Image.Seed),
		Formats:      append([]string(nil), c.Output.Formats...),
		MaxDPI:       c.Output.MaxDPI,
		JPEGQuality:  c.Output.JPEGQuality,
		PreviewDPI:   c.Output.PreviewDPI,
		Background:   c.Output.Background,
	}
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return apperr.New(apperr.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
