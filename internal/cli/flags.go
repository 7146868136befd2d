package cli

import (
	"github.com/spf13/cobra"

	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/pipeline"
	"github.com/Roman-/img2pdf/pkg/transform"
)

// layoutFlags are the flags shared by every command that computes a layout.
// Values only override the config file when the flag is set explicitly.
type layoutFlags struct {
	rows         int
	cols         int
	orientation  string
	margin       float64
	gap          float64
	dpi          float64
	separator    string
	color        string
	thickness    float64
	order        string
	seed         uint64
	workers      int
	noAutoOrient bool
	noCache      bool
	refresh      bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.rows, "rows", "r", pipeline.DefaultRows, "rows of images per page")
	fl.IntVarP(&f.cols, "cols", "c", pipeline.DefaultCols, "columns of images per page")
	fl.StringVar(&f.orientation, "orientation", string(layout.OrientationPortrait), "page orientation: portrait, landscape")
	fl.Float64Var(&f.margin, "margin", layout.DefaultMarginMm, "page margin in mm")
	fl.Float64Var(&f.gap, "gap", layout.DefaultGapMm, "space between cells in mm")
	fl.Float64Var(&f.dpi, "dpi", layout.DefaultDPI, "assumed resolution of the source images")
	fl.StringVarP(&f.separator, "separator", "s", string(layout.SeparatorNone), "separator lines: none, solid, dashed")
	fl.StringVar(&f.color, "color", pipeline.DefaultColor, "separator color (#rrggbb)")
	fl.Float64Var(&f.thickness, "thickness", pipeline.DefaultThicknessMm, "separator thickness in mm")
	fl.StringVar(&f.order, "order", string(transform.OrderIdentity), "image order: identity, reverse, shuffle")
	fl.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "shuffle seed")
	fl.IntVarP(&f.workers, "workers", "j", 0, "parallel image decoders (default: number of CPUs)")
	fl.BoolVar(&f.noAutoOrient, "no-auto-orient", false, "ignore EXIF orientation")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// apply copies every explicitly set flag into opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	if set("rows") {
		opts.Rows = pipeline.Int(f.rows)
	}
	if set("cols") {
		opts.Cols = pipeline.Int(f.cols)
	}
	if set("orientation") {
		opts.Orientation = f.orientation
	}
	if set("margin") {
		opts.MarginMm = pipeline.Float(f.margin)
	}
	if set("gap") {
		opts.GapMm = pipeline.Float(f.gap)
	}
	if set("dpi") {
		opts.DPI = pipeline.Float(f.dpi)
	}
	if set("separator") {
		opts.Separator = f.separator
	}
	if set("color") {
		opts.Color = f.color
	}
	if set("thickness") {
		opts.ThicknessMm = pipeline.Float(f.thickness)
	}
	if set("order") {
		opts.Order = f.order
	}
	if set("seed") {
		opts.Seed = pipeline.Uint64(f.seed)
	}
	if set("workers") {
		opts.Workers = f.workers
	}
	if set("no-auto-orient") {
		opts.NoAutoOrient = f.noAutoOrient
	}
	opts.Refresh = f.refresh
}

// options builds pipeline options for inputs from the config file and flags.
func (c *CLI) options(cmd *cobra.Command, inputs []string, f *layoutFlags) pipeline.Options {
	opts := c.cfg.Options(inputs)
	f.apply(cmd, &opts)
	opts.Logger = c.Logger
	return opts
}
