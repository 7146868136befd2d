package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/pipeline"
)

// stdoutPath makes --output write the single artifact to standard output.
const stdoutPath = "-"

// renderFlags holds the output flags of the render command.
type renderFlags struct {
	output      string // output file (single format) or base path (multiple)
	formats     string // comma-separated output formats
	page        int    // PNG page (1-based on the command line)
	previewDPI  float64
	maxDPI      float64
	jpegQuality int
	background  string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): pdf (default), svg, png, json (comma-separated)")
	fl.IntVar(&f.page, "page", 1, "page to rasterize for png output")
	fl.Float64Var(&f.previewDPI, "preview-dpi", 0, "png resolution (default 96)")
	fl.Float64Var(&f.maxDPI, "max-dpi", 0, "downscale embedded images above this resolution (default 300)")
	fl.IntVar(&f.jpegQuality, "jpeg-quality", 0, "quality for re-encoded JPEG images, 1-100 (default 90)")
	fl.StringVar(&f.background, "background", "", "page color (#rrggbb) or none for transparent pages (default #ffffff)")
}

// apply copies the explicitly set output flags into opts. Without --format,
// a known extension on --output selects the format.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	switch {
	case set("format"):
		opts.Formats = parseFormats(f.formats)
	case formatFromExt(f.output) != "":
		opts.Formats = []string{formatFromExt(f.output)}
	}
	if set("page") {
		opts.Page = f.page - 1
	}
	if set("preview-dpi") {
		opts.PreviewDPI = f.previewDPI
	}
	if set("max-dpi") {
		opts.MaxDPI = f.maxDPI
	}
	if set("jpeg-quality") {
		opts.JPEGQuality = f.jpegQuality
	}
	if set("background") {
		opts.Background = f.background
	}
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [images or directories...]",
		Short: "Lay out images on pages and write PDF, SVG, PNG or JSON",
		Long: `Lay out images on pages and write PDF, SVG, PNG or JSON.

Directories are expanded to the image files they contain, in name order.
Each page holds rows x cols equally sized cells; images are scaled to fit
their cell, keep their aspect ratio and are never enlarged.

Results are cached, keyed on the input files and every layout option, so
re-running an unchanged command is instant.`,
		Example: `  img2pdf render scans/ -o scans.pdf
  img2pdf render *.jpg -r 3 -c 2 --separator dashed -f pdf,svg
  img2pdf render photos/ --order shuffle --seed 7 -o sheet.png --page 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args, &lf)
			rf.apply(cmd, &opts)
			return c.runRender(cmd.Context(), opts, rf.output, lf.noCache)
		},
	}

	lf.register(cmd)
	rf.register(cmd)
	registerCompletions(cmd)
	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	paths, err := outputPaths(output, opts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(result.Stats.PageCount, "page")))

	if output == stdoutPath {
		return nil
	}
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.ImageCount, result.Stats.PageCount, result.CacheInfo.RenderHit)
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// formatFromExt returns the output format named by path's extension, or "".
func formatFromExt(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return ""
}

// outputPaths maps each format to the file it is written to.
//
// A single format is written to output as given (or output.<format> when
// output is empty). Several formats share output as a base path with the
// format extension appended.
func outputPaths(output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))

	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, apperr.New(apperr.ErrCodeInvalidPath, "writing to stdout needs exactly one format, got %d", len(formats))
		}
		paths[formats[0]] = stdoutPath
		return paths, nil
	}

	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		if err := apperr.ValidatePath(output); err != nil {
			return nil, err
		}
		paths[formats[0]] = output
		return paths, nil
	}

	base := output
	if base == "" {
		base = defaultOutputBase
	}
	if ext := filepath.Ext(base); formatFromExt(base) != "" {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		p := base + "." + f
		if err := apperr.ValidatePath(p); err != nil {
			return nil, err
		}
		paths[f] = p
	}
	return paths, nil
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == stdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
