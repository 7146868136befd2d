package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Roman-/img2pdf/pkg/pipeline"
)

const defaultPreviewFile = "preview.png"

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
		page   int
		dpi    float64
	)

	cmd := &cobra.Command{
		Use:   "preview [images or directories...]",
		Short: "Browse the pages in the terminal or write one page as PNG",
		Long: `Browse the pages in the terminal or write one page as PNG.

On a terminal, preview opens an interactive page browser that shows which
image lands in which cell. With --output, or when stdout is not a terminal,
the selected page is rasterized to a PNG file instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args, &lf)
			if output != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
				if output == "" {
					output = defaultPreviewFile
				}
				opts.Formats = []string{pipeline.FormatPNG}
				opts.Page = page - 1
				if cmd.Flags().Changed("preview-dpi") {
					opts.PreviewDPI = dpi
				}
				return c.runRender(cmd.Context(), opts, output, lf.noCache)
			}
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runPreview(cmd.Context(), opts, page-1, lf.noCache)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the page as PNG to this file")
	cmd.Flags().IntVar(&page, "page", 1, "page to show first or rasterize")
	cmd.Flags().Float64Var(&dpi, "preview-dpi", 0, "png resolution (default 96)")
	registerCompletions(cmd)

	return cmd
}

// runPreview computes the plan and opens the page browser.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options, page int, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	m := NewPreviewModel(result.Plan)
	m.Page = min(max(page, 0), max(result.Plan.PageCount()-1, 0))
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
