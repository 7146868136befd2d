package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting a page plan.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf     layoutFlags
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [images or directories...]",
		Short: "Compute the page plan without rendering",
		Long: `Compute the page plan without rendering.

Prints where every image lands: page, cell and placed size. With --json
(or --output) the plan is written as JSON, the same document as
'render -f json'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, args, &lf)
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, asJSON, output, lf.noCache)
		},
	}

	lf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON plan to a file")
	registerCompletions(cmd)

	return cmd
}

// runLayout computes the plan and prints it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, asJSON bool, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s grid...", gridLabel(opts.Grid().Rows, opts.Grid().Cols)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data := result.Artifacts[pipeline.FormatJSON]
	switch {
	case output != "":
		paths, err := outputPaths(output, opts.Formats)
		if err != nil {
			return err
		}
		if err := writeOutput(paths[pipeline.FormatJSON], data); err != nil {
			return err
		}
		printSuccess("Layout complete")
		printFile(paths[pipeline.FormatJSON])
		printStats(result.Stats.ImageCount, result.Stats.PageCount, result.CacheInfo.LayoutHit)
		return nil
	case asJSON:
		return writeOutput(stdoutPath, append(data, '\n'))
	}

	plan := result.Plan
	printSuccess("Layout complete")
	printKeyValue("Page", fmt.Sprintf("%s x %s", formatMm(plan.PageSize.WidthMm), formatMm(plan.PageSize.HeightMm)))
	printKeyValue("Grid", gridLabel(plan.Grid.Rows, plan.Grid.Cols))
	printKeyValue("Cell", fmt.Sprintf("%s x %s", formatMm(plan.Cell.WidthMm), formatMm(plan.Cell.HeightMm)))
	printNewline()
	fmt.Fprintln(uiOut, planTable(plan))
	printStats(result.Stats.ImageCount, result.Stats.PageCount, result.CacheInfo.LayoutHit)
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Render", "img2pdf render "+strings.Join(opts.Inputs, " "))

	return nil
}

// planTable renders one row per placed image.
func planTable(plan layout.Plan) string {
	var rows [][]string
	for _, pg := range plan.Pages {
		for _, img := range pg.Images {
			rows = append(rows, []string{
				fmt.Sprintf("%d", pg.Index+1),
				fmt.Sprintf("%d,%d", img.Row+1, img.Col+1),
				img.Name,
				fmt.Sprintf("%s x %s", formatMm(img.WidthMm), formatMm(img.HeightMm)),
				fmt.Sprintf("%s, %s", formatMm(img.XMm), formatMm(img.YMm)),
			})
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Cell", "Image", "Size", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			case col == 2:
				return cellStyle.Foreground(colorWhite)
			default:
				return cellStyle.Foreground(colorGray)
			}
		}).
		Render()
}
