package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives the human-readable status output of the commands.
var uiOut io.Writer = os.Stdout

// Palette
var (
	colorCyan   = lipgloss.Color("36")  // headings, page numbers
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // values, image names
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // borders, secondary text
)

var (
	// StyleTitle renders headings such as the preview page header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleWarning renders warnings and skipped images.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusIcons pairs each status line kind with its icon.
var statusIcons = map[string]string{
	"ok":   lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	"err":  lipgloss.NewStyle().Foreground(colorRed).Render("✗"),
	"warn": lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	"info": lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

func status(kind, msg string) {
	fmt.Fprintln(uiOut, statusIcons[kind]+" "+msg)
}

func printSuccess(format string, args ...any) { status("ok", fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { status("err", fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { status("info", fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status("warn", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleLabel.Render(key)+" "+styleValue.Render(value))
}

// printStats prints "N images · M pages · cached|fresh".
func printStats(imageCount, pageCount int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	parts := []string{
		StyleDim.Render(plural(imageCount, "image")),
		StyleDim.Render(plural(pageCount, "page")),
		origin,
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}

// plural formats a count with its noun, e.g. "1 page" or "3 pages".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// gridLabel formats a grid as "ROWSxCOLS".
func gridLabel(rows, cols int) string {
	return fmt.Sprintf("%dx%d", rows, cols)
}

// formatMm formats a length with one decimal, e.g. "98.5mm".
func formatMm(v float64) string {
	return fmt.Sprintf("%.1fmm", v)
}

// formatBytes formats a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
