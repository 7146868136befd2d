package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Roman-/img2pdf/pkg/layout"
)

// Preview styles
var (
	previewCellStyle  = lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Center)
	previewEmptyStyle = lipgloss.NewStyle().Foreground(colorDim).Align(lipgloss.Center)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	defaultPreviewWidth = 80
	minCellWidth        = 6
	emptyCell           = "·"
)

// =============================================================================
// PreviewModel - Interactive page browser
// =============================================================================

// PreviewModel is the bubbletea model that pages through a layout plan,
// drawing each page's grid with the image names in their cells.
type PreviewModel struct {
	Plan  layout.Plan
	Page  int
	Width int
}

// NewPreviewModel creates a preview model positioned on the first page.
func NewPreviewModel(plan layout.Plan) PreviewModel {
	return PreviewModel{Plan: plan, Width: defaultPreviewWidth}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := m.Plan.PageCount() - 1
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "pgup", "k", "up":
			if m.Page > 0 {
				m.Page--
			}
		case "right", "l", "pgdown", "j", "down", " ":
			if m.Page < last {
				m.Page++
			}
		case "home", "g":
			m.Page = 0
		case "end", "G":
			m.Page = max(last, 0)
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, minCellWidth*2)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	if m.Plan.PageCount() == 0 {
		b.WriteString(StyleTitle.Render("No pages"))
		b.WriteString("\n")
		return b.String()
	}

	pg := m.Plan.Pages[m.Page]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Page %d/%d", m.Page+1, m.Plan.PageCount())))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("%s grid · cell %s x %s",
		gridLabel(m.Plan.Grid.Rows, m.Plan.Grid.Cols),
		formatMm(m.Plan.Cell.WidthMm), formatMm(m.Plan.Cell.HeightMm))))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ page  g/G first/last  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.pageGrid(pg))
	b.WriteString("\n")

	var skipped []string
	for _, s := range m.Plan.Skipped {
		if s.Page == m.Page {
			skipped = append(skipped, fmt.Sprintf("%s (%s)", s.Name, s.Reason))
		}
	}
	if len(skipped) > 0 {
		b.WriteString(StyleWarning.Render("skipped: " + strings.Join(skipped, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// pageGrid draws the page's cells as a bordered table.
func (m PreviewModel) pageGrid(pg layout.Page) string {
	grid := m.Plan.Grid
	cellWidth := max((m.Width-grid.Cols-1)/max(grid.Cols, 1), minCellWidth)

	cells := make([][]string, grid.Rows)
	for r := range cells {
		cells[r] = make([]string, grid.Cols)
		for c := range cells[r] {
			cells[r][c] = emptyCell
		}
	}
	for _, img := range pg.Images {
		if img.Row < grid.Rows && img.Col < grid.Cols {
			cells[img.Row][img.Col] = truncate(img.Name, cellWidth)
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row >= 0 && row < len(cells) && cells[row][col] == emptyCell {
				return previewEmptyStyle.Width(cellWidth)
			}
			return previewCellStyle.Width(cellWidth)
		}).
		Render()
}

// truncate shortens s to at most width runes, marking the cut with "…".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
