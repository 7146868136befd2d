package layout

// LineOrientation distinguishes vertical from horizontal separators.
type LineOrientation string

const (
	Vertical   LineOrientation = "vertical"
	Horizontal LineOrientation = "horizontal"
)

// SeparatorLine is one divider between adjacent rows or columns.
//
// For a vertical line PositionMm is the x coordinate and StartMm/EndMm the
// y extent; for a horizontal line it is the other way round.
type SeparatorLine struct {
	PageIndex   int             `json:"page"`
	Orientation LineOrientation `json:"orientation"`
	PositionMm  float64         `json:"position_mm"`
	StartMm     float64         `json:"start_mm"`
	EndMm       float64         `json:"end_mm"`
	Style       SeparatorStyle  `json:"style"`
	Color       RGB             `json:"color"`
	ThicknessMm float64         `json:"thickness_mm"`
	Dash        *DashPattern    `json:"dash,omitempty"` // nil for solid lines
}

// Endpoints returns the line's start and end points in page coordinates.
func (l SeparatorLine) Endpoints() (x1, y1, x2, y2 float64) {
	if l.Orientation == Vertical {
		return l.PositionMm, l.StartMm, l.PositionMm, l.EndMm
	}
	return l.StartMm, l.PositionMm, l.EndMm, l.PositionMm
}

// PlanLines computes the interior separator lines of one page.
//
// Only boundaries between cells get a line: columns 1..cols-1 and rows
// 1..rows-1. Lines sit in the middle of the inter-cell gap (on the cell
// boundary when the gap is zero) and span the usable extent of the other
// axis. Nothing is returned when sep.Style is none.
func PlanLines(grid GridSpec, cell CellSize, page PageSize, marginMm, gapMm float64, sep Separator, dash DashPattern) []SeparatorLine {
	if sep.Style == SeparatorNone || sep.Style == "" {
		return nil
	}
	n := max(grid.Cols-1, 0) + max(grid.Rows-1, 0)
	if n == 0 {
		return nil
	}

	proto := SeparatorLine{
		Style:       sep.Style,
		Color:       sep.Color,
		ThicknessMm: sep.ThicknessMm,
	}
	if sep.Style == SeparatorDashed {
		d := dash
		proto.Dash = &d
	}

	lines := make([]SeparatorLine, 0, n)
	for k := 1; k < grid.Cols; k++ {
		l := proto
		l.Orientation = Vertical
		l.PositionMm = dividerPos(k, cell.WidthMm, marginMm, gapMm)
		l.StartMm, l.EndMm = marginMm, page.HeightMm-marginMm
		lines = append(lines, l)
	}
	for k := 1; k < grid.Rows; k++ {
		l := proto
		l.Orientation = Horizontal
		l.PositionMm = dividerPos(k, cell.HeightMm, marginMm, gapMm)
		l.StartMm, l.EndMm = marginMm, page.WidthMm-marginMm
		lines = append(lines, l)
	}
	return lines
}

func dividerPos(k int, cellDim, marginMm, gapMm float64) float64 {
	return marginMm + float64(k)*cellDim + float64(k-1)*gapMm + gapMm/2
}
