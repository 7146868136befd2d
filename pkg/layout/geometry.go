package layout

import (
	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

// ResolveGeometry computes the size of one cell of grid on page.
//
// The usable area is the page minus marginMm on every side; gapMm separates
// adjacent cells. It fails with [apperr.ErrCodeInvalidGrid] when the grid has
// fewer than one row or column, or when the resulting cell would have a
// non-positive width or height. No clamping is applied.
func ResolveGeometry(page PageSize, grid GridSpec, marginMm, gapMm float64) (CellSize, error) {
	if grid.Rows < 1 || grid.Cols < 1 {
		return CellSize{}, apperr.New(apperr.ErrCodeInvalidGrid,
			"grid must have at least one row and column, got %dx%d", grid.Rows, grid.Cols)
	}

	cell := CellSize{
		WidthMm:  cellDim(page.WidthMm, grid.Cols, marginMm, gapMm),
		HeightMm: cellDim(page.HeightMm, grid.Rows, marginMm, gapMm),
	}
	if !(cell.WidthMm > 0) || !(cell.HeightMm > 0) {
		return CellSize{}, apperr.New(apperr.ErrCodeInvalidGrid,
			"grid %dx%d does not fit a %gx%gmm page (cell %.2fx%.2fmm)",
			grid.Rows, grid.Cols, page.WidthMm, page.HeightMm, cell.WidthMm, cell.HeightMm)
	}
	return cell, nil
}

func cellDim(pageDim float64, count int, marginMm, gapMm float64) float64 {
	usable := pageDim - 2*marginMm
	return (usable - float64(count-1)*gapMm) / float64(count)
}

// CellOrigin returns the top-left corner of cell (row, col).
func CellOrigin(cell CellSize, row, col int, marginMm, gapMm float64) (x, y float64) {
	x = marginMm + float64(col)*(cell.WidthMm+gapMm)
	y = marginMm + float64(row)*(cell.HeightMm+gapMm)
	return x, y
}

// IsSmall reports whether either cell dimension is below thresholdMm.
func (c CellSize) IsSmall(thresholdMm float64) bool {
	return c.WidthMm < thresholdMm || c.HeightMm < thresholdMm
}
