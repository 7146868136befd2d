package layout

// Fit is an image rectangle relative to the top-left corner of its cell.
type Fit struct {
	WidthMm   float64
	HeightMm  float64
	OffsetXMm float64
	OffsetYMm float64
	Scale     float64
}

// FitImage scales an image of widthPx×heightPx into a cell, preserving the
// aspect ratio, never enlarging it, and centring it.
//
// The cell is converted to pixels with pxPerMm and the scale is
// min(cellWpx/widthPx, cellHpx/heightPx, 1). Both pixel dimensions must be
// positive; callers filter out degenerate images before calling.
func FitImage(widthPx, heightPx int, cellWidthMm, cellHeightMm, pxPerMm float64) Fit {
	w, h := float64(widthPx), float64(heightPx)
	scale := min(cellWidthMm*pxPerMm/w, cellHeightMm*pxPerMm/h, 1.0)

	// Rounding in the px/mm round trip can overshoot the cell by an ulp.
	rw := min(w*scale/pxPerMm, cellWidthMm)
	rh := min(h*scale/pxPerMm, cellHeightMm)

	return Fit{
		WidthMm:   rw,
		HeightMm:  rh,
		OffsetXMm: max(0, (cellWidthMm-rw)/2),
		OffsetYMm: max(0, (cellHeightMm-rh)/2),
		Scale:     scale,
	}
}
