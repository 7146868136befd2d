package layout

import (
	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

// PlacedImage is an image positioned on a page.
type PlacedImage struct {
	PageIndex   int          `json:"page"`
	Row         int          `json:"row"`
	Col         int          `json:"col"`
	XMm         float64      `json:"x_mm"`
	YMm         float64      `json:"y_mm"`
	WidthMm     float64      `json:"width_mm"`
	HeightMm    float64      `json:"height_mm"`
	Name        string       `json:"name"`
	SourceIndex int          `json:"source_index"`
	Source      *SourceImage `json:"-"`
}

// Page is the content of one output page: images first, then lines.
type Page struct {
	Index  int             `json:"index"`
	Images []PlacedImage   `json:"images"`
	Lines  []SeparatorLine `json:"lines,omitempty"`
}

// Skipped records an image that was left out of its cell.
type Skipped struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Page   int    `json:"page"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Reason string `json:"reason"`
}

// Plan is the complete, page-ordered result of a layout pass.
type Plan struct {
	PageSize  PageSize  `json:"page_size"`
	Grid      GridSpec  `json:"grid"`
	Cell      CellSize  `json:"cell"`
	Constants Constants `json:"constants"`
	Pages     []Page    `json:"pages"`
	Skipped   []Skipped `json:"skipped,omitempty"`
}

// PageCount returns the number of pages in the plan.
func (p Plan) PageCount() int { return len(p.Pages) }

// ImageCount returns the number of placed images across all pages.
func (p Plan) ImageCount() int {
	n := 0
	for _, pg := range p.Pages {
		n += len(pg.Images)
	}
	return n
}

// Validate checks that the constants can drive a layout pass.
func (c Constants) Validate() error {
	if !(c.MarginMm >= 0) {
		return apperr.New(apperr.ErrCodeInvalidInput, "margin must not be negative, got %g", c.MarginMm)
	}
	if !(c.GapMm >= 0) {
		return apperr.New(apperr.ErrCodeInvalidInput, "gap must not be negative, got %g", c.GapMm)
	}
	if !(c.PxPerMm > 0) {
		return apperr.New(apperr.ErrCodeInvalidInput, "px/mm must be positive, got %g", c.PxPerMm)
	}
	if !(c.Dash.OnMm > 0) || !(c.Dash.OffMm > 0) {
		return apperr.New(apperr.ErrCodeInvalidInput, "dash pattern must be positive, got %g/%g", c.Dash.OnMm, c.Dash.OffMm)
	}
	return nil
}

// Assemble lays out images on pages of a rows×cols grid.
//
// Geometry is resolved once; a failure there aborts the call and no plan is
// returned. Images keep their input order and fill cells row-major. An image
// with non-positive pixel dimensions is not placed: its cell stays empty and
// it is reported in [Plan.Skipped]. Separator lines are identical on every
// page, including a partially filled last page.
//
// Zero images yield an empty plan and no error.
func Assemble(images []SourceImage, grid GridSpec, page PageSize, sep Separator, consts Constants) (Plan, error) {
	if err := consts.Validate(); err != nil {
		return Plan{}, err
	}
	cell, err := ResolveGeometry(page, grid, consts.MarginMm, consts.GapMm)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		PageSize:  page,
		Grid:      grid,
		Cell:      cell,
		Constants: consts,
	}

	perPage := grid.ImagesPerPage()
	lines := PlanLines(grid, cell, page, consts.MarginMm, consts.GapMm, sep, consts.Dash)
	plan.Pages = make([]Page, 0, PageCount(len(images), perPage))

	for p, chunk := range Paginate(images, perPage) {
		pg := Page{
			Index:  p,
			Images: make([]PlacedImage, 0, len(chunk)),
			Lines:  linesForPage(lines, p),
		}
		for i := range chunk {
			idx := p*perPage + i
			src := &images[idx]
			row, col := CellFor(i, grid.Cols)

			if !src.Valid() {
				plan.Skipped = append(plan.Skipped, Skipped{
					Index:  idx,
					Name:   src.Name,
					Page:   p,
					Row:    row,
					Col:    col,
					Reason: invalidReason(*src),
				})
				continue
			}

			fit := FitImage(src.WidthPx, src.HeightPx, cell.WidthMm, cell.HeightMm, consts.PxPerMm)
			x, y := CellOrigin(cell, row, col, consts.MarginMm, consts.GapMm)
			pg.Images = append(pg.Images, PlacedImage{
				PageIndex:   p,
				Row:         row,
				Col:         col,
				XMm:         x + fit.OffsetXMm,
				YMm:         y + fit.OffsetYMm,
				WidthMm:     fit.WidthMm,
				HeightMm:    fit.HeightMm,
				Name:        src.Name,
				SourceIndex: idx,
				Source:      src,
			})
		}
		plan.Pages = append(plan.Pages, pg)
	}
	return plan, nil
}

func linesForPage(lines []SeparatorLine, page int) []SeparatorLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]SeparatorLine, len(lines))
	for i, l := range lines {
		l.PageIndex = page
		if l.Dash != nil {
			d := *l.Dash
			l.Dash = &d
		}
		out[i] = l
	}
	return out
}

func invalidReason(s SourceImage) string {
	return apperr.New(apperr.ErrCodeInvalidImage,
		"non-positive dimensions %dx%d", s.WidthPx, s.HeightPx).Error()
}
