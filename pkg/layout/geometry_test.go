package layout

import (
	"math"
	"testing"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tol }

func TestResolveGeometry(t *testing.T) {
	tests := []struct {
		name   string
		page   PageSize
		grid   GridSpec
		margin float64
		gap    float64
		wantW  float64
		wantH  float64
	}{
		{"single cell portrait", Portrait, GridSpec{1, 1}, 6, 2, 198, 285},
		{"2x2 portrait", Portrait, GridSpec{2, 2}, 6, 2, 98, 141.5},
		{"2x3 landscape", Landscape, GridSpec{2, 3}, 6, 2, (285.0 - 4) / 3, (198.0 - 2) / 2},
		{"no gap", Portrait, GridSpec{3, 2}, 6, 0, 99, 95},
		{"no margin", Portrait, GridSpec{1, 2}, 0, 0, 105, 297},
		{"20x20 portrait", Portrait, GridSpec{20, 20}, 6, 2, 8.0, 12.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, err := ResolveGeometry(tt.page, tt.grid, tt.margin, tt.gap)
			if err != nil {
				t.Fatalf("ResolveGeometry() error = %v", err)
			}
			if !approx(cell.WidthMm, tt.wantW) {
				t.Errorf("WidthMm = %v, want %v", cell.WidthMm, tt.wantW)
			}
			if !approx(cell.HeightMm, tt.wantH) {
				t.Errorf("HeightMm = %v, want %v", cell.HeightMm, tt.wantH)
			}
		})
	}
}

func TestResolveGeometryInvalid(t *testing.T) {
	tests := []struct {
		name string
		grid GridSpec
		page PageSize
	}{
		{"zero rows", GridSpec{0, 2}, Portrait},
		{"zero cols", GridSpec{2, 0}, Portrait},
		{"negative", GridSpec{-1, -1}, Portrait},
		{"cells collapse to zero", GridSpec{1, 100}, Portrait},
		{"cells negative", GridSpec{200, 1}, Landscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveGeometry(tt.page, tt.grid, 6, 2)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidGrid) {
				t.Errorf("code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidGrid)
			}
		})
	}
}

func TestResolveGeometryFitsUsableArea(t *testing.T) {
	const margin, gap = 6.0, 2.0
	for _, page := range []PageSize{Portrait, Landscape} {
		for rows := 1; rows <= 20; rows++ {
			for cols := 1; cols <= 20; cols++ {
				cell, err := ResolveGeometry(page, GridSpec{rows, cols}, margin, gap)
				if err != nil {
					t.Fatalf("%v %dx%d: %v", page, rows, cols, err)
				}
				usableW := page.WidthMm - 2*margin
				usableH := page.HeightMm - 2*margin
				if w := cell.WidthMm*float64(cols) + float64(cols-1)*gap; w > usableW+tol {
					t.Errorf("%dx%d: grid width %v exceeds usable %v", rows, cols, w, usableW)
				}
				if h := cell.HeightMm*float64(rows) + float64(rows-1)*gap; h > usableH+tol {
					t.Errorf("%dx%d: grid height %v exceeds usable %v", rows, cols, h, usableH)
				}
			}
		}
	}
}

func TestResolveGeometryIdempotent(t *testing.T) {
	a, errA := ResolveGeometry(Landscape, GridSpec{3, 4}, 6, 2)
	b, errB := ResolveGeometry(Landscape, GridSpec{3, 4}, 6, 2)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if a != b {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
}

func TestSmallCellThreshold(t *testing.T) {
	cell, err := ResolveGeometry(Portrait, GridSpec{20, 20}, 6, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cell.WidthMm != 8.0 {
		t.Errorf("WidthMm = %v, want exactly 8", cell.WidthMm)
	}
	if !cell.IsSmall(SmallCellThresholdMm) {
		t.Error("8mm cell should be flagged as small")
	}

	big, _ := ResolveGeometry(Portrait, GridSpec{2, 2}, 6, 2)
	if big.IsSmall(SmallCellThresholdMm) {
		t.Error("98mm cell should not be flagged as small")
	}
}

func TestCellOrigin(t *testing.T) {
	cell := CellSize{WidthMm: 98, HeightMm: 141.5}
	tests := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 6, 6},
		{0, 1, 106, 6},
		{1, 0, 6, 149.5},
		{1, 1, 106, 149.5},
	}
	for _, tt := range tests {
		x, y := CellOrigin(cell, tt.row, tt.col, 6, 2)
		if !approx(x, tt.x) || !approx(y, tt.y) {
			t.Errorf("CellOrigin(%d,%d) = (%v,%v), want (%v,%v)", tt.row, tt.col, x, y, tt.x, tt.y)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"portrait", OrientationPortrait, false},
		{"Landscape", OrientationLandscape, false},
		{" portrait ", OrientationPortrait, false},
		{"square", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if PageSizeFor(OrientationLandscape) != Landscape {
		t.Error("PageSizeFor(landscape) should be the landscape preset")
	}
	if PageSizeFor("") != Portrait {
		t.Error("PageSizeFor(\"\") should fall back to portrait")
	}
}
