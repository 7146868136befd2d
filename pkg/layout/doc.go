// Package layout computes page-grid layouts for batches of raster images.
//
// # Overview
//
// The engine turns an ordered list of images, a rows×cols grid, a page size
// and a separator style into a [Plan]: a page-ordered list of absolute
// placement instructions (image rectangles and separator lines) that a
// document sink can draw without further computation.
//
// The pipeline has five stages, each usable on its own:
//
//  1. Geometry ([ResolveGeometry]): usable area and per-cell size.
//  2. Fit ([FitImage]): centred, aspect-preserving, never-upscaled rectangle.
//  3. Pagination ([Paginate], [CellFor]): split the list into pages, row-major.
//  4. Separators ([PlanLines]): interior divider lines, never the page border.
//  5. Assembly ([Assemble]): all of the above into one [Plan].
//
// # Units
//
// All lengths are millimetres. The origin is the top-left corner of the page
// and y grows downwards. Pixel sizes are converted using [Constants.PxPerMm],
// which defaults to 96 DPI because bitmaps carry no reliable physical size.
//
// # Purity
//
// Every function in this package is a deterministic function of its inputs.
// Nothing is cached between calls and inputs are never mutated; calling
// [Assemble] twice with the same arguments yields structurally equal plans.
//
// # Usage
//
//	plan, err := layout.Assemble(images,
//	    layout.GridSpec{Rows: 2, Cols: 2},
//	    layout.Portrait,
//	    layout.Separator{Style: layout.SeparatorDashed, Color: layout.Black, ThicknessMm: 0.3},
//	    layout.DefaultConstants(),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, p := range plan.Pages {
//	    // p.Images, p.Lines
//	}
package layout
