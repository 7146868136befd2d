// Package pkg provides the libraries behind img2pdf, which arranges images
// in a grid on printable pages.
//
// # Overview
//
// img2pdf places images in rows x cols equally sized cells, several per
// page, and hands the placed pages to a document sink. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [layout] (grid geometry and pagination), [transform]
//     (image order) and [sink] (document writers)
//  2. Plumbing: [source] (finding and decoding images), [render] (SVG to PDF
//     conversion), [cache] and [config]
//  3. Orchestration: [pipeline] (load → layout → render)
//
// # Architecture
//
// The data flow through img2pdf:
//
//	files and directories
//	         ↓
//	    [source] package (expand, decode, auto-orient)
//	         ↓
//	    [transform] package (identity, reverse or seeded shuffle)
//	         ↓
//	    [layout] package (cell size, fit, pages, separator lines)
//	         ↓
//	    [sink] package (PDF, SVG, PNG preview, JSON)
//
// # Quick Start
//
// Lay out a directory of scans, four per page, and write a PDF:
//
//	import (
//	    "context"
//	    "github.com/Roman-/img2pdf/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Inputs:    []string{"scans/"},
//	    Rows:      pipeline.Int(2),
//	    Cols:      pipeline.Int(2),
//	    Separator: "dashed",
//	})
//	os.WriteFile("scans.pdf", result.Artifacts["pdf"], 0o644)
//
// The engine can also be driven directly with decoded images:
//
//	plan, err := layout.Assemble(images, layout.GridSpec{Rows: 3, Cols: 2},
//	    layout.Portrait, layout.Separator{Style: layout.SeparatorNone}, layout.DefaultConstants())
//	svg, err := sink.Emit(plan, sink.NewSVG())
//
// # Main Packages
//
// [layout] - The layout engine. Pure and deterministic: it computes the cell
// size, fits each image into its cell without enlarging it, paginates in
// row-major order and generates separator lines. It never touches pixels.
//
// [sink] - The document sink protocol (BeginPage, PlaceImage, DrawLine,
// EndPage, Finalize) with SVG, PDF, PNG and recording implementations.
// [sink.Emit] walks a plan through any sink.
//
// [source] - Input expansion and concurrent image decoding with EXIF
// orientation applied.
//
// [transform] - Image ordering, including a seeded shuffle.
//
// [render] - Multi-page PDF conversion via rsvg-convert.
//
// [pipeline] - The load → layout → render pipeline used by every CLI
// command, with caching keyed on the input files and options.
//
// [cache] - File, Redis and null cache backends.
//
// [config] - The TOML config file.
//
// [errors] - Structured error codes.
//
// [observability] - Hooks for logging and metrics around pipeline stages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// Tests that need rsvg-convert skip when it is not installed.
//
// [layout]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/layout
// [sink]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/sink
// [sink.Emit]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/sink#Emit
// [source]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/source
// [transform]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/transform
// [render]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/cache
// [config]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/config
// [errors]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/errors
// [observability]: https://pkg.go.dev/github.com/Roman-/img2pdf/pkg/observability
package pkg
