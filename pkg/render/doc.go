// Package render provides format conversion for rendered pages.
//
// # Overview
//
// Sinks in [sink] produce one SVG document per page. [ToPDF] turns a
// sequence of such pages into a single multi-page PDF using the external
// rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, pages...)
//
// rsvg-convert must be on PATH:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [Available] reports whether the tool can be found, so callers can fail
// early with a clear message before doing any work.
//
// [sink]: github.com/Roman-/img2pdf/pkg/sink
package render
