// Package sink turns a layout plan into documents.
//
// A [Sink] receives drawing instructions one page at a time: BeginPage, then
// the page's images, then its separator lines, then EndPage. [Emit] drives a
// sink from a [layout.Plan] and returns the finished document.
//
// # Implementations
//
//   - [SVG]: one SVG document per page, in millimetre units
//   - [PDF]: the SVG pages converted to a multi-page PDF (requires librsvg)
//   - [PNG]: a raster preview of a single page, drawn with gg
//   - [Recorder]: records the instruction stream as JSON
//
// A sink is single use. After Finalize, or after any error, further calls
// fail.
package sink
