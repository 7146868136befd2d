// Package source finds and decodes input images.
//
// [Expand] turns command-line arguments into an ordered file list;
// directories contribute their image files sorted by name. [Load] decodes
// the files concurrently into [layout.SourceImage] values, preserving the
// input order. EXIF orientation is applied during decoding, so the reported
// dimensions are those of the upright image.
//
// Supported formats: JPEG, PNG, GIF, BMP, TIFF and WebP.
package source
