package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
)

// Options configures [Load].
type Options struct {
	// Workers bounds concurrent decodes. Zero means GOMAXPROCS.
	Workers int

	// NoAutoOrient keeps the stored pixel orientation and ignores EXIF.
	NoAutoOrient bool

	// OnLoaded, if set, is called after each file is decoded. It may be
	// called from several goroutines at once.
	OnLoaded func(path string)
}

// Load decodes every path into a SourceImage, in input order.
//
// The first failure cancels the remaining work. A missing file yields
// FILE_NOT_FOUND; an unreadable or undecodable file yields INVALID_INPUT.
func Load(ctx context.Context, paths []string, opts Options) ([]layout.SourceImage, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	images := make([]layout.SourceImage, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := LoadFile(p, !opts.NoAutoOrient)
			if err != nil {
				return err
			}
			images[i] = img
			if opts.OnLoaded != nil {
				opts.OnLoaded(p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// LoadFile decodes a single image file.
func LoadFile(path string, autoOrient bool) (layout.SourceImage, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return layout.SourceImage{}, apperr.New(apperr.ErrCodeFileNotFound, "%s: no such file", path)
		}
		return layout.SourceImage{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return layout.SourceImage{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode %s", path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return layout.SourceImage{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "rewind %s", path)
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(autoOrient))
	if err != nil {
		return layout.SourceImage{}, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode %s", path)
	}
	b := img.Bounds()
	return layout.SourceImage{
		Name:     filepath.Base(path),
		WidthPx:  b.Dx(),
		HeightPx: b.Dy(),
		Format:   format,
		Payload:  img,
	}, nil
}

// Fingerprint describes the current state of each file for cache keys.
// A file changes fingerprint when its size or modification time changes.
func Fingerprint(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperr.New(apperr.ErrCodeFileNotFound, "%s: no such file", p)
			}
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "stat %s", p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		out[i] = fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano())
	}
	return out, nil
}
