package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const rsvgConvert = "rsvg-convert"

// Available reports whether rsvg-convert is installed.
func Available() error {
	if _, err := exec.LookPath(rsvgConvert); err != nil {
		return fmt.Errorf("pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}
	return nil
}

// ToPDF converts SVG pages to one PDF with a page per input, in order.
func ToPDF(ctx context.Context, pages ...[]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to convert")
	}
	if err := Available(); err != nil {
		return nil, err
	}

	// rsvg-convert only reads one document from stdin; multi-page output
	// needs the pages as files.
	dir, err := os.MkdirTemp("", "img2pdf-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create page dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%05d.svg", i))
		if err := os.WriteFile(path, page, 0o600); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i, err)
		}
		args = append(args, path)
	}

	return run(ctx, args)
}

// run executes rsvg-convert and returns its stdout.
func run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, rsvgConvert, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
