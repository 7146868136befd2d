package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsImageFile reports whether name has a supported image extension.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Extensions returns the supported image extensions without the dot, sorted.
func Extensions() []string {
	out := make([]string, 0, len(imageExts))
	for ext := range imageExts {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(out)
	return out
}

// Expand resolves paths into an ordered list of files.
//
// Files are kept in the order given, whatever their extension. A directory
// is replaced by its image files (not recursive), sorted by name. Repeated
// paths are kept once, at their first position.
func Expand(paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperr.New(apperr.ErrCodeFileNotFound, "%s: no such file or directory", p)
			}
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "stat %s", p)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read dir %s", p)
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() && IsImageFile(e.Name()) {
				names = append(names, e.Name())
			}
		}
		slices.Sort(names)
		for _, n := range names {
			add(filepath.Join(p, n))
		}
	}
	return out, nil
}
