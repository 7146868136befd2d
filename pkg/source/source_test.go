package source

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/disintegration/imaging"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{G: 128, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Save(%s) error = %v", path, err)
	}
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "b.png"), 30, 10)
	writeImage(t, filepath.Join(dir, "a.jpg"), 20, 40)
	writeImage(t, filepath.Join(dir, "c.gif"), 5, 5)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.JPG", true},
		{"scan.tiff", true},
		{"pic.webp", true},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.name); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExtensions(t *testing.T) {
	want := []string{"bmp", "gif", "jpeg", "jpg", "png", "tif", "tiff", "webp"}
	if got := Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestExpand(t *testing.T) {
	dir := fixtureDir(t)
	extra := filepath.Join(dir, "notes.txt")

	got, err := Expand([]string{extra, dir, filepath.Join(dir, "b.png")})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := []string{
		extra,
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.gif"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpandMissing(t *testing.T) {
	_, err := Expand([]string{filepath.Join(t.TempDir(), "gone.png")})
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("Expand() error = %v, want %s", err, apperr.ErrCodeFileNotFound)
	}
}

func TestLoad(t *testing.T) {
	dir := fixtureDir(t)
	paths, err := Expand([]string{dir})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	var loaded int
	images, err := Load(context.Background(), paths, Options{Workers: 1, OnLoaded: func(string) { loaded++ }})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []struct {
		name   string
		w, h   int
		format string
	}{
		{"a.jpg", 20, 40, "jpeg"},
		{"b.png", 30, 10, "png"},
		{"c.gif", 5, 5, "gif"},
	}
	if len(images) != len(want) {
		t.Fatalf("Load() = %d images, want %d", len(images), len(want))
	}
	for i, w := range want {
		img := images[i]
		if img.Name != w.name || img.WidthPx != w.w || img.HeightPx != w.h || img.Format != w.format {
			t.Errorf("images[%d] = %s %dx%d %s, want %s %dx%d %s",
				i, img.Name, img.WidthPx, img.HeightPx, img.Format, w.name, w.w, w.h, w.format)
		}
		if img.Payload == nil {
			t.Errorf("images[%d] has no payload", i)
		}
	}
	if loaded != 3 {
		t.Errorf("OnLoaded called %d times, want 3", loaded)
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 12 {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writeImage(t, p, i+1, 1)
		paths = append(paths, p)
	}
	slices.Reverse(paths)

	images, err := Load(context.Background(), paths, Options{Workers: 4})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for i, img := range images {
		if want := 12 - i; img.WidthPx != want {
			t.Errorf("images[%d].WidthPx = %d, want %d", i, img.WidthPx, want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := fixtureDir(t)
	corrupt := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code apperr.Code
	}{
		{"corrupt", corrupt, apperr.ErrCodeInvalidInput},
		{"not an image", filepath.Join(dir, "notes.txt"), apperr.ErrCodeInvalidInput},
		{"missing", filepath.Join(dir, "missing.png"), apperr.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), []string{filepath.Join(dir, "a.jpg"), tt.path}, Options{})
			if !apperr.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := fixtureDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, []string{filepath.Join(dir, "a.jpg")}, Options{}); err == nil {
		t.Error("Load() with a cancelled context should fail")
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x.png")
	writeImage(t, p, 4, 4)

	first, err := Fingerprint([]string{p})
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	again, _ := Fingerprint([]string{p})
	if first[0] != again[0] {
		t.Error("Fingerprint() should be stable for an unchanged file")
	}

	if err := imaging.Save(image.NewNRGBA(image.Rect(0, 0, 64, 64)), p); err != nil {
		t.Fatal(err)
	}
	changed, _ := Fingerprint([]string{p})
	if changed[0] == first[0] {
		t.Error("Fingerprint() should change with the file size")
	}
}
