package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/observability"
)

// imageDir writes n small images and returns their directory.
func imageDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := range n {
		img := imaging.New(40, 30, color.NRGBA{R: uint8(40 * i), B: 200, A: 255})
		if err := imaging.Save(img, filepath.Join(dir, fmt.Sprintf("img%02d.png", i))); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// runCLI executes the root command with isolated config and cache directories.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readPlan(t *testing.T, path string) layout.Plan {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var plan layout.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		t.Fatalf("unmarshal plan: %v", err)
	}
	return plan
}

func TestRenderCommand(t *testing.T) {
	dir := imageDir(t, 5)
	base := filepath.Join(t.TempDir(), "sheet")

	err := runCLI(t, "render", dir, "-f", "svg,json", "-o", base, "--separator", "solid")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg output starts with %q", svg[:min(20, len(svg))])
	}
	if got := strings.Count(string(svg), "<image "); got != 5 {
		t.Errorf("svg has %d images, want 5", got)
	}

	plan := readPlan(t, base+".json")
	if plan.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2 for five images on a 2x2 grid", plan.PageCount())
	}
	if plan.Pages[0].Images[0].Name != "img00.png" {
		t.Errorf("first image = %q, want img00.png", plan.Pages[0].Images[0].Name)
	}
}

func TestLayoutCommandWritesPlan(t *testing.T) {
	dir := imageDir(t, 5)
	out := filepath.Join(t.TempDir(), "plan.json")

	if err := runCLI(t, "layout", dir, "-r", "1", "-c", "3", "--order", "reverse", "-o", out); err != nil {
		t.Fatalf("layout error = %v", err)
	}

	plan := readPlan(t, out)
	if plan.Grid != (layout.GridSpec{Rows: 1, Cols: 3}) {
		t.Errorf("Grid = %+v, want 1x3", plan.Grid)
	}
	if plan.PageCount() != 2 || plan.ImageCount() != 5 {
		t.Errorf("plan has %d pages, %d images; want 2 and 5", plan.PageCount(), plan.ImageCount())
	}
	if plan.Pages[0].Images[0].Name != "img04.png" {
		t.Errorf("first image = %q, want img04.png after reverse", plan.Pages[0].Images[0].Name)
	}
}

func TestPreviewWritesPNG(t *testing.T) {
	dir := imageDir(t, 3)
	out := filepath.Join(t.TempDir(), "p.png")

	if err := runCLI(t, "preview", dir, "-o", out); err != nil {
		t.Fatalf("preview error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if cfg.Width != 794 || cfg.Height != 1123 {
		t.Errorf("preview is %dx%d, want 794x1123 at 96 DPI", cfg.Width, cfg.Height)
	}
}

func TestConfigFileDrivesRender(t *testing.T) {
	dir := imageDir(t, 3)
	work := t.TempDir()
	cfgPath := filepath.Join(work, "config.toml")

	if err := runCLI(t, "config", "init", "--config", cfgPath); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	data = []byte(strings.Replace(string(data), "rows = 2", "rows = 1", 1))
	data = []byte(strings.Replace(string(data), "cols = 2", "cols = 1", 1))
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(work, "plan.json")
	if err := runCLI(t, "--config", cfgPath, "render", dir, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if plan := readPlan(t, out); plan.PageCount() != 3 {
		t.Errorf("PageCount() = %d, want 3 with a 1x1 grid from the config", plan.PageCount())
	}

	// Flags override the config file.
	if err := runCLI(t, "--config", cfgPath, "render", dir, "-o", out, "--no-cache", "-c", "3"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if plan := readPlan(t, out); plan.PageCount() != 1 {
		t.Errorf("PageCount() = %d, want 1 with --cols 3", plan.PageCount())
	}
}

func TestCommandErrors(t *testing.T) {
	badConfig := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(badConfig, []byte("[grid]\nrowz = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code apperr.Code
	}{
		{"empty directory", []string{"render", t.TempDir(), "-f", "json", "-o", "-"}, apperr.ErrCodeEmptyInput},
		{"missing input", []string{"render", "/does/not/exist.png"}, apperr.ErrCodeFileNotFound},
		{"grid too large", []string{"layout", imageDir(t, 1), "-r", "21"}, apperr.ErrCodeInvalidGrid},
		{"zero cols", []string{"render", imageDir(t, 1), "-c", "0", "-f", "json", "-o", "-"}, apperr.ErrCodeInvalidGrid},
		{"bad format", []string{"render", imageDir(t, 1), "-f", "gif"}, apperr.ErrCodeInvalidFormat},
		{"bad config", []string{"--config", badConfig, "render", "x.png"}, apperr.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !apperr.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	dir := imageDir(t, 2)
	out := filepath.Join(t.TempDir(), "plan.json")

	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	run := func(args ...string) error {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		return root.ExecuteContext(context.Background())
	}

	if err := run("render", dir, "-o", out); err != nil {
		t.Fatalf("render error = %v", err)
	}
	fc, err := New(io.Discard, LogInfo).fileCache()
	if err != nil {
		t.Fatal(err)
	}
	if entries, _, err := fc.Usage(); err != nil || entries != 2 {
		t.Errorf("Usage() = %d entries, %v; want the plan and one artifact", entries, err)
	}

	if err := run("cache", "info"); err != nil {
		t.Errorf("cache info error = %v", err)
	}
	if err := run("cache", "clear"); err != nil {
		t.Errorf("cache clear error = %v", err)
	}
	if entries, _, _ := fc.Usage(); entries != 0 {
		t.Errorf("Usage() after clear = %d entries, want 0", entries)
	}
}
