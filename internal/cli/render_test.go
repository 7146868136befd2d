package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Roman-/img2pdf/pkg/config"
	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " PDF , json ", []string{"pdf", "json"}},
		{"empty entries", "pdf,,svg,", []string{"pdf", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.pdf", "pdf"},
		{"sheet.SVG", "svg"},
		{"dir/plan.json", "json"},
		{"photo.jpg", ""},
		{"noext", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatFromExt(tt.path); got != tt.want {
			t.Errorf("formatFromExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default single", "", []string{"pdf"}, map[string]string{"pdf": "output.pdf"}},
		{"explicit single", "scans.pdf", []string{"pdf"}, map[string]string{"pdf": "scans.pdf"}},
		{"foreign extension kept", "sheet.bin", []string{"svg"}, map[string]string{"svg": "sheet.bin"}},
		{"base without extension", "sheet", []string{"pdf"}, map[string]string{"pdf": "sheet.pdf"}},
		{"multiple default", "", []string{"pdf", "svg"}, map[string]string{"pdf": "output.pdf", "svg": "output.svg"}},
		{"multiple strips format ext", "out/sheet.pdf", []string{"pdf", "json"}, map[string]string{"pdf": "out/sheet.pdf", "json": "out/sheet.json"}},
		{"stdout", "-", []string{"json"}, map[string]string{"json": "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPaths(tt.output, tt.formats)
			if err != nil {
				t.Fatalf("outputPaths() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestOutputPathsErrors(t *testing.T) {
	if _, err := outputPaths("-", []string{"pdf", "svg"}); !apperr.Is(err, apperr.ErrCodeInvalidPath) {
		t.Errorf("stdout with two formats: error = %v", err)
	}
	if _, err := outputPaths("bad\x01name.pdf", []string{"pdf"}); !apperr.Is(err, apperr.ErrCodeInvalidPath) {
		t.Errorf("control character in output: error = %v", err)
	}
}

func newFlagCommand(t *testing.T, args ...string) (*cobra.Command, *layoutFlags, *renderFlags) {
	t.Helper()
	var (
		lf layoutFlags
		rf renderFlags
	)
	cmd := &cobra.Command{Use: "test"}
	lf.register(cmd)
	rf.register(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cmd, &lf, &rf
}

func TestLayoutFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Cols = 4
	cfg.Separator.Style = "solid"

	cmd, lf, rf := newFlagCommand(t, "--rows", "3", "--margin", "0", "--order", "shuffle", "-o", "sheet.svg")
	opts := cfg.Options([]string{"a.png"})
	lf.apply(cmd, &opts)
	rf.apply(cmd, &opts)

	if *opts.Rows != 3 {
		t.Errorf("Rows = %d, want 3 from flag", *opts.Rows)
	}
	if *opts.Cols != 4 {
		t.Errorf("Cols = %d, want 4 from config", *opts.Cols)
	}
	if opts.MarginMm == nil || *opts.MarginMm != 0 {
		t.Errorf("MarginMm = %v, want 0 from flag", opts.MarginMm)
	}
	if opts.Separator != "solid" {
		t.Errorf("Separator = %q, want config value", opts.Separator)
	}
	if opts.Order != "shuffle" {
		t.Errorf("Order = %q, want shuffle", opts.Order)
	}
	if !slices.Equal(opts.Formats, []string{pipeline.FormatSVG}) {
		t.Errorf("Formats = %v, want format from --output extension", opts.Formats)
	}
}

func TestRenderFlagsFormatWins(t *testing.T) {
	cmd, _, rf := newFlagCommand(t, "-f", "pdf,json", "-o", "sheet.svg", "--page", "3", "--background", "none")
	var opts pipeline.Options
	rf.apply(cmd, &opts)

	if !slices.Equal(opts.Formats, []string{"pdf", "json"}) {
		t.Errorf("Formats = %v, want [pdf json]", opts.Formats)
	}
	if opts.Page != 2 {
		t.Errorf("Page = %d, want 2 (zero-based)", opts.Page)
	}
	if opts.PageFill() != "" {
		t.Errorf("PageFill() = %q, want transparent", opts.PageFill())
	}
}

func TestLayoutFlagsZeroValuesKept(t *testing.T) {
	cmd, lf, _ := newFlagCommand(t, "--seed", "0", "--rows", "0")
	opts := config.Default().Options([]string{"a.png"})
	lf.apply(cmd, &opts)

	if *opts.Seed != 0 {
		t.Errorf("Seed = %d, want 0 from flag", *opts.Seed)
	}
	if err := opts.ValidateAndSetDefaults(); !apperr.Is(err, apperr.ErrCodeInvalidGrid) {
		t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, apperr.ErrCodeInvalidGrid)
	}
}
