package pipeline

import (
	"context"
	"fmt"

	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/sink"
)

// RenderPlan emits plan once per requested format. Each format gets a fresh
// sink. An empty plan cannot be rendered.
func RenderPlan(ctx context.Context, plan layout.Plan, opts Options) (map[string][]byte, error) {
	if plan.PageCount() == 0 && !onlyJSON(opts.Formats) {
		return nil, fmt.Errorf("plan has no pages")
	}

	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	fill := opts.PageFill()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error
		switch format {
		case FormatPDF:
			data, err = sink.Emit(plan, sink.NewPDF(ctx,
				sink.WithMaxDPI(opts.MaxDPI),
				sink.WithJPEGQuality(opts.JPEGQuality),
				sink.WithBackground(fill)))
		case FormatSVG:
			data, err = sink.Emit(plan, sink.NewSVG(
				sink.WithJPEGQuality(opts.JPEGQuality),
				sink.WithBackground(fill)))
		case FormatPNG:
			data, err = sink.Emit(plan, sink.NewPNG(
				sink.WithPage(opts.Page),
				sink.WithDPI(opts.PreviewDPI),
				sink.WithFill(fill)))
		case FormatJSON:
			data, err = sink.RenderJSON(plan)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func onlyJSON(formats []string) bool {
	for _, f := range formats {
		if f != FormatJSON {
			return false
		}
	}
	return true
}
