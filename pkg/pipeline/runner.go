package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Roman-/img2pdf/pkg/cache"
	apperr "github.com/Roman-/img2pdf/pkg/errors"
	"github.com/Roman-/img2pdf/pkg/layout"
	"github.com/Roman-/img2pdf/pkg/observability"
	"github.com/Roman-/img2pdf/pkg/source"
	"github.com/Roman-/img2pdf/pkg/transform"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
//
// When the plan and every requested artifact are cached for the current
// state of the input files, no image is decoded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])
	opts.Logger = logger

	paths, err := source.Expand(opts.Inputs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, apperr.New(apperr.ErrCodeEmptyInput, "no images found in %v", opts.Inputs)
	}
	result.Paths = paths

	layoutKey, err := r.layoutKey(paths, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if plan, artifacts, ok := r.lookup(ctx, layoutKey, opts); ok {
			logger.Info("using cached output", "pages", plan.PageCount(), "formats", opts.Formats)
			result.Plan = plan
			result.Artifacts = artifacts
			result.CacheInfo = CacheInfo{LayoutHit: true, RenderHit: true}
			r.finish(result)
			return result, nil
		}
	}

	// Stage 1: Load
	loadStart := time.Now()
	images, err := r.loadPaths(ctx, paths, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Info("loaded images", "count", len(images), "duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	plan, err := r.ComputeLayout(ctx, images, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	r.store(ctx, layoutKey, "layout", plan, cache.TTLLayout)

	logger.Info("computed layout",
		"pages", plan.PageCount(),
		"cell", fmt.Sprintf("%.1fx%.1fmm", plan.Cell.WidthMm, plan.Cell.HeightMm),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	logger.Info("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)

	r.finish(result)
	return result, nil
}

// Load expands the inputs and decodes every image, in input order.
func (r *Runner) Load(ctx context.Context, opts Options) ([]layout.SourceImage, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, err
	}

	paths, err := source.Expand(opts.Inputs)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, apperr.New(apperr.ErrCodeEmptyInput, "no images found in %v", opts.Inputs)
	}
	images, err := r.loadPaths(ctx, paths, opts)
	if err != nil {
		return nil, nil, err
	}
	return images, paths, nil
}

func (r *Runner) loadPaths(ctx context.Context, paths []string, opts Options) ([]layout.SourceImage, error) {
	observability.Pipeline().OnLoadStart(ctx, len(paths))
	start := time.Now()

	images, err := source.Load(ctx, paths, source.Options{
		Workers:      opts.Workers,
		NoAutoOrient: opts.NoAutoOrient,
		OnLoaded: func(path string) {
			opts.Logger.Debug("decoded", "file", path)
		},
	})

	observability.Pipeline().OnLoadComplete(ctx, len(images), time.Since(start), err)
	return images, err
}

// ComputeLayout orders the images and assembles the plan. The input slice is
// not modified.
func (r *Runner) ComputeLayout(ctx context.Context, images []layout.SourceImage, opts Options) (layout.Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Plan{}, err
	}

	order, _ := transform.ParseOrder(opts.Order)
	grid := opts.Grid()

	observability.Pipeline().OnLayoutStart(ctx, len(images), grid.Rows, grid.Cols)
	start := time.Now()

	ordered := transform.Apply(images, order, opts.ShuffleSeed())
	plan, err := layout.Assemble(ordered, grid, opts.PageSize(), opts.SeparatorSpec(), opts.Constants())

	observability.Pipeline().OnLayoutComplete(ctx, plan.PageCount(), time.Since(start), err)
	if err != nil {
		return layout.Plan{}, err
	}
	if order != transform.OrderIdentity {
		opts.Logger.Debug("reordered images", "order", order, "seed", opts.ShuffleSeed())
	}
	return plan, nil
}

// Render produces one artifact per requested format.
func (r *Runner) Render(ctx context.Context, plan layout.Plan, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := RenderPlan(ctx, plan, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Warnings lists the non-fatal problems of a plan.
func Warnings(plan layout.Plan) []string {
	var out []string
	if plan.PageCount() > 0 && plan.Cell.IsSmall(layout.SmallCellThresholdMm) {
		out = append(out, fmt.Sprintf("cells are only %.1fx%.1fmm; images will be hard to see",
			plan.Cell.WidthMm, plan.Cell.HeightMm))
	}
	for _, s := range plan.Skipped {
		out = append(out, fmt.Sprintf("skipped %s (page %d, cell %d,%d): %s", s.Name, s.Page+1, s.Row, s.Col, s.Reason))
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) finish(result *Result) {
	result.Warnings = Warnings(result.Plan)
	result.Stats.ImageCount = result.Plan.ImageCount()
	result.Stats.PageCount = result.Plan.PageCount()
	result.Stats.SkippedCount = len(result.Plan.Skipped)
}

func (r *Runner) layoutKey(paths []string, opts Options) (string, error) {
	fps, err := source.Fingerprint(paths)
	if err != nil {
		return "", err
	}
	return r.Keyer.LayoutKey(cache.HashStrings(fps), opts.LayoutKeyOpts()), nil
}

// lookup returns the cached plan and artifacts only when all of them hit.
func (r *Runner) lookup(ctx context.Context, layoutKey string, opts Options) (layout.Plan, map[string][]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, layoutKey)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return layout.Plan{}, nil, false
	}
	var plan layout.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return layout.Plan{}, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return layout.Plan{}, nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return plan, artifacts, true
}

func (r *Runner) store(ctx context.Context, key, kind string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
