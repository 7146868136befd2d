package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and cache events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLoadStart(_ context.Context, files int) {
	h.logger.Debug("decoding images", "files", files)
}

func (h *logHooks) OnLoadComplete(_ context.Context, images int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decoding failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("decoded images", "count", images, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, images, rows, cols int) {
	h.logger.Debug("laying out", "images", images, "grid", gridLabel(rows, cols))
}

func (h *logHooks) OnLayoutComplete(_ context.Context, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err)
		return
	}
	h.logger.Debug("layout done", "pages", pages, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "kind", keyType, "bytes", size)
}
