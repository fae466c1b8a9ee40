package renderer

import (
	"context"

	"tamimideals/monitor/config"
	"tamimideals/monitor/services/cache"
)

// PageRenderer produces the raw HTML of the hot-deals page. Rendering may be
// slow and I/O-bound; the rest of the pipeline is pure and in-memory.
type PageRenderer interface {
	// Render fetches the page and returns its HTML
	Render(ctx context.Context) (string, error)

	// Name returns the renderer's name for logging
	Name() string
}

// New selects the renderer implementation: headless Chrome for the
// JavaScript-rendered storefront, or a plain HTTP fetch for server-rendered
// pages and testing.
func New(cfg *config.Config, cacheSvc cache.CacheService) PageRenderer {
	if cfg.UseChrome {
		return NewChromeRenderer(cfg)
	}
	return NewStaticRenderer(cfg, cacheSvc)
}
