package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tamimideals/monitor/config"
	"tamimideals/monitor/helpers"
	"tamimideals/monitor/logger"
	"tamimideals/monitor/pkg/errors"
	"tamimideals/monitor/services/cache"
)

// StaticRenderer fetches the page over plain HTTP with browser-like headers.
// An upstream rate-limit response blocks further fetches for the configured
// time, remembered through the cache service.
type StaticRenderer struct {
	url       string
	cacheKey  string
	cacheSvc  cache.CacheService
	blockTime time.Duration
	log       *logger.Logger
}

// NewStaticRenderer creates a new static renderer
func NewStaticRenderer(cfg *config.Config, cacheSvc cache.CacheService) *StaticRenderer {
	return &StaticRenderer{
		url:       cfg.HotDealsURL,
		cacheKey:  "hotdeals_rate_limited",
		cacheSvc:  cacheSvc,
		blockTime: cfg.FetchBlockTime,
		log:       logger.ForRenderer(),
	}
}

// Name returns the renderer name
func (r *StaticRenderer) Name() string {
	return "StaticRenderer"
}

// Render fetches the page body, honoring an active rate-limit block.
func (r *StaticRenderer) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Check if fetching is blocked after a recent rate limit
	if r.cacheSvc != nil && r.cacheKey != "" {
		if _, err := r.cacheSvc.Get(r.cacheKey); err == nil {
			return "", errors.NewRateLimit(r.Name(), r.blockTime)
		}
	}

	r.log.Info().Str("url", r.url).Msg("Fetching hot deals page")

	body, err := helpers.FetchWithRandomHeaders(r.url)
	if err != nil {
		if r.cacheSvc != nil && r.cacheKey != "" && strings.HasPrefix(err.Error(), "rate limited") {
			r.cacheSvc.Set(r.cacheKey, []byte(fmt.Sprintf("%d", r.blockTime/time.Second)), r.blockTime)
		}
		return "", errors.NewNetwork(r.Name(), "failed to fetch page", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.NewNetwork(r.Name(), "failed to read page body", err)
	}

	return string(data), nil
}
