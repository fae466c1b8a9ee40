package renderer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tamimideals/monitor/config"
	"tamimideals/monitor/pkg/errors"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{cache: make(map[string][]byte)}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

func staticConfig(url string) *config.Config {
	cfg := config.LoadConfig()
	cfg.HotDealsURL = url
	cfg.UseChrome = false
	return cfg
}

func TestStaticRendererFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><div data-testid="product">deal</div></body></html>`))
	}))
	defer server.Close()

	renderer := NewStaticRenderer(staticConfig(server.URL), NewMockCacheService())
	html, err := renderer.Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, `data-testid="product"`)
}

func TestStaticRendererRateLimitBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	mockCache := NewMockCacheService()
	renderer := NewStaticRenderer(staticConfig(server.URL), mockCache)

	// First fetch hits the upstream 429 and records the block
	_, err := renderer.Render(context.Background())
	require.Error(t, err)
	_, cacheErr := mockCache.Get("hotdeals_rate_limited")
	assert.NoError(t, cacheErr)

	// Second fetch is stopped by the block before reaching upstream
	_, err = renderer.Render(context.Background())
	require.Error(t, err)
	var monitorErr *errors.MonitorError
	require.ErrorAs(t, err, &monitorErr)
	assert.Equal(t, errors.ErrorTypeRateLimit, monitorErr.Type)
}

func TestStaticRendererCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := NewStaticRenderer(staticConfig("http://localhost:0"), NewMockCacheService())
	_, err := renderer.Render(ctx)
	assert.Error(t, err)
}

func TestNewSelectsRenderer(t *testing.T) {
	cfg := config.LoadConfig()

	cfg.UseChrome = true
	assert.Equal(t, "ChromeRenderer", New(cfg, nil).Name())

	cfg.UseChrome = false
	assert.Equal(t, "StaticRenderer", New(cfg, nil).Name())
}
