package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, 50, config.DiscountMin)
	assert.Equal(t, 99, config.DiscountMax)
	assert.Equal(t, 10, config.ChunkSize)
	assert.Equal(t, 4000, config.MaxPayloadLength)
	assert.Equal(t, "SAR", config.CurrencySymbol)
	assert.Equal(t, "https://shop.tamimimarkets.com", config.BaseURL)
	assert.Equal(t, "https://shop.tamimimarkets.com/en/hot-deals", config.HotDealsURL)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 3600*time.Second, config.CrawlInterval)
	assert.True(t, config.UseChrome)

	// Test with environment variables
	os.Setenv("DISCOUNT_MIN", "30")
	os.Setenv("DISCOUNT_MAX", "80")
	os.Setenv("CHUNK_SIZE", "8")
	os.Setenv("BASE_URL", "https://example.com")
	os.Setenv("HOT_DEALS_URL", "https://example.com/deals")
	os.Setenv("USE_CHROME", "false")
	os.Setenv("CRAWL_INTERVAL_SECONDS", "60")
	os.Setenv("CATEGORY_KEYWORDS", "MEAT:wagyu")

	config = LoadConfig()
	assert.Equal(t, 30, config.DiscountMin)
	assert.Equal(t, 80, config.DiscountMax)
	assert.Equal(t, 8, config.ChunkSize)
	assert.Equal(t, "https://example.com", config.BaseURL)
	assert.Equal(t, "https://example.com/deals", config.HotDealsURL)
	assert.False(t, config.UseChrome)
	assert.Equal(t, 60*time.Second, config.CrawlInterval)
	assert.Equal(t, "MEAT:wagyu", config.CategoryKeywords)

	// Clean up
	os.Unsetenv("DISCOUNT_MIN")
	os.Unsetenv("DISCOUNT_MAX")
	os.Unsetenv("CHUNK_SIZE")
	os.Unsetenv("BASE_URL")
	os.Unsetenv("HOT_DEALS_URL")
	os.Unsetenv("USE_CHROME")
	os.Unsetenv("CRAWL_INTERVAL_SECONDS")
	os.Unsetenv("CATEGORY_KEYWORDS")
}

func TestValidate(t *testing.T) {
	valid := LoadConfig()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min above max", func(c *Config) { c.DiscountMin = 80; c.DiscountMax = 50 }},
		{"negative min", func(c *Config) { c.DiscountMin = -1 }},
		{"max above 100", func(c *Config) { c.DiscountMax = 101 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"zero payload length", func(c *Config) { c.MaxPayloadLength = 0 }},
		{"bad category keywords", func(c *Config) { c.CategoryKeywords = "DAIRY:milk" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
