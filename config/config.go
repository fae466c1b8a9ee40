package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"tamimideals/monitor/internal/classify"
	"tamimideals/monitor/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Telegram configuration
	TelegramBotToken string
	TelegramChatID   string

	// Discount filter range (inclusive on both bounds)
	DiscountMin int
	DiscountMax int

	// Target page
	BaseURL     string
	HotDealsURL string

	// Currency marker used in price text
	CurrencySymbol string

	// Classifier keyword overrides ("CHEESE:cheese,جبن;MEAT:beef").
	// Empty selects the built-in rules.
	CategoryKeywords string

	// Message composition
	ChunkSize        int
	MaxPayloadLength int

	// Renderer configuration
	UseChrome     bool
	RenderTimeout time.Duration
	MaxScrolls    int
	ScrollDelay   time.Duration

	// Memcache configuration (fetch rate limiting)
	MemcacheAddr     string
	FetchBlockTime   time.Duration

	// Redis configuration (product archive stream)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Worker configuration
	CrawlInterval time.Duration
	DebugDir      string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	discountMin, _ := strconv.Atoi(getEnv("DISCOUNT_MIN", "50"))
	discountMax, _ := strconv.Atoi(getEnv("DISCOUNT_MAX", "99"))
	chunkSize, _ := strconv.Atoi(getEnv("CHUNK_SIZE", "10"))
	maxPayloadLength, _ := strconv.Atoi(getEnv("MAX_PAYLOAD_LENGTH", "4000"))
	renderTimeout, _ := strconv.Atoi(getEnv("RENDER_TIMEOUT_SECONDS", "90"))
	maxScrolls, _ := strconv.Atoi(getEnv("MAX_SCROLL_ATTEMPTS", "15"))
	scrollDelay, _ := strconv.Atoi(getEnv("SCROLL_DELAY_SECONDS", "3"))
	fetchBlockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "3600"))

	baseURL := getEnv("BASE_URL", "https://shop.tamimimarkets.com")

	return &Config{
		TelegramBotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:       os.Getenv("TELEGRAM_CHAT_ID"),
		DiscountMin:          discountMin,
		DiscountMax:          discountMax,
		BaseURL:              baseURL,
		HotDealsURL:          getEnv("HOT_DEALS_URL", baseURL+"/en/hot-deals"),
		CurrencySymbol:       getEnv("CURRENCY_SYMBOL", "SAR"),
		CategoryKeywords:     os.Getenv("CATEGORY_KEYWORDS"),
		ChunkSize:            chunkSize,
		MaxPayloadLength:     maxPayloadLength,
		UseChrome:            getEnv("USE_CHROME", "true") == "true",
		RenderTimeout:        time.Duration(renderTimeout) * time.Second,
		MaxScrolls:           maxScrolls,
		ScrollDelay:          time.Duration(scrollDelay) * time.Second,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		FetchBlockTime:       time.Duration(fetchBlockTime) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "tamimideals"),
		RedisStreamMaxLength: redisStreamMaxLength,
		CrawlInterval:        time.Duration(crawlInterval) * time.Second,
		DebugDir:             getEnv("DEBUG_DIR", "."),
		Environment:          getEnv("MONITOR_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.DiscountMin < 0 || c.DiscountMin > 100 {
		return errors.NewConfiguration("DISCOUNT_MIN must be between 0 and 100", nil)
	}
	if c.DiscountMax < 0 || c.DiscountMax > 100 {
		return errors.NewConfiguration("DISCOUNT_MAX must be between 0 and 100", nil)
	}
	if c.DiscountMin > c.DiscountMax {
		return errors.NewConfiguration("DISCOUNT_MIN must not exceed DISCOUNT_MAX", nil)
	}
	if c.ChunkSize <= 0 {
		return errors.NewConfiguration("CHUNK_SIZE must be positive", nil)
	}
	if c.MaxPayloadLength <= 0 {
		return errors.NewConfiguration("MAX_PAYLOAD_LENGTH must be positive", nil)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return errors.NewConfiguration("BASE_URL is not a valid URL", err)
	}
	if _, err := classify.ParseRules(c.CategoryKeywords); err != nil {
		return errors.NewConfiguration("CATEGORY_KEYWORDS is not a valid rule list", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
