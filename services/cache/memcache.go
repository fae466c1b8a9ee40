package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"tamimideals/monitor/logger"
)

// MemcacheService implements CacheService on memcache. The monitor stores
// short-lived rate-limit markers here so that a block set by one fetch
// attempt survives process restarts.
type MemcacheService struct {
	client *memcache.Client
	log    *logger.Logger
}

// NewMemcacheService creates a memcache-backed cache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
		log:    logger.ForCache(),
	}
}

// Get retrieves a value. A cache miss is an error, per the memcache client.
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	if err := m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	}); err != nil {
		return err
	}
	m.log.Debug().Str("key", key).Dur("ttl", expiration).Msg("Cache entry set")
	return nil
}

// Delete removes a value
func (m *MemcacheService) Delete(key string) error {
	if err := m.client.Delete(key); err != nil {
		return err
	}
	m.log.Debug().Str("key", key).Msg("Cache entry deleted")
	return nil
}
