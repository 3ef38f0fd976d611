package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*ListCache)(nil)

type ListCache struct {
	cache *freecache.Cache
	ttl   time.Duration
}

// NewListCache preallocates sizeMB megabytes; freecache never grows past that.
func NewListCache(sizeMB int, ttl time.Duration) *ListCache {
	megabyte := 1024 * 1024
	return &ListCache{
		cache: freecache.NewCache(sizeMB * megabyte),
		ttl:   ttl,
	}
}

// Get decodes the cached value into dest. A miss or a broken entry reports false.
func (c *ListCache) Get(key string, dest any) bool {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		log.Tracef("list cache miss for %s: %s", key, err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Errorf("failed to unmarshal cached %s: %s", key, err)
		c.Delete(key)
		return false
	}
	return true
}

func (c *ListCache) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.cache.Set([]byte(key), raw, int(c.ttl.Seconds())); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *ListCache) Delete(key string) {
	c.cache.Del([]byte(key))
}

// EntryCount is exported as a metric.
func (c *ListCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
