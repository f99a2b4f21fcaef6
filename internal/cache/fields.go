package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FieldSource loads the res_partner column set from the database.
type FieldSource func(ctx context.Context) ([]string, error)

// PartnerFieldCache holds the schema-discovered allow-list of writable
// registrant columns. Populated on first access and shared read-only across
// requests; Invalidate is the operator hook for picking up schema changes
// without a restart. When a Redis client is configured the list is also kept
// there so multiple portal instances agree after an invalidation.
type PartnerFieldCache struct {
	mu     sync.RWMutex
	fields []string
	loaded bool

	source FieldSource
	rdb    *redis.Client
	key    string
	ttl    time.Duration
}

func NewPartnerFieldCache(source FieldSource, rdb *redis.Client, ttl time.Duration) *PartnerFieldCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &PartnerFieldCache{
		source: source,
		rdb:    rdb,
		key:    "portal:partner_fields",
		ttl:    ttl,
	}
}

// Get returns the cached column list, populating it on first access.
func (c *PartnerFieldCache) Get(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	if c.loaded {
		fields := c.fields
		c.mu.RUnlock()
		return fields, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.fields, nil
	}

	if c.rdb != nil {
		if data, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil {
			var fields []string
			if err := json.Unmarshal(data, &fields); err == nil && len(fields) > 0 {
				c.fields = fields
				c.loaded = true
				return fields, nil
			}
		}
	}

	fields, err := c.source(ctx)
	if err != nil {
		return nil, err
	}
	c.fields = fields
	c.loaded = true
	c.shareLocked(ctx, fields)
	return fields, nil
}

// Contains reports whether name is a known registrant column.
func (c *PartnerFieldCache) Contains(ctx context.Context, name string) (bool, error) {
	fields, err := c.Get(ctx)
	if err != nil {
		return false, err
	}
	for _, f := range fields {
		if f == name {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate drops the cached list; the next Get repopulates from the schema.
func (c *PartnerFieldCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = nil
	c.loaded = false
	if c.rdb != nil {
		return c.rdb.Del(ctx, c.key).Err()
	}
	return nil
}

// Refresh reloads from the schema immediately, replacing the cached list.
func (c *PartnerFieldCache) Refresh(ctx context.Context) error {
	fields, err := c.source(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = fields
	c.loaded = true
	c.shareLocked(ctx, fields)
	return nil
}

func (c *PartnerFieldCache) shareLocked(ctx context.Context, fields []string) {
	if c.rdb == nil {
		return
	}
	if data, err := json.Marshal(fields); err == nil {
		// Redis propagation is best effort; the local copy is authoritative.
		c.rdb.Set(ctx, c.key, data, c.ttl)
	}
}
