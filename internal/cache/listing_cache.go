// Package cache holds the read-through cache for listing lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/records-service/internal/domain"
)

// ListingCache remembers how lookup keys resolved and the documents they
// resolved to. Failures never surface: a broken cache behaves like an empty
// one.
type ListingCache interface {
	// Lookup returns the listing a key last resolved to, provided the cached
	// document still answers to that key.
	Lookup(ctx context.Context, key string) (*domain.Listing, bool)
	// Store records that key resolved to listing.
	Store(ctx context.Context, key string, listing *domain.Listing)
	// Evict drops the cached document for a system id.
	Evict(ctx context.Context, oid string)
	// EvictKey drops a key resolution.
	EvictKey(ctx context.Context, key string)
}

const (
	keyPrefix = "records:listing:key:"
	docPrefix = "records:listing:doc:"
)

type redisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisListingCache returns a cache backed by client. A nil client yields
// the no-op cache.
func NewRedisListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ListingCache {
	if client == nil {
		return NoopListingCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisListingCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisListingCache) Lookup(ctx context.Context, key string) (*domain.Listing, bool) {
	oid, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		c.logFailure("lookup key", err)
		return nil, false
	}
	raw, err := c.client.Get(ctx, docPrefix+oid).Bytes()
	if err != nil {
		c.logFailure("lookup document", err)
		return nil, false
	}
	var listing domain.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		c.logger.Warn("listing cache entry unreadable", zap.String("oid", oid), zap.Error(err))
		return nil, false
	}
	if !Answers(&listing, key) {
		return nil, false
	}
	return &listing, true
}

func (c *redisListingCache) Store(ctx context.Context, key string, listing *domain.Listing) {
	raw, err := json.Marshal(listing)
	if err != nil {
		c.logger.Warn("listing cache encode failed", zap.String("oid", listing.OID), zap.Error(err))
		return
	}
	_, err = c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, docPrefix+listing.OID, raw, c.ttl)
		pipe.Set(ctx, keyPrefix+key, listing.OID, c.ttl)
		return nil
	})
	c.logFailure("store", err)
}

func (c *redisListingCache) Evict(ctx context.Context, oid string) {
	c.logFailure("evict", c.client.Del(ctx, docPrefix+oid).Err())
}

func (c *redisListingCache) EvictKey(ctx context.Context, key string) {
	c.logFailure("evict key", c.client.Del(ctx, keyPrefix+key).Err())
}

func (c *redisListingCache) logFailure(op string, err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}
	c.logger.Debug("listing cache unavailable", zap.String("op", op), zap.Error(err))
}

// Answers reports whether a lookup by key would select listing: either its
// application id equals key or key is its system id.
func Answers(listing *domain.Listing, key string) bool {
	if listing.ID != "" && listing.ID == key {
		return true
	}
	oid, ok := domain.ParseObjectID(key)
	return ok && oid == listing.OID
}

// NoopListingCache caches nothing.
type NoopListingCache struct{}

func (NoopListingCache) Lookup(context.Context, string) (*domain.Listing, bool) { return nil, false }
func (NoopListingCache) Store(context.Context, string, *domain.Listing)          {}
func (NoopListingCache) Evict(context.Context, string)                           {}
func (NoopListingCache) EvictKey(context.Context, string)                        {}
