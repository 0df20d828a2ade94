package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"datawalt/internal/middleware"
	"datawalt/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	ListingKeyPrefix = "anuncio:%d"
	ListingsListKey  = "anuncios:list"
)

// ListingTTL bounds how long a single listing stays cached.
const ListingTTL = 10 * time.Minute

// ListTTL bounds how long the full newest-first list stays cached.
var ListTTL = 30 * time.Second

// SetListTTL overrides ListTTL; non-positive values are ignored.
func SetListTTL(d time.Duration) {
	if d > 0 {
		ListTTL = d
	}
}

// ListingKey returns the cache key for one listing.
func ListingKey(id uint) string {
	return fmt.Sprintf(ListingKeyPrefix, id)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found or
// caching is disabled.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	ctx, span := observability.GetTraceLayer().TraceCacheOperation(ctx, "get", key)
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.EndSpan(span, nil)
		return false, nil
	}
	observability.EndSpan(span, err)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// versionTTL keeps a key's write version around well past any fetch.
const versionTTL = time.Hour

func versionKey(key string) string { return key + ":v" }

// Aside tries Redis first; on a miss (or a Redis failure) it calls fetch,
// which must populate dest, and stores the result best-effort. The fill is
// skipped when a writer invalidated key while fetch was running.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		middleware.CacheResults.WithLabelValues("error").Inc()
	case found:
		middleware.CacheResults.WithLabelValues("hit").Inc()
		return nil
	case client != nil:
		middleware.CacheResults.WithLabelValues("miss").Inc()
	}

	version, verErr := readVersion(ctx, key)
	if err := fetch(); err != nil {
		return err
	}
	if verErr != nil {
		return nil
	}

	if err := fillIfUnchanged(ctx, key, version, dest, ttl); errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
		middleware.CacheResults.WithLabelValues("stale_fill").Inc()
	}
	return nil
}

var (
	errStaleFill = errors.New("cache: key invalidated during fetch")
	errNoClient  = errors.New("cache: no redis client")
)

func readVersion(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", errNoClient
	}
	v, err := client.Get(ctx, versionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// fillIfUnchanged stores v under key only while key's write version still
// equals version.
func fillIfUnchanged(ctx context.Context, key, version string, v any, ttl time.Duration) (err error) {
	ctx, span := observability.GetTraceLayer().TraceCacheOperation(ctx, "fill", key)
	defer func() { observability.EndSpan(span, err) }()

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	vk := versionKey(key)
	return client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, vk)
}

// Invalidate removes keys and bumps their write versions so in-flight
// fills for them are dropped; it is a no-op without a client.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, versionKey(k))
			pipe.Expire(ctx, versionKey(k), versionTTL)
			pipe.Del(ctx, k)
		}
		return nil
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err.Error())
	}
}

// InvalidateListing drops one listing and the list that contains it.
func InvalidateListing(ctx context.Context, id uint) {
	Invalidate(ctx, ListingKey(id), ListingsListKey)
}

// InvalidateListingsList drops the cached newest-first list.
func InvalidateListingsList(ctx context.Context) {
	Invalidate(ctx, ListingsListKey)
}
