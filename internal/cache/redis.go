// Package cache is the optional Redis read-through layer for listings.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"datawalt/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Redis only speeds up reads, so a slow server must fail fast rather than
// stall a request that could go straight to the database.
const (
	dialTimeout = 2 * time.Second
	ioTimeout   = 500 * time.Millisecond
)

var client *redis.Client

// errorCounter feeds datawalt_redis_errors_total. redis.Nil is a miss, not an error.
type errorCounter struct{}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		countError(cmd.Name(), err)
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		countError("pipeline", err)
		return err
	}
}

func countError(command string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		middleware.RedisErrors.WithLabelValues(command).Inc()
	}
}

// clientOptions accepts either host:port or a redis:// URL.
func clientOptions(addr string) (*redis.Options, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = ioTimeout
	opts.WriteTimeout = ioTimeout
	return opts, nil
}

// InitRedis connects to addr. An empty address, a bad URL or a failed ping
// leave caching disabled and the service keeps running on the database alone.
func InitRedis(addr string) {
	client = nil
	if strings.TrimSpace(addr) == "" {
		middleware.Logger.Info("Redis disabled: REDIS_URL is empty")
		return
	}

	opts, err := clientOptions(addr)
	if err != nil {
		middleware.Logger.Warn("Redis disabled", "error", err.Error())
		return
	}

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unreachable, continuing without cache", "addr", opts.Addr, "error", err.Error())
		_ = c.Close()
		return
	}

	SetClient(c)
	middleware.Logger.Info("Redis connected", "addr", opts.Addr)
}

// SetClient installs an already-connected client (nil disables caching).
func SetClient(c *redis.Client) {
	if c != nil {
		c.AddHook(errorCounter{})
	}
	client = c
}

// GetClient returns the current client, or nil when caching is off.
func GetClient() *redis.Client {
	return client
}
