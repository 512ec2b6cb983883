// Package cache is an optional Redis layer in front of the public
// storefront catalog. Every function degrades gracefully when Redis is
// not configured or unreachable: the Postgres row is authoritative and
// a cache failure is never surfaced to the shopper.
package cache

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogKey = "store:catalog"
	catalogTTL = 60 * time.Second
)

var client *redis.Client

// Init connects to Redis when REDIS_ADDR is set. Returns false when
// caching is disabled, an error when the configured server is down.
func Init() (bool, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return false, nil
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return false, err
	}
	return true, nil
}

// GetCatalog returns the cached storefront catalog JSON, if any.
func GetCatalog(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCatalog caches the storefront catalog JSON for a short TTL.
func SetCatalog(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, catalogKey, data, catalogTTL)
}

// InvalidateCatalog drops the cached catalog after any write that
// changes prices or visibility.
func InvalidateCatalog(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, catalogKey)
}
