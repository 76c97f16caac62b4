// Package cache provides Redis read-through decorators for the financials repositories.
package cache

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// invalidate deletes exactly the given cache keys. Keys are never expanded
// as patterns, so "VNM" does not reach the entries of "VNMX".
func invalidate(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
