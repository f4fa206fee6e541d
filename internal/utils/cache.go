package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Integer to string conversion for cache keys
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// SummaryCacheKey builds the cache key for a user's donation summary
func SummaryCacheKey(userID string) string {
	return "donations:summary:user:" + userID
}

// DetailsCacheKey builds the cache key for a single donation's details
func DetailsCacheKey(donationID string) string {
	return "donations:details:" + donationID
}

// AdminListCacheKey builds the cache key for a paginated admin listing
func AdminListCacheKey(resource string, page, pageSize int) string {
	return "admin:" + resource + ":page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
}

// InvalidateDonationCaches drops the summary cache of the owning user (if any)
// and the details cache of the donation after a write. A nil client is a no-op
// so callers without Redis configured skip invalidation entirely.
func InvalidateDonationCaches(ctx context.Context, rdb *redis.Client, userID *uint, donationID uint) {
	if rdb == nil {
		return // Caching disabled
	}
	if userID != nil {
		_ = DeleteCache(ctx, rdb, SummaryCacheKey(strconv.Itoa(int(*userID)))) // Invalidate the owner's summary
	}
	_ = DeleteCache(ctx, rdb, DetailsCacheKey(strconv.FormatUint(uint64(donationID), 10))) // Invalidate the details entry
}
