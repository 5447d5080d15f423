package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"todo-api-v2/api"
)

const taskCacheTTL = 5 * time.Minute

// CacheClient is the slice of the Redis API the task cache uses.
// *redis.Client satisfies it; tests swap in an in-memory fake.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TaskCache is a read-through Redis cache for single-task lookups. A nil
// TaskCache (or nil client) is a valid no-op cache, so the server runs
// without Redis when REDIS_ADDR is unset. Cache failures are logged and
// degrade to a database read; they never fail a request.
type TaskCache struct {
	Client CacheClient
}

func taskCacheKey(userID, taskID int) string {
	return fmt.Sprintf("task:%d:%d", userID, taskID)
}

// Get returns the cached task and whether it was present.
func (c *TaskCache) Get(ctx context.Context, userID, taskID int) (api.Task, bool) {
	if c == nil || c.Client == nil {
		return api.Task{}, false
	}
	key := taskCacheKey(userID, taskID)
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return api.Task{}, false
	}
	var t api.Task
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		log.Printf("WARN: Failed to decode cached task %s: %v", key, err)
		return api.Task{}, false
	}
	return t, true
}

// Set stores a task under its owner-scoped key.
func (c *TaskCache) Set(ctx context.Context, t api.Task) {
	if c == nil || c.Client == nil {
		return
	}
	key := taskCacheKey(t.UserID, t.ID)
	data, err := json.Marshal(t)
	if err != nil {
		log.Printf("WARN: Failed to encode task for cache: %v", err)
		return
	}
	if err := c.Client.Set(ctx, key, data, taskCacheTTL).Err(); err != nil {
		log.Printf("WARN: Failed to set cache key %s: %v", key, err)
	}
}

// Invalidate drops the cached copy after any mutation.
func (c *TaskCache) Invalidate(ctx context.Context, userID, taskID int) {
	if c == nil || c.Client == nil {
		return
	}
	key := taskCacheKey(userID, taskID)
	if err := c.Client.Del(ctx, key).Err(); err != nil {
		log.Printf("WARN: Failed to delete cache key %s: %v", key, err)
	}
}
