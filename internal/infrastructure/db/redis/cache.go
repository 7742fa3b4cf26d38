package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nextgen-lms/backend/internal/core/domain"
)

const (
	catalogKey = "catalog:courses"
	noticesKey = "notices:active"
	cacheTTL   = 5 * time.Minute
)

// Cache is a JSON cache-aside store for the hot public reads: the course
// catalog and the active notice board. Entries expire after cacheTTL and are
// invalidated on every write to the underlying collection.
type Cache struct {
	client *redis.Client
}

// NewCache creates a Cache wrapping the given Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetCourses returns the cached course list and whether the key was present.
func (c *Cache) GetCourses(ctx context.Context) ([]*domain.Course, bool, error) {
	var courses []*domain.Course
	ok, err := c.get(ctx, catalogKey, &courses)
	return courses, ok, err
}

func (c *Cache) SetCourses(ctx context.Context, courses []*domain.Course) error {
	return c.set(ctx, catalogKey, courses)
}

func (c *Cache) InvalidateCourses(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}

// GetNotices returns the cached active notice list and whether the key was
// present.
func (c *Cache) GetNotices(ctx context.Context) ([]*domain.Notice, bool, error) {
	var notices []*domain.Notice
	ok, err := c.get(ctx, noticesKey, &notices)
	return notices, ok, err
}

func (c *Cache) SetNotices(ctx context.Context, notices []*domain.Notice) error {
	return c.set(ctx, noticesKey, notices)
}

func (c *Cache) InvalidateNotices(ctx context.Context) error {
	return c.client.Del(ctx, noticesKey).Err()
}

func (c *Cache) get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return false, nil
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, cacheTTL).Err()
}
