package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gestor-erp/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// ReportCache stores serialized report payloads with a short TTL. Dashboard
// and series queries hit several tables, so reads go through here first.
type ReportCache interface {
	Get(ctx context.Context, companyID uuid.UUID, key string, dest interface{}) error
	Set(ctx context.Context, companyID uuid.UUID, key string, value interface{}, ttl time.Duration) error
	// InvalidateCompany drops every cached report of a company, called after
	// writes that change the aggregates
	InvalidateCompany(ctx context.Context, companyID uuid.UUID) error
}

const reportKeyPrefix = "report:"

func reportKey(companyID uuid.UUID, key string) string {
	return reportKeyPrefix + companyID.String() + ":" + key
}

// RedisReportCache implements ReportCache on Redis
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache connects to Redis and verifies the connection
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisReportCache{client: client}, nil
}

// NewRedisReportCacheWithClient wraps an existing client
func NewRedisReportCacheWithClient(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// Get unmarshals the cached payload into dest, returning ErrMiss when absent
func (c *RedisReportCache) Get(ctx context.Context, companyID uuid.UUID, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, reportKey(companyID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	return json.Unmarshal(payload, dest)
}

// Set stores the marshalled payload under the company-scoped key
func (c *RedisReportCache) Set(ctx context.Context, companyID uuid.UUID, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(companyID, key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateCompany scans and deletes the company's report keys
func (c *RedisReportCache) InvalidateCompany(ctx context.Context, companyID uuid.UUID) error {
	pattern := reportKeyPrefix + companyID.String() + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache invalidate: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

var _ ReportCache = (*RedisReportCache)(nil)

// InMemoryReportCache is a single-process fallback, used in tests and when
// Redis is not configured
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates an empty in-memory cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{entries: make(map[string]memoryEntry)}
}

// Get unmarshals the cached payload into dest, returning ErrMiss when absent
func (c *InMemoryReportCache) Get(_ context.Context, companyID uuid.UUID, key string, dest interface{}) error {
	c.mu.RLock()
	entry, ok := c.entries[reportKey(companyID, key)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrMiss
	}
	return json.Unmarshal(entry.payload, dest)
}

// Set stores the marshalled payload under the company-scoped key
func (c *InMemoryReportCache) Set(_ context.Context, companyID uuid.UUID, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[reportKey(companyID, key)] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// InvalidateCompany drops the company's cached reports
func (c *InMemoryReportCache) InvalidateCompany(_ context.Context, companyID uuid.UUID) error {
	prefix := reportKeyPrefix + companyID.String() + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	return nil
}

var _ ReportCache = (*InMemoryReportCache)(nil)
