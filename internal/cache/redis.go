package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
)

// Connect opens a Redis client and verifies the connection. The cache
// is optional infrastructure: callers treat a connect failure as "run
// without cache", not as a startup error.
func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type cachedCostume struct {
	Costume *domain.Costume       `json:"costume"`
	Pieces  []domain.CostumePiece `json:"pieces"`
}

// CatalogCache keeps costume detail payloads in Redis. Misses and
// Redis errors both read through to the database; the cache never
// turns into a source of failures.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func costumeKey(id string) string {
	return "costume:" + id
}

func (c *CatalogCache) GetCostume(ctx context.Context, id string) (*domain.Costume, []domain.CostumePiece, bool) {
	data, err := c.rdb.Get(ctx, costumeKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WarnContext(ctx, "redis get failed, reading from database", "key", costumeKey(id), "error", err)
		}
		return nil, nil, false
	}

	var entry cachedCostume
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.WarnContext(ctx, "discarding unreadable cache entry", "key", costumeKey(id), "error", err)
		c.rdb.Del(ctx, costumeKey(id))
		return nil, nil, false
	}
	return entry.Costume, entry.Pieces, true
}

func (c *CatalogCache) SetCostume(ctx context.Context, costume *domain.Costume, pieces []domain.CostumePiece) {
	data, err := json.Marshal(cachedCostume{Costume: costume, Pieces: pieces})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, costumeKey(costume.ID), data, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "redis set failed", "key", costumeKey(costume.ID), "error", err)
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, costumeKey(id)).Err(); err != nil {
		logger.WarnContext(ctx, "redis delete failed", "key", costumeKey(id), "error", err)
	}
}
