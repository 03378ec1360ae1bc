package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Faturacao-api/internal/application/billing"
	"github.com/jhoicas/Faturacao-api/internal/application/reporting"
)

var (
	_ reporting.ReportCache     = (*RedisReportCache)(nil)
	_ billing.ReportInvalidator = (*RedisReportCache)(nil)
)

const defaultTTL = 15 * time.Minute

// RedisReportCache relatórios serializados en JSON. Cada empresa tiene un contador
// de versión; las claves incluyen la versión vigente, así invalidar es un INCR.
type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisReportCache ttl <= 0 usa 15 minutos.
func NewRedisReportCache(rdb *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

func versionKey(companyID string) string {
	return fmt.Sprintf("reports:%s:version", companyID)
}

// Version versión vigente de la empresa; 0 si nunca se invalidó.
func (c *RedisReportCache) Version(ctx context.Context, companyID string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(companyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return v, nil
}

// Get decodifica la entrada en dest. false si no existe.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value con el TTL configurado.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate sube la versión de la empresa.
func (c *RedisReportCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.rdb.Incr(ctx, versionKey(companyID)).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}
