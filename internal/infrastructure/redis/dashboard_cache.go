// Package redis implementa la caché del dashboard sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

// GenerationKey contador que avanza en cada invalidación.
const GenerationKey = "stockmaster:dashboard:gen"

// snapshotPrefix el sufijo v1 versiona el formato JSON; la generación cierra la clave.
const snapshotPrefix = "stockmaster:dashboard:v1:"

const defaultTTL = 30 * time.Second

var _ ports.DashboardCache = (*DashboardCache)(nil)

// cmdable operaciones de go-redis que usa la caché.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// DashboardCache guarda snapshots del DashboardStatsResponse con TTL, uno por generación.
// Cada commit del ledger o del catálogo avanza la generación, así que un snapshot calculado
// antes del commit queda bajo una clave que ya nadie lee y expira solo.
type DashboardCache struct {
	store cmdable
	ttl   time.Duration
}

// NewDashboardCache construye la caché sobre un cliente (o un fake en tests).
func NewDashboardCache(store cmdable, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &DashboardCache{store: store, ttl: ttl}
}

// SnapshotKey clave del snapshot de una generación.
func SnapshotKey(gen int64) string {
	return snapshotPrefix + strconv.FormatInt(gen, 10)
}

// Connect abre un cliente desde REDIS_URL y verifica conectividad.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get lee la generación vigente (0 si nunca se invalidó) y su snapshot.
func (c *DashboardCache) Get(ctx context.Context) (*dto.DashboardStatsResponse, int64, bool, error) {
	gen, err := c.store.Get(ctx, GenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("get dashboard generation: %w", err)
	}
	raw, err := c.store.Get(ctx, SnapshotKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		return nil, 0, false, fmt.Errorf("get dashboard cache: %w", err)
	}
	var stats dto.DashboardStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Entrada corrupta o de otro formato: se trata como ausente.
		return nil, gen, false, nil
	}
	return &stats, gen, true, nil
}

// Set guarda el snapshot bajo la generación leída antes de calcularlo.
func (c *DashboardCache) Set(ctx context.Context, gen int64, stats *dto.DashboardStatsResponse) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}
	if err := c.store.Set(ctx, SnapshotKey(gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set dashboard cache: %w", err)
	}
	return nil
}

// Invalidate avanza la generación; los snapshots anteriores dejan de servirse.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if err := c.store.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("invalidate dashboard cache: %w", err)
	}
	return nil
}
