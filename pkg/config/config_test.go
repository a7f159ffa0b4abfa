package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.App.StorageDriver)
	assert.True(t, cfg.App.MetricsEnabled)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, int64(10), cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(0), cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.DB.HealthCheckPeriod)
	assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("INVENTORY_LOW_STOCK_THRESHOLD", "5")
	v.Set("REDIS_URL", "redis://localhost:6379/0")
	v.Set("MIGRATE_ON_START", "true")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_MAX_CONNS", "40")
	v.Set("DB_MIN_CONNS", "4")
	v.Set("DB_MAX_CONN_LIFETIME_MINUTES", "15")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.App.StorageDriver)
	assert.Equal(t, int64(5), cfg.Inventory.LowStockThreshold)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.App.MigrateOnStart)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, int32(40), cfg.DB.MaxConns)
	assert.Equal(t, int32(4), cfg.DB.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.DB.MaxConnLifetime)
}

func TestFromViper_PoolInvalido(t *testing.T) {
	for name, kv := range map[string][2]string{
		"max cero":     {"DB_MAX_CONNS", "0"},
		"min mayor":    {"DB_MIN_CONNS", "50"},
		"min negativo": {"DB_MIN_CONNS", "-1"},
	} {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			v.Set(kv[0], kv[1])
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
