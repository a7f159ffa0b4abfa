package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/pkg/config"
)

func TestPoolConfig_TomaTamanosDeConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "stock", SSLMode: "disable",
		MaxConns:          40,
		MinConns:          4,
		MaxConnLifetime:   15 * time.Minute,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 20 * time.Second,
		ConnectTimeout:    3 * time.Second,
	}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(40), pc.MaxConns)
	assert.Equal(t, int32(4), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 20*time.Second, pc.HealthCheckPeriod)
	assert.Equal(t, 3*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "stock", pc.ConnConfig.Database)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@ledger.internal:6543/inv?sslmode=disable&application_name=worker",
		Host:        "ignorado",
		MaxConns:    8,
	}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "ledger.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "inv", pc.ConnConfig.Database)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, "worker", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
