package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

type fakeStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.failGet != nil {
		cmd.SetErr(f.failGet)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = ttl
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	cmd := redis.NewIntCmd(ctx, "incr", key)
	cmd.SetVal(n)
	return cmd
}

func TestDashboardCache_Ciclo(t *testing.T) {
	store := newFakeStore()
	cache := NewDashboardCache(store, time.Minute)
	ctx := context.Background()

	_, gen, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), gen)

	in := &dto.DashboardStatsResponse{TotalProducts: 3, LowStockThreshold: 10, LowStockCount: 1}
	require.NoError(t, cache.Set(ctx, gen, in))
	assert.Equal(t, time.Minute, store.ttls[SnapshotKey(0)])

	out, gen, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(0), gen)
	assert.Equal(t, int64(3), out.TotalProducts)
	assert.Equal(t, 1, out.LowStockCount)

	require.NoError(t, cache.Invalidate(ctx))
	_, gen, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestDashboardCache_SetTardioNoSeSirve(t *testing.T) {
	store := newFakeStore()
	cache := NewDashboardCache(store, time.Minute)
	ctx := context.Background()

	// Lectura: generación vigente sin snapshot, se empieza a calcular.
	_, gen, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// Un commit invalida antes de que el cálculo termine.
	require.NoError(t, cache.Invalidate(ctx))

	// El cálculo viejo se guarda igual, bajo la generación que leyó.
	require.NoError(t, cache.Set(ctx, gen, &dto.DashboardStatsResponse{LowStockCount: 1}))

	_, cur, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "un snapshot previo al commit no debe servirse")
	assert.Equal(t, gen+1, cur)

	require.NoError(t, cache.Set(ctx, cur, &dto.DashboardStatsResponse{LowStockCount: 0}))
	out, _, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, out.LowStockCount)
}

func TestDashboardCache_ErroresYEntradaCorrupta(t *testing.T) {
	store := newFakeStore()
	cache := NewDashboardCache(store, 0)
	ctx := context.Background()

	store.data[SnapshotKey(0)] = "{no-json"
	_, _, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	store.failGet = errors.New("connection refused")
	_, _, _, err = cache.Get(ctx)
	assert.ErrorContains(t, err, "connection refused")

	require.NoError(t, cache.Set(ctx, 0, &dto.DashboardStatsResponse{}))
	assert.Equal(t, defaultTTL, store.ttls[SnapshotKey(0)])
}
