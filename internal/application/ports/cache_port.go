package ports

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

// CacheInvalidator lo llaman los casos de uso de escritura después de cada commit que
// cambia el ledger o el catálogo.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// DashboardCache guarda la última respuesta del dashboard por generación. Invalidate avanza
// la generación; un snapshot guardado con una generación anterior nunca se vuelve a servir.
// Un fallo de caché nunca debe romper la lectura: el caso de uso recalcula desde el ledger.
type DashboardCache interface {
	CacheInvalidator
	// Get devuelve la generación vigente y su snapshot; ok=false si no hay snapshot para ella.
	Get(ctx context.Context) (stats *dto.DashboardStatsResponse, gen int64, ok bool, err error)
	// Set guarda stats calculado después de leer la generación gen.
	Set(ctx context.Context, gen int64, stats *dto.DashboardStatsResponse) error
}

// NopCache caché deshabilitada (sin REDIS_URL).
type NopCache struct{}

func (NopCache) Invalidate(context.Context) error { return nil }
func (NopCache) Get(context.Context) (*dto.DashboardStatsResponse, int64, bool, error) {
	return nil, 0, false, nil
}
func (NopCache) Set(context.Context, int64, *dto.DashboardStatsResponse) error { return nil }
