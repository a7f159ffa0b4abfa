// Package analytics contiene el modelo de lectura del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

const dashboardRecentMoves = 10 // movimientos en el widget "recientes"

// DashboardUseCase calcula los KPIs del dashboard desde el catálogo y el ledger.
// Es la única fuente del umbral de stock bajo y de los conteos por tipo/estado.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	moveRepo    repository.MoveRepository
	cache       ports.DashboardCache
	threshold   int64
	log         *logger.Logger
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache y log pueden ser nil.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	moveRepo repository.MoveRepository,
	cache ports.DashboardCache,
	lowStockThreshold int64,
	log *logger.Logger,
) *DashboardUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		productRepo: productRepo,
		moveRepo:    moveRepo,
		cache:       cache,
		threshold:   lowStockThreshold,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests de "late").
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Stats devuelve los KPIs. Primero intenta la caché; un fallo de caché se registra y se
// recalcula desde el ledger sin guardar el resultado. La generación se lee antes de
// consultar el ledger: si un commit la invalida mientras tanto, el snapshot queda huérfano.
//
// Tres consultas en paralelo:
//  1. List productos       → total, stock bajo
//  2. Counts por tipo/estado → receipts, deliveries, internas
//  3. Search sin filtro    → últimos 10 movimientos
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	cached, gen, ok, err := uc.cache.Get(ctx)
	cacheable := err == nil
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché del dashboard no disponible")
	} else if ok {
		return cached, nil
	}

	now := uc.now()

	type productsResult struct {
		items []*entity.ProductStock
		err   error
	}
	type countsResult struct {
		counts []repository.MoveCount
		err    error
	}
	type recentResult struct {
		moves []*entity.StockMoveView
		err   error
	}
	productsCh := make(chan productsResult, 1)
	countsCh := make(chan countsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		items, err := uc.productRepo.List(ctx, repository.ProductFilter{})
		productsCh <- productsResult{items, err}
	}()
	go func() {
		counts, err := uc.moveRepo.Counts(ctx, now)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		moves, _, err := uc.moveRepo.Search(ctx, inventory.MoveFilter{}, dashboardRecentMoves, 0)
		recentCh <- recentResult{moves, err}
	}()

	products := <-productsCh
	counts := <-countsCh
	recent := <-recentCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recientes: %w", recent.err)
	}

	out := &dto.DashboardStatsResponse{
		TotalProducts:     int64(len(products.items)),
		LowStockThreshold: uc.threshold,
		LowStockProducts:  lowStock(products.items, uc.threshold),
		RecentMoves:       dto.NewMoveResponses(recent.moves),
		GeneratedAt:       now,
	}
	out.LowStockCount = len(out.LowStockProducts)
	aggregate(out, counts.counts)

	if cacheable {
		if err := uc.cache.Set(ctx, gen, out); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el dashboard en caché")
		}
	}
	return out, nil
}

// lowStock filtra los productos con stock < threshold, de menor a mayor stock y luego por SKU.
func lowStock(items []*entity.ProductStock, threshold int64) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0)
	for _, p := range items {
		if dto.IsLowStock(p.StockQuantity, threshold) {
			out = append(out, dto.NewProductResponse(p, threshold))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].StockQuantity.Cmp(out[j].StockQuantity); c != 0 {
			return c < 0
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// aggregate reparte los conteos por tipo/estado en los bloques del dashboard.
//   - to_process: draft, waiting o ready
//   - late: pendientes con scheduled_at anterior a ahora
//   - total: todo excepto canceled
func aggregate(out *dto.DashboardStatsResponse, counts []repository.MoveCount) {
	for _, c := range counts {
		open := inventory.IsOpen(c.Status)
		switch c.Type {
		case entity.MoveReceipt:
			if open {
				out.Receipts.ToProcess += c.Count
				out.Receipts.Late += c.Late
			}
			if c.Status != entity.StatusCanceled {
				out.Receipts.Total += c.Count
			}
		case entity.MoveDelivery:
			if open {
				out.Deliveries.ToProcess += c.Count
				out.Deliveries.Late += c.Late
			}
			if c.Status == entity.StatusWaiting {
				out.Deliveries.Waiting += c.Count
			}
			if c.Status != entity.StatusCanceled {
				out.Deliveries.Total += c.Count
			}
		case entity.MoveInternal:
			if open {
				out.InternalTransfersScheduled += c.Count
			}
		}
	}
}
