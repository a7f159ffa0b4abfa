package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// ReconcileUseCase recalcula el stock desde los movimientos done y lo compara con la caché
// stock_levels. Cualquier diferencia indica deriva entre el ledger y la caché.
type ReconcileUseCase struct {
	moveRepo  repository.MoveRepository
	stockRepo repository.StockRepository
	log       *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(moveRepo repository.MoveRepository, stockRepo repository.StockRepository, log *logger.Logger) *ReconcileUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileUseCase{moveRepo: moveRepo, stockRepo: stockRepo, log: log}
}

// Reconcile solo para managers.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, actor domain.Actor) (*dto.ReconcileResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}
	balances, err := uc.moveRepo.LedgerBalances(ctx)
	if err != nil {
		return nil, err
	}
	cached, err := uc.stockRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ledger := make(map[inventory.BalanceKey]decimal.Decimal, len(balances))
	keys := make([]inventory.BalanceKey, 0, len(balances))
	for _, b := range balances {
		k := inventory.BalanceKey{ProductID: b.ProductID, LocationID: b.LocationID}
		ledger[k] = b.Quantity
		keys = append(keys, k)
	}
	cache := make(map[inventory.BalanceKey]decimal.Decimal, len(cached))
	for _, st := range cached {
		k := inventory.BalanceKey{ProductID: st.ProductID, LocationID: st.LocationID}
		cache[k] = st.Quantity
		if _, ok := ledger[k]; !ok {
			keys = append(keys, k)
		}
	}

	out := &dto.ReconcileResponse{
		Consistent:  true,
		Checked:     len(keys),
		Differences: []dto.ReconcileDiff{},
		CheckedAt:   time.Now().UTC(),
	}
	for _, k := range keys {
		if ledger[k].Equal(cache[k]) {
			continue
		}
		out.Consistent = false
		out.Differences = append(out.Differences, dto.ReconcileDiff{
			ProductID:  k.ProductID,
			LocationID: k.LocationID,
			Ledger:     ledger[k],
			Cached:     cache[k],
		})
	}
	if !out.Consistent {
		uc.log.Warn().Int("differences", len(out.Differences)).Msg("stock en caché difiere del ledger")
	}
	return out, nil
}
