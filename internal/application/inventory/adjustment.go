package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/metrics"
)

// AdjustmentUseCase concilia un conteo físico contra el stock derivado y registra el
// movimiento de ajuste por la diferencia.
type AdjustmentUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	cache        ports.CacheInvalidator
	metrics      *metrics.LedgerMetrics
	log          *logger.Logger
	now          func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso. cache, m y log pueden ser nil.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	cache ports.CacheInvalidator,
	m *metrics.LedgerMetrics,
	log *logger.Logger,
) *AdjustmentUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustmentUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		cache:        cache,
		metrics:      m,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ApplyAdjustment calcula difference = counted - stock actual en la ubicación. Si es cero no
// escribe nada (idempotente); si no, registra un movimiento adjustment done con la cantidad
// con signo y devuelve el nuevo stock.
func (uc *AdjustmentUseCase) ApplyAdjustment(ctx context.Context, actor domain.Actor, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "producto %d", in.ProductID)
	}
	loc, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "ubicación %d", in.LocationID)
	}
	if err := inventory.ValidateAdjustment(loc, in.CountedQuantity); err != nil {
		return nil, err
	}

	out := &dto.AdjustmentResponse{}
	var move *entity.StockMove
	now := uc.now()
	err = uc.txRunner.Run(ctx, func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		_ repository.LocationRepository,
	) error {
		st, err := stockRepo.GetForUpdate(ctx, product.ID, loc.ID)
		if err != nil {
			return err
		}
		diff := in.CountedQuantity.Sub(st.Quantity)
		out.Difference = diff
		out.NewStock = st.Quantity
		if diff.IsZero() {
			return nil
		}
		move = &entity.StockMove{
			ProductID: product.ID,
			SourceID:  loc.ID,
			DestID:    loc.ID,
			Quantity:  diff,
			Type:      entity.MoveAdjustment,
			Status:    entity.StatusDraft,
			Reason:    in.Reason,
			CreatedAt: now,
			CreatedBy: actor.UserID,
		}
		if err := moveRepo.Create(ctx, move); err != nil {
			return err
		}
		if err := complete(ctx, moveRepo, stockRepo, move, loc, loc, now); err != nil {
			return err
		}
		out.NewStock = st.Quantity.Add(diff)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Adjustment(move != nil)
	if move == nil {
		out.Difference = decimal.Zero
		return out, nil
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
	uc.metrics.MovePosted(move.Type, move.Status)
	id := move.ID
	out.MoveID = &id
	uc.log.Info().
		Int64("move_id", move.ID).
		Int64("product_id", product.ID).
		Int64("location_id", loc.ID).
		Str("difference", out.Difference.String()).
		Str("new_stock", out.NewStock.String()).
		Str("user_id", actor.UserID).
		Msg("ajuste de inventario aplicado")
	return out, nil
}
