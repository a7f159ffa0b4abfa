package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/metrics"
)

// LedgerUseCase administra el ledger de movimientos: alta (postMove), transiciones de estado
// (markReady, validate, cancel) e historial. El stock solo cambia en la transición a done,
// dentro de la misma transacción que actualiza el estado.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	moveRepo     repository.MoveRepository
	cache        ports.CacheInvalidator
	metrics      *metrics.LedgerMetrics
	log          *logger.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. cache, m y log pueden ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	moveRepo repository.MoveRepository,
	cache ports.CacheInvalidator,
	m *metrics.LedgerMetrics,
	log *logger.Logger,
) *LedgerUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		moveRepo:     moveRepo,
		cache:        cache,
		metrics:      m,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// PostMove registra un movimiento receipt/delivery/internal. Sin status (o "done") el movimiento
// se crea y se valida en la misma transacción; con "draft" queda en borrador.
func (uc *LedgerUseCase) PostMove(ctx context.Context, actor domain.Actor, in dto.CreateMoveRequest) (*dto.MoveResponse, error) {
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
	src, err := uc.location(ctx, uc.locationRepo, in.SourceID)
	if err != nil {
		return nil, err
	}
	dst, err := uc.location(ctx, uc.locationRepo, in.DestID)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateMove(in.Type, in.Quantity, src, dst); err != nil {
		return nil, err
	}

	target := in.Status
	if target == "" {
		target = entity.StatusDone
	}
	now := uc.now()
	move := &entity.StockMove{
		ProductID: product.ID,
		SourceID:  src.ID,
		DestID:    dst.ID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Status:    entity.StatusDraft,
		Reference: in.Reference,
		CreatedAt: now,
		CreatedBy: actor.UserID,
	}
	if in.ScheduledAt != nil {
		move.ScheduledAt = in.ScheduledAt.UTC()
	}
	err = uc.txRunner.Run(ctx, func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		_ repository.LocationRepository,
	) error {
		if err := moveRepo.Create(ctx, move); err != nil {
			return err
		}
		if target == entity.StatusDone {
			return complete(ctx, moveRepo, stockRepo, move, src, dst, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.committed(ctx)
	uc.metrics.MovePosted(move.Type, move.Status)
	uc.log.Info().
		Int64("move_id", move.ID).
		Str("reference", move.Code()).
		Str("type", move.Type).
		Str("status", move.Status).
		Str("quantity", move.Quantity.String()).
		Str("user_id", actor.UserID).
		Msg("movimiento registrado")
	return uc.Get(ctx, move.ID)
}

// MarkReady pasa un borrador a ready si hay stock suficiente en el origen (o el origen es un
// proveedor) y a waiting en caso contrario. Falla con ErrInvalidTransition si no está en draft.
func (uc *LedgerUseCase) MarkReady(ctx context.Context, actor domain.Actor, id int64) (*dto.MoveResponse, error) {
	var from, to string
	err := uc.transition(ctx, actor, id, func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		locationRepo repository.LocationRepository,
		move *entity.StockMove,
	) error {
		if move.Status != entity.StatusDraft {
			return domain.Errorf(domain.ErrInvalidTransition, "%s está en %s, se esperaba draft", move.Code(), move.Status)
		}
		src, err := uc.location(ctx, locationRepo, move.SourceID)
		if err != nil {
			return err
		}
		to = entity.StatusReady
		if src.IsInternal() {
			st, err := stockRepo.Get(ctx, move.ProductID, src.ID)
			if err != nil {
				return err
			}
			if st.Quantity.LessThan(move.Quantity) {
				to = entity.StatusWaiting
			}
		}
		from = move.Status
		return moveRepo.UpdateStatus(ctx, move.ID, from, to, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.transitioned(ctx, actor, id, from, to)
	return uc.Get(ctx, id)
}

// Validate lleva el movimiento a done y aplica su efecto sobre el stock. Un movimiento done o
// canceled falla con ErrInvalidTransition y nunca se aplica dos veces.
func (uc *LedgerUseCase) Validate(ctx context.Context, actor domain.Actor, id int64) (*dto.MoveResponse, error) {
	var from string
	err := uc.transition(ctx, actor, id, func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		locationRepo repository.LocationRepository,
		move *entity.StockMove,
	) error {
		from = move.Status
		src, err := uc.location(ctx, locationRepo, move.SourceID)
		if err != nil {
			return err
		}
		dst, err := uc.location(ctx, locationRepo, move.DestID)
		if err != nil {
			return err
		}
		return complete(ctx, moveRepo, stockRepo, move, src, dst, uc.now())
	})
	if err != nil {
		return nil, err
	}
	uc.transitioned(ctx, actor, id, from, entity.StatusDone)
	return uc.Get(ctx, id)
}

// Cancel cancela un movimiento no terminal. Un movimiento done no se cancela: se corrige con
// un movimiento compensatorio.
func (uc *LedgerUseCase) Cancel(ctx context.Context, actor domain.Actor, id int64) (*dto.MoveResponse, error) {
	var from string
	err := uc.transition(ctx, actor, id, func(
		moveRepo repository.MoveRepository,
		_ repository.StockRepository,
		_ repository.LocationRepository,
		move *entity.StockMove,
	) error {
		if err := inventory.CheckTransition(move.Status, entity.StatusCanceled); err != nil {
			return err
		}
		from = move.Status
		return moveRepo.UpdateStatus(ctx, move.ID, from, entity.StatusCanceled, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.transitioned(ctx, actor, id, from, entity.StatusCanceled)
	return uc.Get(ctx, id)
}

// UpdateStatus despacha PATCH /moves/{id}/status: ready -> MarkReady, done -> Validate,
// canceled -> Cancel.
func (uc *LedgerUseCase) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, in dto.UpdateMoveStatusRequest) (*dto.MoveResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	switch in.Status {
	case entity.StatusReady:
		return uc.MarkReady(ctx, actor, id)
	case entity.StatusDone:
		return uc.Validate(ctx, actor, id)
	case entity.StatusCanceled:
		return uc.Cancel(ctx, actor, id)
	}
	return nil, domain.Errorf(domain.ErrInvalidInput, "estado %q no soportado", in.Status)
}

// Get devuelve un movimiento con nombres resueltos.
func (uc *LedgerUseCase) Get(ctx context.Context, id int64) (*dto.MoveResponse, error) {
	v, err := uc.moveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "movimiento %d", id)
	}
	out := dto.NewMoveResponse(v)
	return &out, nil
}

// History lista el historial filtrado y paginado, más recientes primero.
func (uc *LedgerUseCase) History(ctx context.Context, q dto.MoveHistoryQuery) (*dto.MoveHistoryResponse, error) {
	if q.Type != "" && !inventory.ValidMoveType(q.Type) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo %q no soportado", q.Type)
	}
	if q.Status != "" && !inventory.ValidStatus(q.Status) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "estado %q no soportado", q.Status)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "rango de fechas inválido")
	}
	page, perPage, offset := inventory.NormalizePage(q.Page, q.PerPage)
	filter := inventory.MoveFilter{
		Type:      q.Type,
		Status:    q.Status,
		ProductID: q.ProductID,
		Search:    q.Search,
		From:      q.From,
		To:        q.To,
	}
	views, total, err := uc.moveRepo.Search(ctx, filter, perPage, offset)
	if err != nil {
		return nil, err
	}
	return &dto.MoveHistoryResponse{
		Items: dto.NewMoveResponses(views),
		PageResponse: dto.PageResponse{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: inventory.TotalPages(total, perPage),
		},
	}, nil
}

type transitionFn func(
	moveRepo repository.MoveRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	move *entity.StockMove,
) error

// transition bloquea el movimiento dentro de una tx y ejecuta fn sobre él.
func (uc *LedgerUseCase) transition(ctx context.Context, actor domain.Actor, id int64, fn transitionFn) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	return uc.txRunner.Run(ctx, func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		locationRepo repository.LocationRepository,
	) error {
		move, err := moveRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if move == nil {
			return domain.Errorf(domain.ErrNotFound, "movimiento %d", id)
		}
		return fn(moveRepo, stockRepo, locationRepo, move)
	})
}

func (uc *LedgerUseCase) transitioned(ctx context.Context, actor domain.Actor, id int64, from, to string) {
	uc.committed(ctx)
	uc.metrics.Transition(from, to)
	uc.log.Info().
		Int64("move_id", id).
		Str("reference", entity.FormatMoveCode(id)).
		Str("from", from).
		Str("to", to).
		Str("user_id", actor.UserID).
		Msg("transición de movimiento")
}

func (uc *LedgerUseCase) committed(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
}

func (uc *LedgerUseCase) location(ctx context.Context, repo repository.LocationRepository, id int64) (*entity.Location, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "ubicación %d", id)
	}
	return l, nil
}

// complete aplica la transición a done: bloquea las filas de stock afectadas en orden de
// ubicación, rechaza cualquier saldo negativo y cambia el estado con compare-and-swap.
// Debe ejecutarse dentro de TxRunner.Run.
func complete(
	ctx context.Context,
	moveRepo repository.MoveRepository,
	stockRepo repository.StockRepository,
	move *entity.StockMove,
	src, dst *entity.Location,
	now time.Time,
) error {
	if err := inventory.CheckTransition(move.Status, entity.StatusDone); err != nil {
		return err
	}
	for _, eff := range inventory.Effects(move, src, dst) {
		st, err := stockRepo.GetForUpdate(ctx, move.ProductID, eff.LocationID)
		if err != nil {
			return err
		}
		next := st.Quantity.Add(eff.Delta)
		if next.IsNegative() {
			return domain.Errorf(domain.ErrInsufficientStock,
				"%s: disponible %s, requerido %s", move.Code(), st.Quantity.String(), eff.Delta.Neg().String())
		}
		st.Quantity = next
		st.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, st); err != nil {
			return err
		}
	}
	if err := moveRepo.UpdateStatus(ctx, move.ID, move.Status, entity.StatusDone, &now); err != nil {
		return err
	}
	move.Status = entity.StatusDone
	move.DoneAt = &now
	return nil
}
