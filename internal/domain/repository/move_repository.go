package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

// MoveCount agrega movimientos por tipo y estado; Late cuenta los de scheduled_at anterior a now.
type MoveCount struct {
	Type   string
	Status string
	Count  int64
	Late   int64
}

// Balance es un saldo derivado del ledger para (producto, ubicación interna).
type Balance struct {
	ProductID  int64
	LocationID int64
	Quantity   decimal.Decimal
}

// MoveRepository define el puerto de persistencia del ledger de movimientos (DIP).
type MoveRepository interface {
	// Create inserta el movimiento y asigna ID y CreatedAt.
	Create(ctx context.Context, move *entity.StockMove) error
	GetByID(ctx context.Context, id int64) (*entity.StockMoveView, error)
	// GetForUpdate bloquea la fila del movimiento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.StockMove, error)
	// UpdateStatus cambia el estado solo si el actual es from (compare-and-swap).
	// Devuelve domain.ErrInvalidTransition si el estado ya no es from.
	UpdateStatus(ctx context.Context, id int64, from, to string, doneAt *time.Time) error
	// Search devuelve una página del historial (created_at desc, id desc) y el total filtrado.
	Search(ctx context.Context, filter inventory.MoveFilter, limit, offset int) ([]*entity.StockMoveView, int64, error)
	Counts(ctx context.Context, now time.Time) ([]MoveCount, error)
	ExistsForProduct(ctx context.Context, productID int64) (bool, error)
	// LedgerBalances recalcula el stock derivado a partir de los movimientos done.
	LedgerBalances(ctx context.Context) ([]Balance, error)
}
