package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// StockRepository define el puerto para la caché de stock por producto+ubicación.
// Las escrituras solo ocurren dentro de la transacción que lleva un movimiento a done.
type StockRepository interface {
	// Get y GetForUpdate devuelven un Stock con cantidad 0 si no existe la fila.
	Get(ctx context.Context, productID, locationID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// ListByProduct devuelve el stock del producto en cada ubicación interna (incluye ceros).
	ListByProduct(ctx context.Context, productID int64) ([]*entity.LocationStock, error)
	ListAll(ctx context.Context) ([]*entity.Stock, error)
}
