package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado: el estado del movimiento y su efecto
// sobre el stock se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		moveRepo repository.MoveRepository,
		stockRepo repository.StockRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
