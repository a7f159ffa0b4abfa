package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	// List devuelve las ubicaciones ordenadas por id; kind vacío no filtra.
	List(ctx context.Context, kind string) ([]*entity.Location, error)
}
