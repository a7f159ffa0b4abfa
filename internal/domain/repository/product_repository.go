package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Search compara nombre o SKU sin distinguir mayúsculas.
type ProductFilter struct {
	Search   string
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create/Update devuelven domain.ErrDuplicateSKU si el SKU ya pertenece a otro producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// List devuelve los productos con su stock derivado en ubicaciones internas, ordenados por id.
	List(ctx context.Context, filter ProductFilter) ([]*entity.ProductStock, error)
	Count(ctx context.Context) (int64, error)
}
