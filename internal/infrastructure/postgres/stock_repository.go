package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación.
func (r *StockRepo) Get(ctx context.Context, productID, locationID int64) (*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Antes inserta una fila en cero si no
// existe, para que dos transacciones concurrentes sobre un par nuevo también se serialicen.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.Stock, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err = r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y ubicación).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock_levels (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct devuelve el stock del producto en cada ubicación interna, con cero donde no hay fila.
func (r *StockRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.LocationStock, error) {
	query := `
		SELECT l.id, l.name, COALESCE(sl.quantity, 0)
		FROM locations l
		LEFT JOIN stock_levels sl ON sl.location_id = l.id AND sl.product_id = $1
		WHERE l.kind = 'internal'
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.LocationStock, 0)
	for rows.Next() {
		var ls entity.LocationStock
		if err := rows.Scan(&ls.LocationID, &ls.LocationName, &ls.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &ls)
	}
	return list, rows.Err()
}

// ListAll devuelve todas las filas de stock (reconciliación).
func (r *StockRepo) ListAll(ctx context.Context) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock_levels
		ORDER BY product_id, location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Stock, 0)
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
