package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, category, price, created_at, updated_at`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt)
}

// Create persiste un nuevo producto y asigna ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, category, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()), COALESCE($5::timestamptz, now()))
		RETURNING id, created_at, updated_at`
	var createdAt any
	if !product.CreatedAt.IsZero() {
		createdAt = product.CreatedAt
	}
	err := r.q.QueryRow(ctx, query,
		product.SKU, product.Name, product.Category, product.Price, createdAt,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrDuplicateSKU, "sku %q", product.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetBySKU obtiene un producto por SKU (comparación exacta).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var p entity.Product
	err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// Update actualiza SKU, nombre, categoría y precio. El stock no se toca aquí.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, category = $4, price = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.SKU, product.Name, product.Category, product.Price,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Errorf(domain.ErrNotFound, "producto %d", product.ID)
		}
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrDuplicateSKU, "sku %q", product.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el producto. La FK de stock_moves (ON DELETE RESTRICT) impide borrar
// productos con movimientos; stock_levels se borra en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrConflict, "el producto %d tiene movimientos", id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrNotFound, "producto %d", id)
	}
	return nil
}

// List devuelve productos con su stock sumado sobre ubicaciones internas.
// Search filtra por nombre o SKU (ILIKE); Category compara sin distinguir mayúsculas.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.ProductStock, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.category, p.price, p.created_at, p.updated_at,
		       COALESCE(SUM(sl.quantity) FILTER (WHERE l.kind = 'internal'), 0) AS stock_quantity
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		LEFT JOIN locations    l  ON l.id          = sl.location_id
		WHERE ($1 = '' OR p.name ILIKE $2 OR p.sku ILIKE $2)
		  AND ($3 = '' OR lower(p.category) = lower($3))
		GROUP BY p.id
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query, f.Search, likePattern(f.Search), f.Category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ProductStock, 0)
	for rows.Next() {
		var p entity.ProductStock
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.CreatedAt, &p.UpdatedAt, &p.StockQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta los productos del catálogo.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
