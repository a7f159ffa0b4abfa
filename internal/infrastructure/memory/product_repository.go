package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/textmatch"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) skuTaken(sku string, exceptID int64) bool {
	for _, p := range r.s.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Create asigna ID. SKU repetido (comparación exacta) devuelve ErrDuplicateSKU.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, 0) {
		return domain.Errorf(domain.ErrDuplicateSKU, "sku %q", p.SKU)
	}
	r.s.nextProduct++
	p.ID = r.s.nextProduct
	now := r.s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneProduct(r.s.products[id]), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "producto %d", p.ID)
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.Errorf(domain.ErrDuplicateSKU, "sku %q", p.SKU)
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// Delete elimina el producto y sus filas de stock. El caso de uso verifica antes que no
// tenga movimientos.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.Errorf(domain.ErrNotFound, "producto %d", id)
	}
	for _, m := range r.s.moves {
		if m.ProductID == id {
			return domain.Errorf(domain.ErrConflict, "el producto %d tiene movimientos", id)
		}
	}
	delete(r.s.products, id)
	for k := range r.s.stock {
		if k.productID == id {
			delete(r.s.stock, k)
		}
	}
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.ProductStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(map[int64]decimal.Decimal)
	for k, st := range r.s.stock {
		if r.s.locations[k.locationID].IsInternal() {
			totals[k.productID] = totals[k.productID].Add(st.Quantity)
		}
	}
	out := make([]*entity.ProductStock, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if !textmatch.Contains(f.Search, p.Name, p.SKU) {
			continue
		}
		out = append(out, &entity.ProductStock{Product: *p, StockQuantity: totals[p.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.products)), nil
}
