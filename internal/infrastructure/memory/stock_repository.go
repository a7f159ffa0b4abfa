package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo caché de stock por producto+ubicación en memoria.
type StockRepo struct {
	s  *Store
	tx *tx
}

func (r *StockRepo) get(productID, locationID int64) *entity.Stock {
	if st, ok := r.s.stock[stockKey{productID, locationID}]; ok {
		c := *st
		return &c
	}
	return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
}

func (r *StockRepo) Get(_ context.Context, productID, locationID int64) (*entity.Stock, error) {
	defer r.s.rlock(r.tx)()
	return r.get(productID, locationID), nil
}

func (r *StockRepo) GetForUpdate(_ context.Context, productID, locationID int64) (*entity.Stock, error) {
	defer r.s.rlock(r.tx)()
	return r.get(productID, locationID), nil
}

func (r *StockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	defer r.s.lock(r.tx)()
	k := stockKey{st.ProductID, st.LocationID}
	prev, existed := r.s.stock[k]
	c := *st
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = r.s.now()
	}
	r.s.stock[k] = &c
	r.tx.record(func() {
		if existed {
			r.s.stock[k] = prev
		} else {
			delete(r.s.stock, k)
		}
	})
	return nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.LocationStock, error) {
	defer r.s.rlock(r.tx)()
	out := make([]*entity.LocationStock, 0)
	for _, l := range r.s.locations {
		if !l.IsInternal() {
			continue
		}
		out = append(out, &entity.LocationStock{
			LocationID:   l.ID,
			LocationName: l.Name,
			Quantity:     r.get(productID, l.ID).Quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

func (r *StockRepo) ListAll(_ context.Context) ([]*entity.Stock, error) {
	defer r.s.rlock(r.tx)()
	out := make([]*entity.Stock, 0, len(r.s.stock))
	for _, st := range r.s.stock {
		c := *st
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}
