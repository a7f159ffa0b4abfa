package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo ledger de movimientos en memoria.
type MoveRepo struct {
	s  *Store
	tx *tx
}

// Create asigna ID y CreatedAt; ScheduledAt vacío toma CreatedAt.
func (r *MoveRepo) Create(_ context.Context, m *entity.StockMove) error {
	defer r.s.lock(r.tx)()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.Errorf(domain.ErrNotFound, "producto %d", m.ProductID)
	}
	r.s.nextMove++
	m.ID = r.s.nextMove
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	if m.ScheduledAt.IsZero() {
		m.ScheduledAt = m.CreatedAt
	}
	r.s.moves[m.ID] = cloneMove(m)
	id := m.ID
	r.tx.record(func() { delete(r.s.moves, id) })
	return nil
}

func (r *MoveRepo) GetByID(_ context.Context, id int64) (*entity.StockMoveView, error) {
	defer r.s.rlock(r.tx)()
	m, ok := r.s.moves[id]
	if !ok {
		return nil, nil
	}
	return r.s.view(m), nil
}

// GetForUpdate dentro de una tx el lock del store ya serializa el acceso.
func (r *MoveRepo) GetForUpdate(_ context.Context, id int64) (*entity.StockMove, error) {
	defer r.s.rlock(r.tx)()
	return cloneMove(r.s.moves[id]), nil
}

func (r *MoveRepo) UpdateStatus(_ context.Context, id int64, from, to string, doneAt *time.Time) error {
	defer r.s.lock(r.tx)()
	m, ok := r.s.moves[id]
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "movimiento %d", id)
	}
	if m.Status != from {
		return domain.Errorf(domain.ErrInvalidTransition, "%s ya está en %s", m.Code(), m.Status)
	}
	prev := cloneMove(m)
	next := cloneMove(m)
	next.Status = to
	if doneAt != nil {
		t := *doneAt
		next.DoneAt = &t
	}
	r.s.moves[id] = next
	r.tx.record(func() { r.s.moves[id] = prev })
	return nil
}

func (r *MoveRepo) Search(_ context.Context, f inventory.MoveFilter, limit, offset int) ([]*entity.StockMoveView, int64, error) {
	defer r.s.rlock(r.tx)()
	matched := make([]*entity.StockMoveView, 0)
	for _, m := range r.s.moves {
		v := r.s.view(m)
		if f.Matches(v) {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*entity.StockMoveView{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *MoveRepo) Counts(_ context.Context, now time.Time) ([]repository.MoveCount, error) {
	defer r.s.rlock(r.tx)()
	type key struct{ typ, status string }
	acc := make(map[key]*repository.MoveCount)
	for _, m := range r.s.moves {
		k := key{m.Type, m.Status}
		c, ok := acc[k]
		if !ok {
			c = &repository.MoveCount{Type: m.Type, Status: m.Status}
			acc[k] = c
		}
		c.Count++
		if m.ScheduledAt.Before(now) {
			c.Late++
		}
	}
	out := make([]repository.MoveCount, 0, len(acc))
	for _, c := range acc {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func (r *MoveRepo) ExistsForProduct(_ context.Context, productID int64) (bool, error) {
	defer r.s.rlock(r.tx)()
	for _, m := range r.s.moves {
		if m.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MoveRepo) LedgerBalances(_ context.Context) ([]repository.Balance, error) {
	defer r.s.rlock(r.tx)()
	views := make([]*entity.StockMoveView, 0, len(r.s.moves))
	for _, m := range r.s.moves {
		views = append(views, r.s.view(m))
	}
	balances := inventory.Balances(views)
	out := make([]repository.Balance, 0, len(balances))
	for k, q := range balances {
		out = append(out, repository.Balance{ProductID: k.ProductID, LocationID: k.LocationID, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}
