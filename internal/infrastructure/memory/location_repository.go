package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	s  *Store
	tx *tx
}

// Create asigna ID; el nombre es único (ErrConflict).
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	defer r.s.lock(r.tx)()
	for _, other := range r.s.locations {
		if strings.EqualFold(other.Name, l.Name) {
			return domain.Errorf(domain.ErrConflict, "la ubicación %q ya existe", l.Name)
		}
	}
	r.s.nextLocation++
	l.ID = r.s.nextLocation
	if l.CreatedAt.IsZero() {
		l.CreatedAt = r.s.now()
	}
	r.s.locations[l.ID] = cloneLocation(l)
	id := l.ID
	r.tx.record(func() { delete(r.s.locations, id) })
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	defer r.s.rlock(r.tx)()
	return cloneLocation(r.s.locations[id]), nil
}

func (r *LocationRepo) List(_ context.Context, kind string) ([]*entity.Location, error) {
	defer r.s.rlock(r.tx)()
	out := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		if kind == "" || l.Kind == kind {
			out = append(out, cloneLocation(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
