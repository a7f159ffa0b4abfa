package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) taken(u *entity.User) bool {
	for _, other := range r.s.users {
		if other.ID == u.ID {
			continue
		}
		if other.LoginID == u.LoginID || strings.EqualFold(other.Email, u.Email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(u) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneUser(r.s.users[id]), nil
}

func (r *UserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.LoginID == login || strings.EqualFold(u.Email, login) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.taken(u) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}
