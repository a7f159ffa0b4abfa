package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create/Update devuelven domain.ErrEmailAlreadyExists si login o email ya existen.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByLogin busca por login_id o email.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
