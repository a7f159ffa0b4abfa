package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	return NewAuthUseCase(repos.Users, JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, domain.Actor{}, dto.RegisterRequest{
		LoginID: "operador1", Email: "Op@Example.com", Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, u.Role)
	assert.Equal(t, "op@example.com", u.Email)

	_, err = uc.RegisterUser(ctx, domain.Actor{}, dto.RegisterRequest{
		LoginID: "otro", Email: "op@example.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Login: "operador1", Password: "secreto123"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, domain.RoleStaff, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "op@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterManager_SoloPorManager(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	in := dto.RegisterRequest{LoginID: "jefe", Email: "jefe@example.com", Password: "secreto123", Role: domain.RoleManager}

	_, err := uc.RegisterUser(ctx, domain.Actor{}, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	u, err := uc.RegisterUser(ctx, domain.Actor{UserID: "root", Role: domain.RoleManager}, in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)
}

func TestMeYUpdateMe(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	a, err := uc.RegisterUser(ctx, domain.Actor{}, dto.RegisterRequest{LoginID: "ana", Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, domain.Actor{}, dto.RegisterRequest{LoginID: "beto", Email: "beto@example.com", Password: "secreto123"})
	require.NoError(t, err)
	actor := domain.Actor{UserID: a.ID, Role: a.Role}

	me, err := uc.Me(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "ana", me.LoginID)

	name := "Ana Pérez"
	updated, err := uc.UpdateMe(ctx, actor, dto.UpdateMeRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", updated.Name)

	taken := "beto"
	_, err = uc.UpdateMe(ctx, actor, dto.UpdateMeRequest{LoginID: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Me(ctx, domain.Actor{UserID: "desconocido"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
