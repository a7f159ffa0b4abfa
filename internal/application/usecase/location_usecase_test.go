package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func TestLocationUseCase(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	uc := NewLocationUseCase(repos.Locations)
	ctx := context.Background()

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Partners/Vendors", all[0].Name)

	shelf, err := uc.Create(ctx, manager, dto.CreateLocationRequest{Name: "WH/Shelf A", Kind: entity.LocationInternal})
	require.NoError(t, err)
	assert.Equal(t, int64(4), shelf.ID)

	internal, err := uc.List(ctx, entity.LocationInternal)
	require.NoError(t, err)
	assert.Len(t, internal, 2)

	got, err := uc.Get(ctx, shelf.ID)
	require.NoError(t, err)
	assert.Equal(t, "WH/Shelf A", got.Name)

	_, err = uc.Get(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, manager, dto.CreateLocationRequest{Name: "Scrap", Kind: "loss"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, manager, dto.CreateLocationRequest{Name: "WH/Stock", Kind: entity.LocationInternal})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, staff, dto.CreateLocationRequest{Name: "X", Kind: entity.LocationInternal})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(ctx, "loss")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
