package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// LocationUseCase registro de ubicaciones (proveedor, interna, cliente).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación. Solo managers.
func (uc *LocationUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	loc := &entity.Location{
		Name:      in.Name,
		Kind:      in.Kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	out := dto.NewLocationResponse(loc)
	return &out, nil
}

// Get obtiene una ubicación; ErrNotFound si no existe.
func (uc *LocationUseCase) Get(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "ubicación %d", id)
	}
	out := dto.NewLocationResponse(loc)
	return &out, nil
}

// List lista ubicaciones, opcionalmente por tipo.
func (uc *LocationUseCase) List(ctx context.Context, kind string) ([]dto.LocationResponse, error) {
	if kind != "" && !entity.ValidLocationKind(kind) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo de ubicación %q no soportado", kind)
	}
	locs, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, dto.NewLocationResponse(l))
	}
	return out, nil
}
