package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

// ProductUseCase casos de uso del catálogo. El stock no se edita aquí: se deriva de los movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
	moveRepo  repository.MoveRepository
	cache     ports.CacheInvalidator
	threshold int64
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso. lowStockThreshold define cuándo un producto
// tiene stock bajo (estrictamente menor).
func NewProductUseCase(
	repo repository.ProductRepository,
	stockRepo repository.StockRepository,
	moveRepo repository.MoveRepository,
	cache ports.CacheInvalidator,
	lowStockThreshold int64,
	log *logger.Logger,
) *ProductUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		repo:      repo,
		stockRepo: stockRepo,
		moveRepo:  moveRepo,
		cache:     cache,
		threshold: lowStockThreshold,
		log:       log,
	}
}

// Create crea un producto. SKU y nombre no pueden quedar vacíos; el SKU es único (exacto).
func (uc *ProductUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicateSKU, "sku %q", in.SKU)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.changed(ctx, "producto creado", product.ID, actor)
	out := dto.NewProductResponse(&entity.ProductStock{Product: *product, StockQuantity: decimal.Zero}, uc.threshold)
	return &out, nil
}

// Get devuelve un producto con su stock derivado.
func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	total, _, err := uc.stock(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(&entity.ProductStock{Product: *product, StockQuantity: total}, uc.threshold)
	return &out, nil
}

// Update actualiza los campos presentes. DuplicateSKU si el nuevo SKU pertenece a otro producto.
func (uc *ProductUseCase) Update(ctx context.Context, actor domain.Actor, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Errorf(domain.ErrInvalidInput, "sku es requerido")
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.Errorf(domain.ErrDuplicateSKU, "sku %q", sku)
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Errorf(domain.ErrInvalidInput, "name es requerido")
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Errorf(domain.ErrInvalidInput, "price no puede ser negativo")
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.changed(ctx, "producto actualizado", product.ID, actor)
	return uc.Get(ctx, product.ID)
}

// Delete elimina un producto sin movimientos. Con movimientos falla con ErrConflict: el
// historial del ledger nunca queda huérfano.
func (uc *ProductUseCase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := actor.RequireManager(); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	used, err := uc.moveRepo.ExistsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.Errorf(domain.ErrConflict, "el producto %d tiene movimientos registrados", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.changed(ctx, "producto eliminado", id, actor)
	return nil
}

// List lista productos con stock derivado. LowStockOnly deja los de stock menor al umbral.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp := dto.NewProductResponse(p, uc.threshold)
		if q.LowStockOnly && !resp.LowStock {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

// Stock devuelve el stock del producto por ubicación interna.
func (uc *ProductUseCase) Stock(ctx context.Context, id int64) (*dto.ProductStockResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	total, locs, err := uc.stock(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{
		ProductID: product.ID,
		SKU:       product.SKU,
		Total:     total,
		Locations: make([]dto.LocationStockResponse, 0, len(locs)),
	}
	for _, l := range locs {
		out.Locations = append(out.Locations, dto.LocationStockResponse{
			LocationID:   l.LocationID,
			LocationName: l.LocationName,
			Quantity:     l.Quantity,
		})
	}
	return out, nil
}

func (uc *ProductUseCase) find(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "producto %d", id)
	}
	return product, nil
}

func (uc *ProductUseCase) stock(ctx context.Context, id int64) (decimal.Decimal, []*entity.LocationStock, error) {
	locs, err := uc.stockRepo.ListByProduct(ctx, id)
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	for _, l := range locs {
		total = total.Add(l.Quantity)
	}
	return total, locs, nil
}

func (uc *ProductUseCase) changed(ctx context.Context, msg string, id int64, actor domain.Actor) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
	uc.log.Info().Int64("product_id", id).Str("user_id", actor.UserID).Msg(msg)
}
