package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// NewMoveResponse convierte la vista de un movimiento en su DTO de salida.
func NewMoveResponse(v *entity.StockMoveView) MoveResponse {
	return MoveResponse{
		ID:                v.ID,
		Reference:         v.Code(),
		ExternalReference: v.Reference,
		ProductID:         v.ProductID,
		ProductSKU:        v.ProductSKU,
		ProductName:       v.ProductName,
		SourceID:          v.SourceID,
		SourceName:        v.SourceName,
		DestID:            v.DestID,
		DestName:          v.DestName,
		Quantity:          v.Quantity,
		Type:              v.Type,
		Status:            v.Status,
		Reason:            v.Reason,
		ScheduledAt:       v.ScheduledAt,
		CreatedAt:         v.CreatedAt,
		DoneAt:            v.DoneAt,
		CreatedBy:         v.CreatedBy,
	}
}

// NewMoveResponses convierte una lista de vistas.
func NewMoveResponses(views []*entity.StockMoveView) []MoveResponse {
	out := make([]MoveResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewMoveResponse(v))
	}
	return out
}

// IsLowStock indica si el stock está por debajo del umbral (estricto: igual al umbral no es bajo).
func IsLowStock(stock decimal.Decimal, threshold int64) bool {
	return stock.LessThan(decimal.NewFromInt(threshold))
}

// NewProductResponse convierte un producto con stock en su DTO; low_stock usa el umbral dado.
func NewProductResponse(p *entity.ProductStock, threshold int64) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		LowStock:      IsLowStock(p.StockQuantity, threshold),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewLocationResponse convierte una ubicación en su DTO.
func NewLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Kind: l.Kind, CreatedAt: l.CreatedAt}
}
