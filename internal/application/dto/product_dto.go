package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=64"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"omitempty,max=100"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto (solo campos presentes).
type UpdateProductRequest struct {
	SKU      *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	Search       string
	Category     string
	LowStockOnly bool
}

// ProductResponse salida de un producto con stock derivado.
// LowStock se calcula en el servidor con el umbral configurado.
type ProductResponse struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LocationStockResponse stock de un producto en una ubicación interna.
type LocationStockResponse struct {
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ProductStockResponse salida de GET /api/products/{id}/stock.
type ProductStockResponse struct {
	ProductID int64                   `json:"product_id"`
	SKU       string                  `json:"sku"`
	Total     decimal.Decimal         `json:"total"`
	Locations []LocationStockResponse `json:"locations"`
}
