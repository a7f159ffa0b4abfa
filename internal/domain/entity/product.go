package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock NO vive aquí: se deriva del ledger
// de movimientos (ver StockMove) y se expone en las vistas de lectura.
type Product struct {
	ID        int64
	SKU       string // único, sensible a mayúsculas
	Name      string
	Category  string // opcional
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductStock es un producto con su stock derivado (suma sobre ubicaciones internas).
type ProductStock struct {
	Product
	StockQuantity decimal.Decimal
}
