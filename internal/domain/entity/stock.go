package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es la caché materializada del stock de un producto en una ubicación interna.
// Solo se modifica en la misma transacción que lleva un movimiento a done.
type Stock struct {
	ProductID  int64
	LocationID int64
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// LocationStock es el stock de un producto en una ubicación, con el nombre de la ubicación.
type LocationStock struct {
	LocationID   int64
	LocationName string
	Quantity     decimal.Decimal
}
