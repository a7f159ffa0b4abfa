package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MoveReceipt    = "receipt"    // proveedor -> interna
	MoveDelivery   = "delivery"   // interna -> cliente
	MoveInternal   = "internal"   // interna -> interna
	MoveAdjustment = "adjustment" // corrección por conteo físico, cantidad con signo
)

// Estados de movimiento.
const (
	StatusDraft    = "draft"
	StatusWaiting  = "waiting"
	StatusReady    = "ready"
	StatusDone     = "done"
	StatusCanceled = "canceled"
)

// StockMove es un registro del ledger: una cantidad de un producto entre dos ubicaciones.
// Para MoveAdjustment SourceID == DestID y Quantity lleva signo.
type StockMove struct {
	ID          int64
	ProductID   int64
	SourceID    int64
	DestID      int64
	Quantity    decimal.Decimal
	Type        string
	Status      string
	Reference   string // referencia externa opcional (orden de compra, remisión)
	Reason      string // solo ajustes
	ScheduledAt time.Time
	CreatedAt   time.Time
	DoneAt      *time.Time
	CreatedBy   string
}

// Code es la referencia visible del movimiento: MV-00042.
func (m *StockMove) Code() string { return FormatMoveCode(m.ID) }

// FormatMoveCode formatea un id de movimiento como MV-<id con 5 dígitos>.
func FormatMoveCode(id int64) string { return fmt.Sprintf("MV-%05d", id) }

// StockMoveView es un movimiento con los nombres resueltos para listados e historial.
type StockMoveView struct {
	StockMove
	ProductSKU  string
	ProductName string
	SourceName  string
	SourceKind  string
	DestName    string
	DestKind    string
}
