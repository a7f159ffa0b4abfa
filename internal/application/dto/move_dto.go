package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMoveRequest body de POST /api/moves. Status vacío o "done" completa el movimiento en
// la misma petición; "draft" lo deja en borrador para el flujo por etapas.
type CreateMoveRequest struct {
	ProductID   int64           `json:"product_id" validate:"required,min=1"`
	SourceID    int64           `json:"source_id" validate:"required,min=1"`
	DestID      int64           `json:"dest_id" validate:"required,min=1"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	Type        string          `json:"type" validate:"required,oneof=receipt delivery internal"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft done"`
	Reference   string          `json:"reference" validate:"omitempty,max=100"`
	ScheduledAt *time.Time      `json:"scheduled_at"`
}

// UpdateMoveStatusRequest body de PATCH /api/moves/{id}/status.
//
//	ready    -> markReady (draft -> ready | waiting)
//	done     -> validate
//	canceled -> cancel
type UpdateMoveStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ready done canceled"`
}

// MoveHistoryQuery filtros y página de GET /api/moves/history.
type MoveHistoryQuery struct {
	Type      string
	Status    string
	ProductID int64
	Search    string
	From      *time.Time
	To        *time.Time
	Page      int
	PerPage   int
}

// MoveResponse salida de un movimiento. Reference es el código MV-xxxxx.
type MoveResponse struct {
	ID                int64           `json:"id"`
	Reference         string          `json:"reference"`
	ExternalReference string          `json:"external_reference,omitempty"`
	ProductID         int64           `json:"product_id"`
	ProductSKU        string          `json:"product_sku"`
	ProductName       string          `json:"product_name"`
	SourceID          int64           `json:"source_id"`
	SourceName        string          `json:"source_name"`
	DestID            int64           `json:"dest_id"`
	DestName          string          `json:"dest_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	Reason            string          `json:"reason,omitempty"`
	ScheduledAt       time.Time       `json:"scheduled_at"`
	CreatedAt         time.Time       `json:"created_at"`
	DoneAt            *time.Time      `json:"done_at,omitempty"`
	CreatedBy         string          `json:"created_by,omitempty"`
}

// MoveHistoryResponse página del historial.
type MoveHistoryResponse struct {
	Items []MoveResponse `json:"items"`
	PageResponse
}

// AdjustmentRequest body de POST /api/moves/adjustment.
type AdjustmentRequest struct {
	ProductID       int64           `json:"product_id" validate:"required,min=1"`
	LocationID      int64           `json:"location_id" validate:"required,min=1"`
	CountedQuantity decimal.Decimal `json:"counted_quantity" validate:"gte=0"`
	Reason          string          `json:"reason" validate:"omitempty,max=255"`
}

// AdjustmentResponse resultado del ajuste. MoveID es nil si la diferencia fue cero.
type AdjustmentResponse struct {
	Difference decimal.Decimal `json:"difference"`
	NewStock   decimal.Decimal `json:"new_stock"`
	MoveID     *int64          `json:"move_id,omitempty"`
}

// ReconcileDiff discrepancia entre el ledger y la caché de stock.
type ReconcileDiff struct {
	ProductID  int64           `json:"product_id"`
	LocationID int64           `json:"location_id"`
	Ledger     decimal.Decimal `json:"ledger"`
	Cached     decimal.Decimal `json:"cached"`
}

// ReconcileResponse salida de GET /api/inventory/reconcile.
type ReconcileResponse struct {
	Consistent  bool            `json:"consistent"`
	Checked     int             `json:"checked"`
	Differences []ReconcileDiff `json:"differences"`
	CheckedAt   time.Time       `json:"checked_at"`
}
