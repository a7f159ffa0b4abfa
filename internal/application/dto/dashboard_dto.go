package dto

import "time"

// ReceiptStats KPIs de recepciones.
type ReceiptStats struct {
	ToProcess int64 `json:"to_process"`
	Late      int64 `json:"late"`
	Total     int64 `json:"total"`
}

// DeliveryStats KPIs de entregas.
type DeliveryStats struct {
	ToProcess int64 `json:"to_process"`
	Late      int64 `json:"late"`
	Waiting   int64 `json:"waiting"`
	Total     int64 `json:"total"`
}

// DashboardStatsResponse respuesta de GET /api/dashboard. Es la única fuente de los
// indicadores de stock bajo y operaciones pendientes; la UI solo los muestra.
type DashboardStatsResponse struct {
	TotalProducts              int64             `json:"total_products"`
	LowStockThreshold          int64             `json:"low_stock_threshold"`
	LowStockCount              int               `json:"low_stock_count"`
	LowStockProducts           []ProductResponse `json:"low_stock_products"`
	RecentMoves                []MoveResponse    `json:"recent_moves"`
	Receipts                   ReceiptStats      `json:"receipts"`
	Deliveries                 DeliveryStats     `json:"deliveries"`
	InternalTransfersScheduled int64             `json:"internal_transfers_scheduled"`
	GeneratedAt                time.Time         `json:"generated_at"`
}
