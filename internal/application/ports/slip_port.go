package ports

import "github.com/jhoicas/stockmaster-api/internal/application/dto"

// MoveSlipGenerator genera el comprobante PDF de un movimiento (recepción, entrega, transferencia).
type MoveSlipGenerator interface {
	GenerateMoveSlip(move *dto.MoveResponse) ([]byte, error)
}
