package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// QuantityScale es la cantidad máxima de decimales que guarda el ledger (NUMERIC(18,4)).
const QuantityScale = 4

// fitsScale indica si q se representa sin redondeo con QuantityScale decimales.
func fitsScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale))
}

// ValidPostType indica si el tipo puede crearse con postMove. Los ajustes solo los crea
// el motor de ajustes.
func ValidPostType(t string) bool {
	switch t {
	case entity.MoveReceipt, entity.MoveDelivery, entity.MoveInternal:
		return true
	}
	return false
}

// ValidMoveType indica si t es un tipo de movimiento conocido (incluye adjustment).
func ValidMoveType(t string) bool {
	return ValidPostType(t) || t == entity.MoveAdjustment
}

// ValidateMove verifica cantidad, tipo y emparejamiento de ubicaciones de un movimiento nuevo.
//
//	receipt:  vendor   -> internal
//	delivery: internal -> customer
//	internal: internal -> internal (origen distinto de destino)
func ValidateMove(moveType string, qty decimal.Decimal, src, dst *entity.Location) error {
	if !ValidPostType(moveType) {
		return domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento %q no soportado", moveType)
	}
	if !qty.IsPositive() {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad debe ser mayor que 0")
	}
	if !fitsScale(qty) {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad admite como máximo %d decimales", QuantityScale)
	}
	if src == nil || dst == nil {
		return domain.Errorf(domain.ErrInvalidInput, "origen y destino son requeridos")
	}
	var wantSrc, wantDst string
	switch moveType {
	case entity.MoveReceipt:
		wantSrc, wantDst = entity.LocationVendor, entity.LocationInternal
	case entity.MoveDelivery:
		wantSrc, wantDst = entity.LocationInternal, entity.LocationCustomer
	case entity.MoveInternal:
		wantSrc, wantDst = entity.LocationInternal, entity.LocationInternal
	}
	if src.Kind != wantSrc {
		return domain.Errorf(domain.ErrInvalidInput, "%s requiere origen %s, %q es %s", moveType, wantSrc, src.Name, src.Kind)
	}
	if dst.Kind != wantDst {
		return domain.Errorf(domain.ErrInvalidInput, "%s requiere destino %s, %q es %s", moveType, wantDst, dst.Name, dst.Kind)
	}
	if moveType == entity.MoveInternal && src.ID == dst.ID {
		return domain.Errorf(domain.ErrInvalidInput, "una transferencia interna requiere origen y destino distintos")
	}
	return nil
}

// ValidateAdjustment verifica las precondiciones de un conteo físico.
func ValidateAdjustment(loc *entity.Location, counted decimal.Decimal) error {
	if loc == nil {
		return domain.Errorf(domain.ErrInvalidInput, "ubicación requerida")
	}
	if !loc.IsInternal() {
		return domain.Errorf(domain.ErrInvalidInput, "los ajustes solo aplican a ubicaciones internas, %q es %s", loc.Name, loc.Kind)
	}
	if counted.IsNegative() {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad contada no puede ser negativa")
	}
	if !fitsScale(counted) {
		return domain.Errorf(domain.ErrInvalidInput, "la cantidad contada admite como máximo %d decimales", QuantityScale)
	}
	return nil
}
