package entity

import "time"

// Tipos de ubicación.
const (
	LocationVendor   = "vendor"   // frontera: proveedor, no lleva stock
	LocationInternal = "internal" // bodega real
	LocationCustomer = "customer" // frontera: cliente, no lleva stock
)

// Location es una ubicación origen/destino de movimientos.
type Location struct {
	ID        int64
	Name      string
	Kind      string
	CreatedAt time.Time
}

// IsInternal indica si la ubicación lleva stock contable.
func (l *Location) IsInternal() bool { return l != nil && l.Kind == LocationInternal }

// ValidLocationKind indica si kind es un tipo de ubicación soportado.
func ValidLocationKind(kind string) bool {
	switch kind {
	case LocationVendor, LocationInternal, LocationCustomer:
		return true
	}
	return false
}
