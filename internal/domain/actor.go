package domain

// Roles de operador.
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Actor es la identidad autenticada que ejecuta una operación. Viaja explícita en cada
// caso de uso; no existe identidad global.
type Actor struct {
	UserID string
	Role   string
}

// IsManager indica si el actor puede mutar catálogo, ubicaciones y ver conciliación.
func (a Actor) IsManager() bool { return a.Role == RoleManager }

// RequireManager devuelve ErrForbidden si el actor no es manager.
func (a Actor) RequireManager() error {
	if a.UserID == "" {
		return ErrUnauthorized
	}
	if !a.IsManager() {
		return Errorf(ErrForbidden, "se requiere rol %s", RoleManager)
	}
	return nil
}
