package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email o login ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateSKU       = errors.New("el SKU ya existe")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	// ErrInsufficientStock es un caso particular de ErrInvalidInput.
	ErrInsufficientStock = fmt.Errorf("stock insuficiente: %w", ErrInvalidInput)
)

// detailed agrega detalle legible a un error de dominio sin perder errors.Is.
type detailed struct {
	kind   error
	detail string
}

func (e *detailed) Error() string { return e.kind.Error() + ": " + e.detail }
func (e *detailed) Unwrap() error { return e.kind }

// Detail devuelve el texto agregado por Errorf.
func (e *detailed) Detail() string { return e.detail }

// Errorf crea un error del tipo kind con detalle formateado.
//
//	domain.Errorf(domain.ErrNotFound, "producto %d", id)
func Errorf(kind error, format string, args ...any) error {
	return &detailed{kind: kind, detail: fmt.Sprintf(format, args...)}
}

// DetailOf devuelve el detalle de un error creado con Errorf, o "" si no tiene.
func DetailOf(err error) string {
	var d *detailed
	if errors.As(err, &d) {
		return d.detail
	}
	return ""
}
