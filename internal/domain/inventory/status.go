// Package inventory contiene las reglas de dominio del ledger de movimientos: máquina de
// estados, emparejamiento de ubicaciones por tipo, efectos sobre el stock derivado y
// filtros del historial.
package inventory

import (
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// transitions: estado actual -> estados destino permitidos.
var transitions = map[string][]string{
	entity.StatusDraft:   {entity.StatusWaiting, entity.StatusReady, entity.StatusDone, entity.StatusCanceled},
	entity.StatusWaiting: {entity.StatusDone, entity.StatusCanceled},
	entity.StatusReady:   {entity.StatusDone, entity.StatusCanceled},
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case entity.StatusDraft, entity.StatusWaiting, entity.StatusReady, entity.StatusDone, entity.StatusCanceled:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(s string) bool {
	return s == entity.StatusDone || s == entity.StatusCanceled
}

// IsOpen indica si el movimiento está pendiente de procesar (draft, waiting o ready).
func IsOpen(s string) bool {
	return s == entity.StatusDraft || s == entity.StatusWaiting || s == entity.StatusReady
}

// CanTransition indica si from -> to es una transición válida.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CheckTransition devuelve ErrInvalidTransition con detalle si from -> to no es válida.
func CheckTransition(from, to string) error {
	if CanTransition(from, to) {
		return nil
	}
	return domain.Errorf(domain.ErrInvalidTransition, "%s -> %s", from, to)
}
