package entity

import "time"

// Estados de usuario.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User es un operador del sistema (manager o staff).
type User struct {
	ID           string
	LoginID      string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // manager, staff
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
