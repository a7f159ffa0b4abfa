package dto

import "time"

// RegisterRequest entrada para registro. Role vacío registra como staff.
type RegisterRequest struct {
	LoginID  string `json:"login_id" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=manager staff"`
}

// LoginRequest entrada para login con login_id o email.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeRequest entrada de PUT /api/auth/me.
type UpdateMeRequest struct {
	LoginID *string `json:"login_id" validate:"omitempty,min=3,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Name    *string `json:"name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	LoginID   string    `json:"login_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
