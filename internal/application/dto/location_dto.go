package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Kind string `json:"kind" validate:"required,oneof=vendor internal customer"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
