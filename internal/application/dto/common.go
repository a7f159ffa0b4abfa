package dto

// PageResponse metadatos de página en respuestas paginadas (offset por página).
type PageResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva errores por campo en validaciones.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse respuesta simple de texto.
type MessageResponse struct {
	Message string `json:"message"`
}
