package dto

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/pkg/validation"
)

// Validate valida las etiquetas validate del DTO. El error resultante es domain.ErrInvalidInput
// y además expone validation.Errors (detalle por campo) vía errors.As.
func Validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
