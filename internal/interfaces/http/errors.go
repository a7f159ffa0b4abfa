package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/pkg/validation"
)

// errorMapping traduce errores de dominio a status y código HTTP. El orden importa:
// ErrInsufficientStock envuelve ErrInvalidInput y debe evaluarse antes.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicateSKU, fiber.StatusConflict, "DUPLICATE_SKU"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError responde con el ErrorResponse correspondiente a err. Errores no reconocidos
// son 500 y su texto no se expone.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if !errors.Is(err, m.err) {
			continue
		}
		resp := dto.ErrorResponse{Code: m.code, Message: err.Error()}
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			resp.Details = verrs
		}
		return c.Status(m.status).JSON(resp)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Errorf(domain.ErrInvalidInput, "id inválido")
	}
	return id, nil
}
