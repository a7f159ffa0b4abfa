package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// MoveHandler maneja el ledger de movimientos: alta, transiciones, ajustes e historial.
type MoveHandler struct {
	ledger     *inventory.LedgerUseCase
	adjustment *inventory.AdjustmentUseCase
	reconcile  *inventory.ReconcileUseCase
	slips      ports.MoveSlipGenerator
}

// NewMoveHandler construye el handler. slips puede ser nil (sin comprobante PDF).
func NewMoveHandler(
	ledger *inventory.LedgerUseCase,
	adjustment *inventory.AdjustmentUseCase,
	reconcile *inventory.ReconcileUseCase,
	slips ports.MoveSlipGenerator,
) *MoveHandler {
	return &MoveHandler{ledger: ledger, adjustment: adjustment, reconcile: reconcile, slips: slips}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  status vacío o "done" completa el movimiento en la misma petición; "draft" lo deja en borrador.
// @Tags         moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMoveRequest  true  "product_id, source_id, dest_id, quantity, type"
// @Success      201   {object}  dto.MoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/moves [post]
func (h *MoveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.PostMove(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un movimiento
// @Description  ready → draft pasa a ready o waiting según disponibilidad; done valida; canceled cancela.
// @Tags         moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMoveStatusRequest  true  "status"
// @Success      200   {object}  dto.MoveResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/moves/{id}/status [patch]
func (h *MoveHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateMoveStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.UpdateStatus(c.UserContext(), ActorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjustment godoc
// @Summary      Ajuste por conteo físico
// @Tags         moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, location_id, counted_quantity"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/moves/adjustment [post]
func (h *MoveHandler) Adjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.adjustment.ApplyAdjustment(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         moves
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "receipt | delivery | internal | adjustment"
// @Param        status      query  string  false  "draft | waiting | ready | done | canceled"
// @Param        product_id  query  int     false  "Producto"
// @Param        search      query  string  false  "MV-00042, referencia, producto o ubicación"
// @Param        from        query  string  false  "RFC3339 o YYYY-MM-DD (inclusive)"
// @Param        to          query  string  false  "RFC3339 (exclusivo) o YYYY-MM-DD (día completo)"
// @Param        page        query  int     false  "Página"      default(1)
// @Param        per_page    query  int     false  "Por página"  default(10)
// @Success      200  {object}  dto.MoveHistoryResponse
// @Router       /api/moves/history [get]
func (h *MoveHandler) History(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c.Query("from"), false)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseTimeQuery(c.Query("to"), true)
	if err != nil {
		return writeError(c, err)
	}
	q := dto.MoveHistoryQuery{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		ProductID: int64(c.QueryInt("product_id", 0)),
		Search:    c.Query("search"),
		From:      from,
		To:        to,
		Page:      c.QueryInt("page", 1),
		PerPage:   c.QueryInt("per_page", 0),
	}
	out, err := h.ledger.History(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de movimiento
// @Tags         moves
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/moves/{id} [get]
func (h *MoveHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Slip godoc
// @Summary      Comprobante PDF de un movimiento hecho
// @Tags         moves
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/moves/{id}/slip.pdf [get]
func (h *MoveHandler) Slip(c *fiber.Ctx) error {
	if h.slips == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "comprobantes PDF deshabilitados"})
	}
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	move, err := h.ledger.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if move.Status != entity.StatusDone {
		return writeError(c, domain.Errorf(domain.ErrConflict, "%s no está hecho", move.Reference))
	}
	doc, err := h.slips.GenerateMoveSlip(move)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+move.Reference+`.pdf"`)
	return c.Send(doc)
}

// Reconcile godoc
// @Summary      Conciliar stock en caché contra el ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [get]
func (h *MoveHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Reconcile(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseTimeQuery acepta RFC3339 o YYYY-MM-DD. Con endOfDay, una fecha sin hora cubre el día
// completo (el filtro "to" es exclusivo).
func parseTimeQuery(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "fecha inválida %q", v)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
