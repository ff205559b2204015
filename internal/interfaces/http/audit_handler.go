package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// AuditHandler auditorías de inventario (conteo físico y reconciliación).
type AuditHandler struct {
	uc *inventory.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *inventory.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir auditoría con los conteos físicos por producto
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  dto.OpenAuditRequest  true  "Conteos de la auditoría"
// @Success      201  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenAuditRequest
	if err := c.BodyParser(&req); err != nil {
		return domainError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.Open(c.Context(), GetUserID(c), req)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar: ajusta el inventario a lo contado y cierra la auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/reconcile [post]
func (h *AuditHandler) Reconcile(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Reconcile(c.Context(), id, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener auditoría por ID
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return domainError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar auditorías
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset (default 0)"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
