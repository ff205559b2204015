package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// InventoryHandler consultas de solo lectura sobre el ledger (protegido).
type InventoryHandler struct {
	uc *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetLevel godoc
// @Summary      Nivel de stock de un producto en una bodega (sin fila = 0)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.InventoryLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/level [get]
func (h *InventoryHandler) GetLevel(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	out, err := h.uc.GetLevel(GetRole(c), productID, warehouseID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Niveles de stock de una bodega (producto anidado proyectado por rol)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.InventoryLevelListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/warehouses/{id} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID := c.Params("id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListByWarehouse(GetRole(c), warehouseID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListMovements(productID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
