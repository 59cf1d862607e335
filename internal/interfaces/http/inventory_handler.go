package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// InventoryHandler stock por sucursal, ajustes y bitácora.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock (mermas, conteos)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Delta y justificación"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BranchID == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id y product_id son requeridos"})
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock de una sucursal (o de un producto en ella)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  true   "ID de la sucursal"
// @Param        product_id  query  string  false  "ID del producto"
// @Success      200         {array}   dto.StockResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	if productID := c.Query("product_id"); productID != "" {
		out, err := h.uc.GetStock(c.UserContext(), GetPrincipal(c), productID, branchID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListBranch(c.UserContext(), GetPrincipal(c), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReorderPoint godoc
// @Summary      Fijar punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderPointRequest  true  "Sucursal, producto y punto de reorden"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder-point [put]
func (h *InventoryHandler) ReorderPoint(c *fiber.Ctx) error {
	var in dto.ReorderPointRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetReorderPoint(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Bitácora de movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  false  "Sucursal"
// @Param        product_id  query  string  false  "Producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {array}   dto.MovementResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, err := dto.ParseDate(c.Query("from"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := dto.ParseDate(c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	page := pageFrom(c)
	out, err := h.uc.ListMovements(c.UserContext(), GetPrincipal(c), repository.MovementFilter{
		BranchID:  c.Query("branch_id"),
		ProductID: c.Query("product_id"),
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
