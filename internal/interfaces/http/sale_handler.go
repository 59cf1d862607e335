package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
)

// SaleHandler ventas de punto de venta y compras a proveedores.
type SaleHandler struct {
	sales     *sales.SaleUseCase
	purchases *sales.PurchaseUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(s *sales.SaleUseCase, p *sales.PurchaseUseCase) *SaleHandler {
	return &SaleHandler{sales: s, purchases: p}
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Sucursal, medio de pago e ítems"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.sales.RegisterSale(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {array}   dto.SaleResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *fiber.Ctx) error {
	out, err := h.sales.ListSales(c.UserContext(), GetPrincipal(c), sales.SaleFilter{
		BranchID: c.Query("branch_id"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		Page:     pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSale godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.sales.GetSale(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterPurchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "Proveedor, sucursal, fecha e ítems"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *SaleHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchases.RegisterPurchase(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
