package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-retail/internal/application/reporting"
)

// ReportHandler reportes de la empresa.
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Reporte de stock por sucursal y producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockReportRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Total de ventas por sucursal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        branch_id  query  string  false  "Sucursal"
// @Success      200        {array}   dto.SalesReportRow
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.SalesReport(c.UserContext(), GetPrincipal(c), reporting.SalesFilter{
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
		BranchID: c.Query("branch_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo punto de reorden con cantidad sugerida
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal"
// @Success      200        {array}   dto.LowStockRow
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetPrincipal(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
