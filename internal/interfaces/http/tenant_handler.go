package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/tenant"
)

// TenantHandler solicitudes de alta, empresas y suscripciones.
type TenantHandler struct {
	uc *tenant.TenantUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *tenant.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// SubmitRequest godoc
// @Summary      Solicitar contratación (público)
// @Tags         client-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequestCreate  true  "Datos de la empresa y plan"
// @Success      201   {object}  dto.ClientRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/client-requests [post]
func (h *TenantHandler) SubmitRequest(c *fiber.Ctx) error {
	var in dto.ClientRequestCreate
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SubmitRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRequests godoc
// @Summary      Listar solicitudes de alta
// @Tags         client-requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING, APPROVED o REJECTED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}   dto.ClientRequestResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/client-requests [get]
func (h *TenantHandler) ListRequests(c *fiber.Ctx) error {
	out, err := h.uc.ListRequests(c.UserContext(), GetPrincipal(c), c.Query("status"), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectRequest godoc
// @Summary      Rechazar solicitud pendiente
// @Tags         client-requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/client-requests/{id}/reject [post]
func (h *TenantHandler) RejectRequest(c *fiber.Ctx) error {
	if err := h.uc.RejectRequest(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteRequest godoc
// @Summary      Eliminar solicitud pendiente
// @Tags         client-requests
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/client-requests/{id} [delete]
func (h *TenantHandler) DeleteRequest(c *fiber.Ctx) error {
	if err := h.uc.DeleteRequest(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateFromRequest godoc
// @Summary      Aprobar solicitud y crear empresa con su administrador
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.CreateTenantRequest  true  "Empresa y administrador"
// @Success      200   {object}  dto.CreateTenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company/create/from_request/{id} [post]
func (h *TenantHandler) CreateFromRequest(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateTenantFromRequest(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Aplicar plan a una empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la empresa"
// @Param        body  body  dto.SubscribeRequest  true  "BASIC, STANDARD o PREMIUM"
// @Success      200   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/subscribe [post]
func (h *TenantHandler) Subscribe(c *fiber.Ctx) error {
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ApplyPlan(c.UserContext(), GetPrincipal(c), c.Params("id"), in.Plan)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCompanies godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *TenantHandler) ListCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListCompanies(c.UserContext(), GetPrincipal(c), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetCompany godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *TenantHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetCompany(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Subscription godoc
// @Summary      Suscripción de mi empresa
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscription [get]
func (h *TenantHandler) Subscription(c *fiber.Ctx) error {
	out, err := h.uc.GetSubscription(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PlanLimit godoc
// @Summary      Sucursales usadas frente al límite del plan
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlanLimitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscription/limit [get]
func (h *TenantHandler) PlanLimit(c *fiber.Ctx) error {
	out, err := h.uc.PlanLimit(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
