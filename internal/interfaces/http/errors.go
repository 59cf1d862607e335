package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
)

// codes código estable por error de dominio para el cuerpo de la respuesta.
var codes = []struct {
	err  error
	code string
}{
	{domain.ErrUnauthorized, "UNAUTHORIZED"},
	{domain.ErrCrossTenantAccess, "CROSS_TENANT"},
	{domain.ErrNoCompany, "NO_COMPANY"},
	{domain.ErrForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTaxID, "INVALID_RUT"},
	{domain.ErrInvalidPlan, "INVALID_PLAN"},
	{domain.ErrInvalidDate, "INVALID_DATE"},
	{domain.ErrEmptyTransaction, "EMPTY_TRANSACTION"},
	{domain.ErrEmptyCart, "EMPTY_CART"},
	{domain.ErrMixedTenantCart, "MIXED_TENANT_CART"},
	{domain.ErrNoDispatchBranch, "NO_DISPATCH_BRANCH"},
	{domain.ErrNotInInventory, "NOT_IN_INVENTORY"},
	{domain.ErrInvalidValue, "VALIDATION"},
	{domain.ErrPlanLimitExceeded, "PLAN_LIMIT_EXCEEDED"},
	{domain.ErrNoSubscription, "NO_SUBSCRIPTION"},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicateTenant, "DUPLICATE_TENANT"},
	{domain.ErrDuplicateKey, "DUPLICATE"},
	{domain.ErrRequestNotPending, "REQUEST_NOT_PENDING"},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION"},
	{domain.ErrInUse, "IN_USE"},
}

// StatusOf traduce un error de dominio a su código HTTP.
func StatusOf(err error) int {
	if errors.Is(err, domain.ErrUnauthorized) {
		return fiber.StatusUnauthorized
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindAuthorization:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe {code, message}. Los errores internos no exponen su detalle.
func respondError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
	code := "ERROR"
	for _, e := range codes {
		if errors.Is(err, e.err) {
			code = e.code
			break
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler manejador global de fiber: errores de fiber conservan su código,
// el resto pasa por el mapeo de dominio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}

// pageFrom lee limit/offset de la query (por defecto 20, máximo 100).
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return dto.PageRequest{Limit: limit, Offset: offset}
}
