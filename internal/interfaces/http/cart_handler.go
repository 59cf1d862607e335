package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
)

// CartHandler carrito de la tienda web, checkout y gestión de órdenes.
type CartHandler struct {
	cart   *sales.CartUseCase
	orders *sales.OrderUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(cart *sales.CartUseCase, orders *sales.OrderUseCase) *CartHandler {
	return &CartHandler{cart: cart, orders: orders}
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.cart.AddToCart(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.cart.ListCart(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Security     Bearer
// @Param        product_id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/{product_id} [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.cart.RemoveFromCart(c.UserContext(), GetPrincipal(c), c.Params("product_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Convertir el carrito en una orden
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse  "carrito vacío o mixto"
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.cart.Checkout(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes web
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING, SHIPPED o DELIVERED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *CartHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.orders.ListOrders(c.UserContext(), GetPrincipal(c), c.Query("status"), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdvanceOrder godoc
// @Summary      Avanzar estado de una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.AdvanceOrderRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/orders/{id}/status [patch]
func (h *CartHandler) AdvanceOrder(c *fiber.Ctx) error {
	var in dto.AdvanceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.orders.AdvanceOrder(c.UserContext(), GetPrincipal(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
