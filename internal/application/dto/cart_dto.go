package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest body para POST /api/cart/add.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CartItemResponse ítem del carrito con el precio vigente.
type CartItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito del usuario.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// OrderItemResponse línea de una orden.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse orden de la tienda web.
type OrderResponse struct {
	ID            string              `json:"id"`
	CompanyID     string              `json:"company_id"`
	BranchID      string              `json:"branch_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AdvanceOrderRequest body para PATCH /api/orders/:id/status.
type AdvanceOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=SHIPPED DELIVERED"`
}
