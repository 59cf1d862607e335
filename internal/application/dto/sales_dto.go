package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. UnitPrice nulo usa el precio vigente del catálogo.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	BranchID      string            `json:"branch_id" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required,max=50"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de una venta registrada.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	BranchID      string             `json:"branch_id"`
	UserID        string             `json:"user_id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}

// PurchaseItemRequest línea de compra; UnitCost opcional actualiza el costo promedio.
type PurchaseItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RegisterPurchaseRequest body para POST /api/purchases. Date en formato YYYY-MM-DD.
type RegisterPurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	BranchID   string                `json:"branch_id" validate:"required"`
	Date       string                `json:"date" validate:"required"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseResponse acuse de la compra registrada con el stock resultante por producto.
type PurchaseResponse struct {
	ID         string         `json:"id"`
	SupplierID string         `json:"supplier_id"`
	BranchID   string         `json:"branch_id"`
	Date       string         `json:"date"`
	Items      int            `json:"items"`
	Stock      map[string]int `json:"stock"`
}
