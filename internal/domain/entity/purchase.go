package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase recepción de mercadería de un proveedor en una sucursal.
type Purchase struct {
	ID         string
	CompanyID  string
	SupplierID string
	BranchID   string
	Date       time.Time
	UserID     string
	CreatedAt  time.Time
	Items      []PurchaseItem
}

// PurchaseItem línea de compra; UnitCost es cero cuando no se informó costo.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
}
