package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de punto de venta ya confirmada. Inmutable: las correcciones son nuevas transacciones.
type Sale struct {
	ID            string
	CompanyID     string
	BranchID      string
	UserID        string // vendedor
	Total         decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem línea de venta con el precio unitario al momento de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
