package entity

import "time"

// MovementType origen de un movimiento de stock.
type MovementType string

const (
	MovementSale       MovementType = "SALE"
	MovementPurchase   MovementType = "PURCHASE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementOrder      MovementType = "ORDER"
)

// StockMovement registro de auditoría de cada cambio en el inventario.
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	BranchID      string
	Type          MovementType
	Quantity      int    // delta aplicado: positivo entra, negativo sale
	StockAfter    int    // stock resultante
	Reference     string // venta, compra u orden que lo originó
	Justification string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
