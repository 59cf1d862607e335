package entity

import "time"

// Inventory stock de un producto en una sucursal. Existe a lo más una fila por (producto, sucursal).
type Inventory struct {
	ProductID    string
	BranchID     string
	Stock        int
	ReorderPoint int
	UpdatedAt    time.Time
}

// BelowReorderPoint indica si el stock está en o bajo el punto de reorden.
func (i Inventory) BelowReorderPoint() bool {
	return i.ReorderPoint > 0 && i.Stock <= i.ReorderPoint
}
