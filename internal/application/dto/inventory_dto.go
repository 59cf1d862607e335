package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjust.
// Quantity es el delta (negativo para mermas); la justificación es obligatoria.
type AdjustStockRequest struct {
	BranchID      string `json:"branch_id" validate:"required"`
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"adjustment_quantity"`
	Justification string `json:"justification" validate:"required"`
}

// ReorderPointRequest body para PUT /api/inventory/reorder-point.
type ReorderPointRequest struct {
	BranchID     string `json:"branch_id"`
	ProductID    string `json:"product_id"`
	ReorderPoint int    `json:"reorder_point"`
}

// StockResponse stock de un producto en una sucursal.
type StockResponse struct {
	ProductID    string `json:"product_id"`
	BranchID     string `json:"branch_id"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
}

// MovementResponse movimiento de la bitácora de stock.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	BranchID      string    `json:"branch_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	StockAfter    int       `json:"stock_after"`
	Reference     string    `json:"reference,omitempty"`
	Justification string    `json:"justification,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
