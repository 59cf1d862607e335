package dto

import "github.com/shopspring/decimal"

// StockReportRow fila del reporte de stock.
type StockReportRow struct {
	BranchID     string `json:"branch_id"`
	BranchName   string `json:"branch"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product"`
	SKU          string `json:"sku"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
	BelowReorder bool   `json:"below_reorder"`
}

// SalesReportRow total de ventas por sucursal.
type SalesReportRow struct {
	BranchID   string          `json:"branch_id"`
	BranchName string          `json:"branch"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Count      int             `json:"count"`
}

// LowStockRow producto bajo punto de reorden con la cantidad sugerida a reponer.
type LowStockRow struct {
	BranchID     string `json:"branch_id"`
	BranchName   string `json:"branch"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product"`
	SKU          string `json:"sku"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
	SuggestedQty int    `json:"suggested_qty"` // reorder_point * 1.5 - stock
	Priority     int    `json:"priority"`      // 1 = más urgente
}
