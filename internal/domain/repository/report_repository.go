package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockRow fila del reporte de stock (inventario de todas las sucursales de la empresa).
type StockRow struct {
	BranchID     string
	BranchName   string
	ProductID    string
	ProductName  string
	SKU          string
	Stock        int
	ReorderPoint int
}

// BranchSalesRow total de ventas de una sucursal.
type BranchSalesRow struct {
	BranchID   string
	BranchName string
	Total      decimal.Decimal
	Count      int
}

// ReportRepository consultas de solo lectura; nunca se ejecutan dentro de una transacción de escritura.
type ReportRepository interface {
	// StockSnapshot ordena por nombre de sucursal y luego de producto.
	StockSnapshot(ctx context.Context, companyID string) ([]StockRow, error)
	// SalesByBranch agrupa por sucursal, total descendente.
	SalesByBranch(ctx context.Context, f SaleFilter) ([]BranchSalesRow, error)
	// BelowReorderPoint filas con stock <= punto de reorden (> 0). branchID vacío = todas.
	BelowReorderPoint(ctx context.Context, companyID, branchID string) ([]StockRow, error)
}
