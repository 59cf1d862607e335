// Package reporting consultas agregadas de solo lectura: stock, ventas por sucursal y reposición.
package reporting

import (
	"context"
	"sort"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// SalesFilter filtros del reporte de ventas. Fechas YYYY-MM-DD inclusivas por día.
type SalesFilter struct {
	DateFrom string
	DateTo   string
	BranchID string
}

// ReportUseCase reportes de la empresa del principal. Nunca corre dentro de una transacción.
type ReportUseCase struct {
	reports  repository.ReportRepository
	branches repository.BranchRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reports repository.ReportRepository, branches repository.BranchRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, branches: branches}
}

func (uc *ReportUseCase) company(p access.Principal) (string, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return "", err
	}
	if err := access.Authorize(p, access.ActionViewReports, companyID); err != nil {
		return "", err
	}
	return companyID, nil
}

// StockReport inventario de todas las sucursales, por sucursal y luego producto.
func (uc *ReportUseCase) StockReport(ctx context.Context, p access.Principal) ([]dto.StockReportRow, error) {
	companyID, err := uc.company(p)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.StockSnapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockReportRow{
			BranchID:     r.BranchID,
			BranchName:   r.BranchName,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			SKU:          r.SKU,
			Stock:        r.Stock,
			ReorderPoint: r.ReorderPoint,
			BelowReorder: r.ReorderPoint > 0 && r.Stock <= r.ReorderPoint,
		})
	}
	return out, nil
}

// SalesReport total vendido por sucursal en el período, de mayor a menor.
func (uc *ReportUseCase) SalesReport(ctx context.Context, p access.Principal, f SalesFilter) ([]dto.SalesReportRow, error) {
	companyID, err := uc.company(p)
	if err != nil {
		return nil, err
	}
	from, err := dto.ParseDate(f.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate(f.DateTo)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidDate
	}
	if f.BranchID != "" {
		if _, err := guard.Branch(ctx, uc.branches, p, access.ActionViewReports, f.BranchID); err != nil {
			return nil, err
		}
	}
	rows, err := uc.reports.SalesByBranch(ctx, repository.SaleFilter{
		CompanyID: companyID,
		BranchID:  f.BranchID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportRow{
			BranchID:   r.BranchID,
			BranchName: r.BranchName,
			TotalSales: r.Total,
			Count:      r.Count,
		})
	}
	return out, nil
}

// LowStock lista de reposición: filas en o bajo el punto de reorden con la cantidad sugerida
// para volver a 1.5 veces el punto de reorden. Prioridad 1 = mayor déficit relativo.
func (uc *ReportUseCase) LowStock(ctx context.Context, p access.Principal, branchID string) ([]dto.LowStockRow, error) {
	companyID, err := uc.company(p)
	if err != nil {
		return nil, err
	}
	if branchID != "" {
		if _, err := guard.Branch(ctx, uc.branches, p, access.ActionViewReports, branchID); err != nil {
			return nil, err
		}
	}
	rows, err := uc.reports.BelowReorderPoint(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockRow, 0, len(rows))
	for _, r := range rows {
		ideal := (r.ReorderPoint*3 + 1) / 2
		suggested := ideal - r.Stock
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, dto.LowStockRow{
			BranchID:     r.BranchID,
			BranchName:   r.BranchName,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			SKU:          r.SKU,
			Stock:        r.Stock,
			ReorderPoint: r.ReorderPoint,
			SuggestedQty: suggested,
		})
	}
	// Déficit relativo (reorden - stock) / reorden, comparado sin división.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		da := (a.ReorderPoint - a.Stock) * b.ReorderPoint
		db := (b.ReorderPoint - b.Stock) * a.ReorderPoint
		if da != db {
			return da > db
		}
		return a.SuggestedQty > b.SuggestedQty
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
