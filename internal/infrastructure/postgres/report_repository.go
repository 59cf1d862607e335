package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura; se usa con el pool, nunca con una tx.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

const stockRowsQuery = `
	SELECT b.id, b.name, p.id, p.name, p.sku, i.stock, i.reorder_point
	FROM inventory i
	JOIN branches b ON b.id = i.branch_id
	JOIN products p ON p.id = i.product_id
	WHERE b.company_id = $1`

func scanStockRow(row scanner) (*repository.StockRow, error) {
	var s repository.StockRow
	if err := row.Scan(&s.BranchID, &s.BranchName, &s.ProductID, &s.ProductName, &s.SKU, &s.Stock, &s.ReorderPoint); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ReportRepo) stockRows(ctx context.Context, query string, args ...any) ([]repository.StockRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	list, err := collect(rows, "stock row", scanStockRow)
	if err != nil {
		return nil, err
	}
	out := make([]repository.StockRow, 0, len(list))
	for _, s := range list {
		out = append(out, *s)
	}
	return out, nil
}

// StockSnapshot inventario de todas las sucursales de la empresa.
func (r *ReportRepo) StockSnapshot(ctx context.Context, companyID string) ([]repository.StockRow, error) {
	return r.stockRows(ctx, stockRowsQuery+` ORDER BY b.name, p.name, p.id`, companyID)
}

// BelowReorderPoint filas en o bajo su punto de reorden.
func (r *ReportRepo) BelowReorderPoint(ctx context.Context, companyID, branchID string) ([]repository.StockRow, error) {
	query := stockRowsQuery + `
		AND ($2::text = '' OR b.id::text = $2)
		AND i.reorder_point > 0 AND i.stock <= i.reorder_point
		ORDER BY b.name, p.name, p.id`
	return r.stockRows(ctx, query, companyID, branchID)
}

// SalesByBranch total vendido por sucursal en el período, de mayor a menor.
func (r *ReportRepo) SalesByBranch(ctx context.Context, f repository.SaleFilter) ([]repository.BranchSalesRow, error) {
	query := `
		SELECT b.id, b.name, SUM(s.total), count(*)::int
		FROM sales s
		JOIN branches b ON b.id = s.branch_id
		WHERE s.company_id = $1
		  AND ($2::text = '' OR s.branch_id::text = $2)
		  AND ($3::timestamptz IS NULL OR s.created_at >= $3)
		  AND ($4::timestamptz IS NULL OR s.created_at < $4)
		GROUP BY b.id, b.name
		ORDER BY SUM(s.total) DESC, b.name`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.BranchID, f.From, dayAfter(f.To))
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	list, err := collect(rows, "sales row", func(row scanner) (*repository.BranchSalesRow, error) {
		var s repository.BranchSalesRow
		if err := row.Scan(&s.BranchID, &s.BranchName, &s.Total, &s.Count); err != nil {
			return nil, err
		}
		return &s, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.BranchSalesRow, 0, len(list))
	for _, s := range list {
		out = append(out, *s)
	}
	return out, nil
}
