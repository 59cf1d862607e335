package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var _ repository.ReportRepository = (*reportRepo)(nil)

type reportRepo struct{ s *session }

func (r *reportRepo) StockSnapshot(_ context.Context, companyID string) ([]repository.StockRow, error) {
	t, done := r.s.view()
	defer done()
	return stockRows(t, companyID, "", false), nil
}

func (r *reportRepo) BelowReorderPoint(_ context.Context, companyID, branchID string) ([]repository.StockRow, error) {
	t, done := r.s.view()
	defer done()
	return stockRows(t, companyID, branchID, true), nil
}

func stockRows(t *tables, companyID, branchID string, belowOnly bool) []repository.StockRow {
	rows := make([]repository.StockRow, 0)
	for k, inv := range t.inventory {
		b, ok := t.branches[k.branchID]
		if !ok || b.v.CompanyID != companyID || (branchID != "" && k.branchID != branchID) {
			continue
		}
		p, ok := t.products[k.productID]
		if !ok {
			continue
		}
		if belowOnly && !inv.BelowReorderPoint() {
			continue
		}
		rows = append(rows, repository.StockRow{
			BranchID:     b.v.ID,
			BranchName:   b.v.Name,
			ProductID:    p.v.ID,
			ProductName:  p.v.Name,
			SKU:          p.v.SKU,
			Stock:        inv.Stock,
			ReorderPoint: inv.ReorderPoint,
		})
	}
	slices.SortFunc(rows, func(a, b repository.StockRow) int {
		return cmp.Or(
			cmp.Compare(a.BranchName, b.BranchName),
			cmp.Compare(a.ProductName, b.ProductName),
			cmp.Compare(a.ProductID, b.ProductID),
		)
	})
	return rows
}

func (r *reportRepo) SalesByBranch(_ context.Context, f repository.SaleFilter) ([]repository.BranchSalesRow, error) {
	t, done := r.s.view()
	defer done()
	byBranch := map[string]*repository.BranchSalesRow{}
	for _, rec := range t.sales {
		s := rec.v
		if !matchSale(s, f) {
			continue
		}
		row, ok := byBranch[s.BranchID]
		if !ok {
			row = &repository.BranchSalesRow{BranchID: s.BranchID, Total: decimal.Zero}
			if b, found := t.branches[s.BranchID]; found {
				row.BranchName = b.v.Name
			}
			byBranch[s.BranchID] = row
		}
		row.Total = row.Total.Add(s.Total)
		row.Count++
	}
	out := make([]repository.BranchSalesRow, 0, len(byBranch))
	for _, row := range byBranch {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b repository.BranchSalesRow) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.BranchName, b.BranchName)
	})
	return out, nil
}
