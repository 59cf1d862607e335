package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/reporting"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
)

func newReports(f *testutil.Fixture) *reporting.ReportUseCase {
	return reporting.NewReportUseCase(f.Repos.Reports, f.Repos.Branches)
}

func sale(t *testing.T, f *testutil.Fixture, companyID, branchID, total string, at time.Time) {
	t.Helper()
	require.NoError(t, f.Repos.Sales.Create(context.Background(), &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		BranchID:      branchID,
		UserID:        "u",
		Total:         decimal.RequireFromString(total),
		PaymentMethod: "efectivo",
		CreatedAt:     at,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockReport_OrdenadoYSoloDeLaEmpresa(t *testing.T) {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	other := f.Company(t, "Otra", "11111111-1", entity.PlanBasic)
	norte := f.Branch(t, c.ID, "Norte")
	centro := f.Branch(t, c.ID, "Centro")
	ajena := f.Branch(t, other.ID, "Ajena")
	pan := f.Product(t, c.ID, "P", "Pan", "500")
	arroz := f.Product(t, c.ID, "A", "Arroz", "1200")
	ajeno := f.Product(t, other.ID, "X", "Ajeno", "1")
	f.Stock(t, pan.ID, norte.ID, 4)
	f.Stock(t, arroz.ID, norte.ID, 9)
	f.Stock(t, pan.ID, centro.ID, 1)
	f.Stock(t, ajeno.ID, ajena.ID, 100)
	require.NoError(t, f.Repos.Inventory.SetReorderPoint(context.Background(), pan.ID, centro.ID, 3))

	rows, err := newReports(f).StockReport(context.Background(), f.User(t, c.ID, entity.RoleManager))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Centro", rows[0].BranchName)
	assert.True(t, rows[0].BelowReorder)
	assert.Equal(t, "Norte", rows[1].BranchName)
	assert.Equal(t, "Arroz", rows[1].ProductName)
	assert.Equal(t, "Pan", rows[2].ProductName)
	assert.False(t, rows[2].BelowReorder)
}

func TestStockReport_Permisos(t *testing.T) {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	uc := newReports(f)

	_, err := uc.StockReport(context.Background(), f.User(t, c.ID, entity.RoleSeller))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.StockReport(context.Background(), testutil.SuperAdmin())
	assert.ErrorIs(t, err, domain.ErrNoCompany)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_AgrupaPorSucursal(t *testing.T) {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	centro := f.Branch(t, c.ID, "Centro")
	norte := f.Branch(t, c.ID, "Norte")
	now := time.Now()
	sale(t, f, c.ID, centro.ID, "1000", now)
	sale(t, f, c.ID, centro.ID, "500", now)
	sale(t, f, c.ID, norte.ID, "2000", now)
	sale(t, f, c.ID, norte.ID, "9999", now.AddDate(0, 0, -10))
	uc := newReports(f)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	from := now.AddDate(0, 0, -1).Format(dto.DateLayout)
	rows, err := uc.SalesReport(ctx, admin, reporting.SalesFilter{DateFrom: from})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Norte", rows[0].BranchName)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 1, rows[0].Count)
	assert.True(t, rows[1].TotalSales.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 2, rows[1].Count)

	rows, err = uc.SalesReport(ctx, admin, reporting.SalesFilter{BranchID: norte.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(11999)))
}

func TestSalesReport_FechasInvalidas(t *testing.T) {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	uc := newReports(f)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	_, err := uc.SalesReport(ctx, admin, reporting.SalesFilter{DateFrom: "2024-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	_, err = uc.SalesReport(ctx, admin, reporting.SalesFilter{DateFrom: "2024-05-10", DateTo: "2024-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	other := f.Company(t, "Otra", "11111111-1", entity.PlanBasic)
	ajena := f.Branch(t, other.ID, "Ajena")
	_, err = uc.SalesReport(ctx, admin, reporting.SalesFilter{BranchID: ajena.ID})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_SugiereYPrioriza(t *testing.T) {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	b := f.Branch(t, c.ID, "Centro")
	leche := f.Product(t, c.ID, "L", "Leche", "990")
	pan := f.Product(t, c.ID, "P", "Pan", "500")
	sal := f.Product(t, c.ID, "S", "Sal", "300")
	azucar := f.Product(t, c.ID, "Z", "Azúcar", "1100")
	ctx := context.Background()

	f.Stock(t, leche.ID, b.ID, 2)
	require.NoError(t, f.Repos.Inventory.SetReorderPoint(ctx, leche.ID, b.ID, 10))
	f.Stock(t, pan.ID, b.ID, 0)
	require.NoError(t, f.Repos.Inventory.SetReorderPoint(ctx, pan.ID, b.ID, 5))
	f.Stock(t, sal.ID, b.ID, 3)
	require.NoError(t, f.Repos.Inventory.SetReorderPoint(ctx, sal.ID, b.ID, 3))
	// Sobre el punto de reorden: no aparece.
	f.Stock(t, azucar.ID, b.ID, 8)
	require.NoError(t, f.Repos.Inventory.SetReorderPoint(ctx, azucar.ID, b.ID, 4))

	rows, err := newReports(f).LowStock(ctx, f.User(t, c.ID, entity.RoleManager), b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Pan", rows[0].ProductName)
	assert.Equal(t, 8, rows[0].SuggestedQty) // ceil(7.5) - 0
	assert.Equal(t, 1, rows[0].Priority)

	assert.Equal(t, "Leche", rows[1].ProductName)
	assert.Equal(t, 13, rows[1].SuggestedQty)
	assert.Equal(t, 2, rows[1].Priority)

	assert.Equal(t, "Sal", rows[2].ProductName)
	assert.Equal(t, 2, rows[2].SuggestedQty) // ceil(4.5) - 3
	assert.Equal(t, 3, rows[2].Priority)
}
