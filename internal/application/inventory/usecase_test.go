package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type escenario struct {
	f       *testutil.Fixture
	uc      *inventory.InventoryUseCase
	company *entity.Company
	branch  *entity.Branch
	product *entity.Product
}

func nuevoEscenario(t *testing.T) escenario {
	f := testutil.New()
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	uc := inventory.NewInventoryUseCase(f.Store, f.Repos, inventory.NewLedger(zerolog.Nop()), ports.NopPublisher{}, zerolog.Nop())
	return escenario{
		f:       f,
		uc:      uc,
		company: c,
		branch:  f.Branch(t, c.ID, "Centro"),
		product: f.Product(t, c.ID, "ARZ-1", "Arroz", "1200"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerAdjust_CreaFilaSoloConDeltaPositivo(t *testing.T) {
	e := nuevoEscenario(t)
	ledger := inventory.NewLedger(zerolog.Nop())
	ctx := context.Background()

	err := e.f.Store.Run(ctx, func(r repository.Repos) error {
		_, err := ledger.Adjust(ctx, r, inventory.Adjustment{
			CompanyID: e.company.ID, ProductID: e.product.ID, BranchID: e.branch.ID,
			Delta: -1, Type: entity.MovementAdjustment,
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotInInventory)

	err = e.f.Store.Run(ctx, func(r repository.Repos) error {
		stock, err := ledger.Adjust(ctx, r, inventory.Adjustment{
			CompanyID: e.company.ID, ProductID: e.product.ID, BranchID: e.branch.ID,
			Delta: 7, Type: entity.MovementPurchase,
		})
		assert.Equal(t, 7, stock)
		return err
	})
	require.NoError(t, err)

	inv, err := e.f.Repos.Inventory.Get(ctx, e.product.ID, e.branch.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Stock)
	assert.Equal(t, 0, inv.ReorderPoint)
}

func TestLedgerReserve_StockInsuficienteNoCambiaNada(t *testing.T) {
	e := nuevoEscenario(t)
	e.f.Stock(t, e.product.ID, e.branch.ID, 2)
	ledger := inventory.NewLedger(zerolog.Nop())
	ctx := context.Background()

	err := e.f.Store.Run(ctx, func(r repository.Repos) error {
		_, err := ledger.Reserve(ctx, r, inventory.Reservation{
			CompanyID: e.company.ID, ProductID: e.product.ID, BranchID: e.branch.ID, Quantity: 3,
		})
		return err
	})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, e.f.StockOf(t, e.product.ID, e.branch.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_RegistraMovimiento(t *testing.T) {
	e := nuevoEscenario(t)
	manager := e.f.User(t, e.company.ID, entity.RoleManager)
	ctx := context.Background()

	out, err := e.uc.AdjustStock(ctx, manager, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: 10, Justification: "conteo inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Stock)

	out, err = e.uc.AdjustStock(ctx, manager, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: -12, Justification: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, -2, out.Stock, "el ajuste manual puede dejar stock negativo")

	movs, err := e.uc.ListMovements(ctx, manager, repository.MovementFilter{ProductID: e.product.ID})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, -12, movs[0].Quantity)
	assert.Equal(t, "merma", movs[0].Justification)
	assert.Equal(t, "ADJUSTMENT", movs[1].Type)
}

func TestAdjustStock_Validaciones(t *testing.T) {
	e := nuevoEscenario(t)
	manager := e.f.User(t, e.company.ID, entity.RoleManager)
	ctx := context.Background()

	_, err := e.uc.AdjustStock(ctx, manager, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: 5, Justification: "  ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = e.uc.AdjustStock(ctx, manager, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: 0, Justification: "nada",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	seller := e.f.User(t, e.company.ID, entity.RoleSeller)
	_, err = e.uc.AdjustStock(ctx, seller, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: 5, Justification: "x",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjustStock_ProductoDeOtraEmpresa(t *testing.T) {
	e := nuevoEscenario(t)
	other := e.f.Company(t, "Otra", "11111111-1", entity.PlanBasic)
	foreign := e.f.Product(t, other.ID, "X-1", "Ajeno", "100")
	admin := e.f.User(t, e.company.ID, entity.RoleAdminClient)

	_, err := e.uc.AdjustStock(context.Background(), admin, dto.AdjustStockRequest{
		BranchID: e.branch.ID, ProductID: foreign.ID, Quantity: 5, Justification: "x",
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestAdjustStock_ConcurrenteSinPerderActualizaciones(t *testing.T) {
	e := nuevoEscenario(t)
	e.f.Stock(t, e.product.ID, e.branch.ID, 100)
	admin := e.f.User(t, e.company.ID, entity.RoleAdminClient)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := 3
			if i%2 == 0 {
				delta = -2
			}
			_, err := e.uc.AdjustStock(context.Background(), admin, dto.AdjustStockRequest{
				BranchID: e.branch.ID, ProductID: e.product.ID, Quantity: delta, Justification: "concurrente",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 20 × (+3) + 20 × (-2) = +20
	assert.Equal(t, 120, e.f.StockOf(t, e.product.ID, e.branch.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_CeroSinFila(t *testing.T) {
	e := nuevoEscenario(t)
	seller := e.f.User(t, e.company.ID, entity.RoleSeller)

	out, err := e.uc.GetStock(context.Background(), seller, e.product.ID, e.branch.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)
}

func TestSetReorderPoint(t *testing.T) {
	e := nuevoEscenario(t)
	manager := e.f.User(t, e.company.ID, entity.RoleManager)
	ctx := context.Background()

	_, err := e.uc.SetReorderPoint(ctx, manager, dto.ReorderPointRequest{BranchID: e.branch.ID, ProductID: e.product.ID, ReorderPoint: 5})
	assert.ErrorIs(t, err, domain.ErrNotInInventory)

	e.f.Stock(t, e.product.ID, e.branch.ID, 4)
	out, err := e.uc.SetReorderPoint(ctx, manager, dto.ReorderPointRequest{BranchID: e.branch.ID, ProductID: e.product.ID, ReorderPoint: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, out.ReorderPoint)
	assert.Equal(t, 4, out.Stock)

	list, err := e.uc.ListBranch(ctx, manager, e.branch.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].ReorderPoint)
}
