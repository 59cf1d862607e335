package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/plan"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/postgres"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
)

// setup requiere TEST_DATABASE_URL apuntando a una base desechable.
func setup(t *testing.T) (*pgxpool.Pool, repository.Repos) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	require.NoError(t, postgres.Migrate(dsn))
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool, postgres.NewRepos(pool)
}

func seedStock(t *testing.T, repos repository.Repos, qty int) (companyID, productID, branchID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	c := &entity.Company{ID: uuid.New().String(), Name: "Integración", TaxID: uuid.New().String()[:12], Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Companies.Create(ctx, c))
	b := &entity.Branch{ID: uuid.New().String(), CompanyID: c.ID, Name: "Centro", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Branches.Create(ctx, b))
	p := &entity.Product{ID: uuid.New().String(), CompanyID: c.ID, SKU: "SKU-1", Name: "Pan", Price: decimal.NewFromInt(500), Category: entity.CategoryAlimentos, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, p))
	_, err := repos.Inventory.IncrementOrCreate(ctx, p.ID, b.ID, qty)
	require.NoError(t, err)
	return c.ID, p.ID, b.ID
}

func TestIntegracion_DecrementoConcurrenteNoVendeDeMas(t *testing.T) {
	pool, repos := setup(t)
	_, productID, branchID := seedStock(t, repos, 5)
	runner := postgres.NewTxRunner(pool)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(context.Background(), func(r repository.Repos) error {
				_, err := r.Inventory.DecrementIfAvailable(context.Background(), productID, branchID, 1)
				return err
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	inv, err := repos.Inventory.Get(context.Background(), productID, branchID)
	require.NoError(t, err)
	assert.Zero(t, inv.Stock)
}

func TestIntegracion_RollbackDescartaCambios(t *testing.T) {
	pool, repos := setup(t)
	_, productID, branchID := seedStock(t, repos, 3)
	runner := postgres.NewTxRunner(pool)

	err := runner.Run(context.Background(), func(r repository.Repos) error {
		if _, err := r.Inventory.Increment(context.Background(), productID, branchID, -3); err != nil {
			return err
		}
		_, err := r.Inventory.DecrementIfAvailable(context.Background(), productID, branchID, 1)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv, err := repos.Inventory.Get(context.Background(), productID, branchID)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Stock)
}

func TestIntegracion_SKUDuplicado(t *testing.T) {
	_, repos := setup(t)
	companyID, _, _ := seedStock(t, repos, 0)
	now := time.Now()
	err := repos.Products.Create(context.Background(), &entity.Product{
		ID: uuid.New().String(), CompanyID: companyID, SKU: "SKU-1", Name: "Otro",
		Price: decimal.Zero, Category: entity.CategoryOtros, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestIntegracion_IDMalFormadoEsNoEncontrado(t *testing.T) {
	_, repos := setup(t)
	ctx := context.Background()

	b, err := repos.Branches.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, b)
	p, err := repos.Products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func adminOf(companyID string) access.Principal {
	return access.Principal{UserID: uuid.New().String(), CompanyID: companyID, Role: entity.RoleAdminClient, Active: true}
}

func TestIntegracion_ComprasConcurrentesPromedianCosto(t *testing.T) {
	pool, repos := setup(t)
	ctx := context.Background()
	companyID, productID, branchID := seedStock(t, repos, 0)
	require.NoError(t, repos.Products.UpdateCost(ctx, productID, decimal.NewFromInt(10)))
	now := time.Now()
	supplier := &entity.Supplier{ID: uuid.New().String(), CompanyID: companyID, Name: "Molino", TaxID: "20000003-K", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Suppliers.Create(ctx, supplier))

	uc := sales.NewPurchaseUseCase(postgres.NewTxRunner(pool), repos, inventory.NewLedger(zerolog.Nop()), ports.NopPublisher{}, zerolog.Nop())
	admin := adminOf(companyID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, cost := range []int64{20, 30} {
		wg.Add(1)
		go func(i int, cost decimal.Decimal) {
			defer wg.Done()
			_, errs[i] = uc.RegisterPurchase(ctx, admin, dto.RegisterPurchaseRequest{
				SupplierID: supplier.ID,
				BranchID:   branchID,
				Date:       now.Format(dto.DateLayout),
				Items:      []dto.PurchaseItemRequest{{ProductID: productID, Quantity: 5, UnitCost: &cost}},
			})
		}(i, decimal.NewFromInt(cost))
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// Cualquiera sea el orden: avg(0@10, 5@x) y luego avg(5@x, 5@y) = 25.
	p, err := repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(p.Cost), "costo: %s", p.Cost)
	inv, err := repos.Inventory.Get(ctx, productID, branchID)
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Stock)
}

func TestIntegracion_ItemsConservanElOrden(t *testing.T) {
	_, repos := setup(t)
	ctx := context.Background()
	companyID, _, branchID := seedStock(t, repos, 0)
	now := time.Now()

	var ids []string
	for i := 0; i < 8; i++ {
		p := &entity.Product{
			ID: uuid.New().String(), CompanyID: companyID, SKU: fmt.Sprintf("ORD-%d", i), Name: "Ítem",
			Price: decimal.NewFromInt(100), Category: entity.CategoryOtros, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repos.Products.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	sale := &entity.Sale{ID: uuid.New().String(), CompanyID: companyID, BranchID: branchID, UserID: uuid.New().String(), Total: decimal.NewFromInt(800), PaymentMethod: "efectivo", CreatedAt: now}
	order := &entity.Order{ID: uuid.New().String(), CompanyID: companyID, BranchID: branchID, UserID: uuid.New().String(), Status: entity.OrderPending, Total: decimal.NewFromInt(800), CreatedAt: now, UpdatedAt: now}
	for _, id := range ids {
		sale.Items = append(sale.Items, entity.SaleItem{ID: uuid.New().String(), SaleID: sale.ID, ProductID: id, Quantity: 1, UnitPrice: decimal.NewFromInt(100)})
		order.Items = append(order.Items, entity.OrderItem{ID: uuid.New().String(), OrderID: order.ID, ProductID: id, Quantity: 1, UnitPrice: decimal.NewFromInt(100)})
	}
	require.NoError(t, repos.Sales.Create(ctx, sale))
	require.NoError(t, repos.Orders.Create(ctx, order))

	gotSale, err := repos.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	gotOrder, err := repos.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)

	var saleIDs, orderIDs []string
	for _, it := range gotSale.Items {
		saleIDs = append(saleIDs, it.ProductID)
	}
	for _, it := range gotOrder.Items {
		orderIDs = append(orderIDs, it.ProductID)
	}
	assert.Equal(t, ids, saleIDs)
	assert.Equal(t, ids, orderIDs)
}

func TestIntegracion_LimiteDeSucursalesConcurrente(t *testing.T) {
	casos := []struct {
		nombre     string
		existentes int
		intentos   int
		exitos     int
	}{
		{"plan lleno: ninguno entra", 3, 5, 0},
		{"queda un cupo: exactamente uno entra", 2, 2, 1},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			pool, repos := setup(t)
			ctx := context.Background()
			now := time.Now()
			company := &entity.Company{ID: uuid.New().String(), Name: "Límite", TaxID: uuid.New().String()[:12], Active: true, CreatedAt: now, UpdatedAt: now}
			require.NoError(t, repos.Companies.Create(ctx, company))
			sub, err := plan.Apply(nil, company.ID, entity.PlanBasic, now)
			require.NoError(t, err)
			sub.ID = uuid.New().String()
			require.NoError(t, repos.Subscriptions.Upsert(ctx, sub))
			for i := 0; i < c.existentes; i++ {
				b := &entity.Branch{ID: uuid.New().String(), CompanyID: company.ID, Name: fmt.Sprintf("Existente %d", i), CreatedAt: now, UpdatedAt: now}
				require.NoError(t, repos.Branches.Create(ctx, b))
			}

			uc := usecase.NewBranchUseCase(postgres.NewTxRunner(pool), repos.Branches, zerolog.Nop())
			admin := adminOf(company.ID)
			var (
				wg sync.WaitGroup
				mu sync.Mutex
				ok int
			)
			for i := 0; i < c.intentos; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: fmt.Sprintf("Nueva %d", i)})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						ok++
						return
					}
					assert.ErrorIs(t, err, domain.ErrPlanLimitExceeded)
				}(i)
			}
			wg.Wait()

			assert.Equal(t, c.exitos, ok)
			n, err := repos.Branches.CountByCompany(ctx, company.ID)
			require.NoError(t, err)
			assert.Equal(t, c.existentes+c.exitos, n)
		})
	}
}
