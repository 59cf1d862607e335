package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// recorder guarda los eventos publicados.
type recorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recorder) Publish(_ context.Context, evt ports.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type engine struct {
	f         *testutil.Fixture
	events    *recorder
	sales     *sales.SaleUseCase
	purchases *sales.PurchaseUseCase
	cart      *sales.CartUseCase
	orders    *sales.OrderUseCase
}

func newEngine() engine {
	f := testutil.New()
	ev := &recorder{}
	ledger := inventory.NewLedger(zerolog.Nop())
	return engine{
		f:         f,
		events:    ev,
		sales:     sales.NewSaleUseCase(f.Store, f.Repos, ledger, ev, zerolog.Nop()),
		purchases: sales.NewPurchaseUseCase(f.Store, f.Repos, ledger, ev, zerolog.Nop()),
		cart:      sales.NewCartUseCase(f.Store, f.Repos, ledger, ev, zerolog.Nop()),
		orders:    sales.NewOrderUseCase(f.Store, f.Repos, ev, zerolog.Nop()),
	}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_HastaCeroYLuegoSinStock(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	product := e.f.Product(t, c.ID, "P-1", "Pan", "500")
	e.f.Stock(t, product.ID, branch.ID, 10)
	seller := e.f.User(t, c.ID, entity.RoleSeller)
	ctx := context.Background()

	sale, err := e.sales.RegisterSale(ctx, seller, dto.RegisterSaleRequest{
		BranchID:      branch.ID,
		PaymentMethod: "efectivo",
		Items:         []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 10, UnitPrice: price("1000")}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(10000)), sale.Total.String())
	assert.Equal(t, 0, e.f.StockOf(t, product.ID, branch.ID))

	_, err = e.sales.RegisterSale(ctx, seller, dto.RegisterSaleRequest{
		BranchID:      branch.ID,
		PaymentMethod: "efectivo",
		Items:         []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Pan", stockErr.ProductName)
	assert.Equal(t, 0, e.f.StockOf(t, product.ID, branch.ID))
	assert.Equal(t, []string{ports.EventSaleRegistered}, e.events.types())
}

func TestRegisterSale_TodoONada(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	a := e.f.Product(t, c.ID, "A", "Aceite", "2000")
	b := e.f.Product(t, c.ID, "B", "Bebida", "1500")
	e.f.Stock(t, a.ID, branch.ID, 5)
	e.f.Stock(t, b.ID, branch.ID, 1)
	seller := e.f.User(t, c.ID, entity.RoleSeller)
	ctx := context.Background()

	_, err := e.sales.RegisterSale(ctx, seller, dto.RegisterSaleRequest{
		BranchID:      branch.ID,
		PaymentMethod: "debito",
		Items: []dto.SaleItemRequest{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, e.f.StockOf(t, a.ID, branch.ID), "el primer ítem no debe quedar descontado")
	assert.Equal(t, 1, e.f.StockOf(t, b.ID, branch.ID))

	list, err := e.f.Repos.Sales.List(ctx, repository.SaleFilter{CompanyID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
	movs, err := e.f.Repos.Movements.List(ctx, repository.MovementFilter{CompanyID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterSale_PrecioDelCatalogoPorDefecto(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	product := e.f.Product(t, c.ID, "P-1", "Queso", "3490")
	e.f.Stock(t, product.ID, branch.ID, 3)
	seller := e.f.User(t, c.ID, entity.RoleSeller)

	sale, err := e.sales.RegisterSale(context.Background(), seller, dto.RegisterSaleRequest{
		BranchID:      branch.ID,
		PaymentMethod: "credito",
		Items:         []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(6980)))
	assert.Equal(t, seller.UserID, sale.UserID)
}

func TestRegisterSale_Validaciones(t *testing.T) {
	e := newEngine()
	a := e.f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := e.f.Company(t, "B", "11111111-1", entity.PlanBasic)
	branchA := e.f.Branch(t, a.ID, "Centro A")
	branchB := e.f.Branch(t, b.ID, "Centro B")
	productA := e.f.Product(t, a.ID, "P", "Producto", "100")
	productB := e.f.Product(t, b.ID, "P", "Producto", "100")
	seller := e.f.User(t, a.ID, entity.RoleSeller)
	ctx := context.Background()

	casos := []struct {
		nombre string
		p      func() dto.RegisterSaleRequest
		want   error
	}{
		{"sucursal de otra empresa", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchB.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productB.ID, Quantity: 1}}}
		}, domain.ErrCrossTenantAccess},
		{"sin ítems", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x"}
		}, domain.ErrEmptyTransaction},
		{"cantidad cero", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productA.ID, Quantity: 0}}}
		}, domain.ErrInvalidValue},
		{"precio negativo", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productA.ID, Quantity: 1, UnitPrice: price("-1")}}}
		}, domain.ErrInvalidValue},
		{"sin medio de pago", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, Items: []dto.SaleItemRequest{{ProductID: productA.ID, Quantity: 1}}}
		}, domain.ErrInvalidValue},
		{"producto de otra empresa", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productB.ID, Quantity: 1}}}
		}, domain.ErrCrossTenantAccess},
		{"producto sin inventario en la sucursal", func() dto.RegisterSaleRequest {
			return dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productA.ID, Quantity: 1}}}
		}, domain.ErrNotInInventory},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := e.sales.RegisterSale(ctx, seller, c.p())
			assert.ErrorIs(t, err, c.want)
		})
	}

	manager := e.f.User(t, a.ID, entity.RoleManager)
	_, err := e.sales.RegisterSale(ctx, manager, dto.RegisterSaleRequest{BranchID: branchA.ID, PaymentMethod: "x", Items: []dto.SaleItemRequest{{ProductID: productA.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterSale_ConcurrenteNoVendeDeMas(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	product := e.f.Product(t, c.ID, "P-1", "Leche", "990")
	e.f.Stock(t, product.ID, branch.ID, 5)
	seller := e.f.User(t, c.ID, entity.RoleSeller)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.sales.RegisterSale(context.Background(), seller, dto.RegisterSaleRequest{
				BranchID: branch.ID, PaymentMethod: "efectivo",
				Items: []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, ok)
	assert.Equal(t, 0, e.f.StockOf(t, product.ID, branch.ID))
}

func TestListSales_FiltraPorEmpresaYFecha(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	product := e.f.Product(t, c.ID, "P-1", "Pan", "500")
	e.f.Stock(t, product.ID, branch.ID, 10)
	seller := e.f.User(t, c.ID, entity.RoleSeller)
	ctx := context.Background()
	sale, err := e.sales.RegisterSale(ctx, seller, dto.RegisterSaleRequest{
		BranchID: branch.ID, PaymentMethod: "efectivo",
		Items: []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	today := time.Now().Format(dto.DateLayout)
	list, err := e.sales.ListSales(ctx, seller, sales.SaleFilter{DateFrom: today, DateTo: today})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)

	yesterday := time.Now().AddDate(0, 0, -1).Format(dto.DateLayout)
	list, err = e.sales.ListSales(ctx, seller, sales.SaleFilter{DateTo: yesterday})
	require.NoError(t, err)
	assert.Empty(t, list)

	other := e.f.Company(t, "Otra", "11111111-1", entity.PlanBasic)
	_, err = e.sales.GetSale(ctx, e.f.User(t, other.ID, entity.RoleAdminClient), sale.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	got, err := e.sales.GetSale(ctx, e.f.User(t, c.ID, entity.RoleManager), sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPurchase_CreaFilasYRecalculaCosto(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Centro")
	other := e.f.Branch(t, c.ID, "Norte")
	product := e.f.Product(t, c.ID, "P-1", "Harina", "1500")
	require.NoError(t, e.f.Repos.Products.UpdateCost(context.Background(), product.ID, decimal.NewFromInt(1000)))
	e.f.Stock(t, product.ID, other.ID, 10)
	supplier := &entity.Supplier{ID: "sup-1", CompanyID: c.ID, Name: "Molino", TaxID: "11111111-1"}
	require.NoError(t, e.f.Repos.Suppliers.Create(context.Background(), supplier))
	manager := e.f.User(t, c.ID, entity.RoleManager)
	ctx := context.Background()

	out, err := e.purchases.RegisterPurchase(ctx, manager, dto.RegisterPurchaseRequest{
		SupplierID: supplier.ID,
		BranchID:   branch.ID,
		Date:       time.Now().Format(dto.DateLayout),
		Items:      []dto.PurchaseItemRequest{{ProductID: product.ID, Quantity: 10, UnitCost: price("1200")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Stock[product.ID])

	inv, err := e.f.Repos.Inventory.Get(ctx, product.ID, branch.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Stock)
	assert.Equal(t, 0, inv.ReorderPoint)

	stored, err := e.f.Repos.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	// (10 × 1000 + 10 × 1200) / 20
	assert.True(t, stored.Cost.Equal(decimal.NewFromInt(1100)), stored.Cost.String())

	saved, err := e.f.Repos.Purchases.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Items, 1)
	assert.Contains(t, e.events.types(), ports.EventPurchaseRegistered)
}

func TestRegisterPurchase_Validaciones(t *testing.T) {
	e := newEngine()
	a := e.f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := e.f.Company(t, "B", "11111111-1", entity.PlanBasic)
	branch := e.f.Branch(t, a.ID, "Centro")
	product := e.f.Product(t, a.ID, "P-1", "Harina", "1500")
	supplierA := &entity.Supplier{ID: "sup-a", CompanyID: a.ID, Name: "Molino", TaxID: "11111111-1"}
	supplierB := &entity.Supplier{ID: "sup-b", CompanyID: b.ID, Name: "Ajeno", TaxID: "11111111-1"}
	require.NoError(t, e.f.Repos.Suppliers.Create(context.Background(), supplierA))
	require.NoError(t, e.f.Repos.Suppliers.Create(context.Background(), supplierB))
	admin := e.f.User(t, a.ID, entity.RoleAdminClient)
	ctx := context.Background()
	today := time.Now().Format(dto.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dto.DateLayout)
	items := []dto.PurchaseItemRequest{{ProductID: product.ID, Quantity: 1}}

	_, err := e.purchases.RegisterPurchase(ctx, admin, dto.RegisterPurchaseRequest{SupplierID: supplierA.ID, BranchID: branch.ID, Date: tomorrow, Items: items})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = e.purchases.RegisterPurchase(ctx, admin, dto.RegisterPurchaseRequest{SupplierID: supplierB.ID, BranchID: branch.ID, Date: today, Items: items})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	_, err = e.purchases.RegisterPurchase(ctx, admin, dto.RegisterPurchaseRequest{SupplierID: supplierA.ID, BranchID: branch.ID, Date: today})
	assert.ErrorIs(t, err, domain.ErrEmptyTransaction)

	_, err = e.purchases.RegisterPurchase(ctx, e.f.User(t, a.ID, entity.RoleSeller), dto.RegisterPurchaseRequest{SupplierID: supplierA.ID, BranchID: branch.ID, Date: today, Items: items})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, 0, e.f.StockOf(t, product.ID, branch.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito y checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_CreaOrdenYVaciaCarrito(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Tienda", "76543210-3", entity.PlanBasic)
	first := e.f.Branch(t, c.ID, "Bodega principal")
	e.f.Branch(t, c.ID, "Sucursal secundaria")
	a := e.f.Product(t, c.ID, "A", "Polera", "10")
	b := e.f.Product(t, c.ID, "B", "Gorro", "5")
	e.f.Stock(t, a.ID, first.ID, 10)
	e.f.Stock(t, b.ID, first.ID, 10)
	customer := e.f.User(t, "", entity.RoleCustomer)
	ctx := context.Background()

	_, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)
	item, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	_, err = e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: b.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := e.cart.ListCart(ctx, customer)
	require.NoError(t, err)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(40)))

	order, err := e.cart.Checkout(ctx, customer)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(40)), order.Total.String())
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, first.ID, order.BranchID)
	assert.Len(t, order.Items, 2)

	assert.Equal(t, 7, e.f.StockOf(t, a.ID, first.ID))
	assert.Equal(t, 8, e.f.StockOf(t, b.ID, first.ID))
	remaining, err := e.f.Repos.Cart.ListByUser(ctx, customer.UserID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = e.cart.Checkout(ctx, customer)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, []string{ports.EventOrderCreated}, e.events.types())
}

func TestCheckout_PuedeDejarStockNegativo(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Tienda", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Bodega")
	product := e.f.Product(t, c.ID, "A", "Polera", "10")
	e.f.Stock(t, product.ID, branch.ID, 1)
	customer := e.f.User(t, "", entity.RoleCustomer)
	ctx := context.Background()

	_, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	_, err = e.cart.Checkout(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, -2, e.f.StockOf(t, product.ID, branch.ID))
}

func TestCart_RechazaProductosDeOtraEmpresa(t *testing.T) {
	e := newEngine()
	a := e.f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := e.f.Company(t, "B", "11111111-1", entity.PlanBasic)
	pa := e.f.Product(t, a.ID, "A", "Polera", "10")
	pb := e.f.Product(t, b.ID, "B", "Gorro", "5")
	customer := e.f.User(t, "", entity.RoleCustomer)
	ctx := context.Background()

	_, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: pa.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: pb.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrMixedTenantCart)

	require.NoError(t, e.cart.RemoveFromCart(ctx, customer, pa.ID))
	_, err = e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: pb.ID, Quantity: 1})
	assert.NoError(t, err)
}

func TestCheckout_SinSucursalDeDespacho(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Tienda", "76543210-3", entity.PlanBasic)
	product := e.f.Product(t, c.ID, "A", "Polera", "10")
	customer := e.f.User(t, "", entity.RoleCustomer)
	ctx := context.Background()

	_, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = e.cart.Checkout(ctx, customer)
	assert.ErrorIs(t, err, domain.ErrNoDispatchBranch)

	items, err := e.f.Repos.Cart.ListByUser(ctx, customer.UserID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "el carrito se conserva si el checkout falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvanceOrder_SoloHaciaAdelante(t *testing.T) {
	e := newEngine()
	c := e.f.Company(t, "Tienda", "76543210-3", entity.PlanBasic)
	branch := e.f.Branch(t, c.ID, "Bodega")
	product := e.f.Product(t, c.ID, "A", "Polera", "10")
	e.f.Stock(t, product.ID, branch.ID, 5)
	customer := e.f.User(t, "", entity.RoleCustomer)
	manager := e.f.User(t, c.ID, entity.RoleManager)
	ctx := context.Background()

	_, err := e.cart.AddToCart(ctx, customer, dto.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := e.cart.Checkout(ctx, customer)
	require.NoError(t, err)

	_, err = e.orders.AdvanceOrder(ctx, manager, order.ID, "DELIVERED")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err := e.orders.AdvanceOrder(ctx, manager, order.ID, "shipped")
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", out.Status)

	_, err = e.orders.AdvanceOrder(ctx, manager, order.ID, "PENDING")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err = e.orders.AdvanceOrder(ctx, manager, order.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", out.Status)

	other := e.f.Company(t, "Otra", "11111111-1", entity.PlanBasic)
	_, err = e.orders.AdvanceOrder(ctx, e.f.User(t, other.ID, entity.RoleAdminClient), order.ID, "DELIVERED")
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	list, err := e.orders.ListOrders(ctx, manager, "delivered", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, order.ID, list.Items[0].ID)
}
