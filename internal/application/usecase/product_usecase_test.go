package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func newProductRequest(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:      sku,
		Name:     "Martillo",
		Price:    decimal.NewFromInt(5990),
		Cost:     decimal.NewFromInt(3000),
		Category: "herramientas",
	}
}

func TestProductCreate_NormalizaCategoria(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewProductUseCase(f.Repos.Products, f.Repos.Companies)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	manager := f.User(t, c.ID, entity.RoleManager)

	in := newProductRequest("MAR-01")
	in.Category = "Tecnología"
	out, err := uc.Create(context.Background(), manager, in)
	require.NoError(t, err)
	assert.Equal(t, "TECNOLOGIA", out.Category)
	assert.Equal(t, c.ID, out.CompanyID)
}

func TestProductCreate_Validaciones(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewProductUseCase(f.Repos.Products, f.Repos.Companies)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	negative := newProductRequest("NEG")
	negative.Price = decimal.NewFromInt(-1)
	_, err := uc.Create(ctx, admin, negative)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	badCategory := newProductRequest("CAT")
	badCategory.Category = "ARMAS"
	_, err = uc.Create(ctx, admin, badCategory)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = uc.Create(ctx, admin, newProductRequest("DUP"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, newProductRequest("DUP"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	_, err = uc.Create(ctx, f.User(t, c.ID, entity.RoleSeller), newProductRequest("VEN"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProduct_MismoSKUEnOtraEmpresa(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewProductUseCase(f.Repos.Products, f.Repos.Companies)
	a := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := f.Company(t, "B", "11111111-1", entity.PlanBasic)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.User(t, a.ID, entity.RoleAdminClient), newProductRequest("SKU-1"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.User(t, b.ID, entity.RoleAdminClient), newProductRequest("SKU-1"))
	assert.NoError(t, err)
}

func TestProduct_AislamientoEntreEmpresas(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewProductUseCase(f.Repos.Products, f.Repos.Companies)
	a := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := f.Company(t, "B", "11111111-1", entity.PlanBasic)
	productB := f.Product(t, b.ID, "B-1", "Producto B", "1000")
	adminA := f.User(t, a.ID, entity.RoleAdminClient)
	ctx := context.Background()

	price := decimal.NewFromInt(1)
	_, err := uc.Update(ctx, adminA, productB.ID, dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
	assert.ErrorIs(t, uc.Delete(ctx, adminA, productB.ID), domain.ErrCrossTenantAccess)

	stored, err := f.Repos.Products.GetByID(ctx, productB.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(1000)))

	list, err := uc.List(ctx, adminA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestProductStorefront_OcultaCosto(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewProductUseCase(f.Repos.Products, f.Repos.Companies)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	_, err := uc.Create(context.Background(), f.User(t, c.ID, entity.RoleAdminClient), newProductRequest("WEB"))
	require.NoError(t, err)

	out, err := uc.Storefront(context.Background(), c.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Cost.IsZero())

	_, err = uc.Storefront(context.Background(), "no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierCreate_ValidaRUT(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewSupplierUseCase(f.Repos.Suppliers, rut.Validator{})
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{Name: "Distribuidora", TaxID: "12345678-9"})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxID)

	out, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{Name: "Distribuidora", TaxID: "20.000.003-k"})
	require.NoError(t, err)
	assert.Equal(t, "20000003-K", out.TaxID)

	_, err = uc.Create(ctx, admin, dto.CreateSupplierRequest{Name: "Otra", TaxID: "20000003-K"})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestSupplierUpdate_RUTDuplicado(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewSupplierUseCase(f.Repos.Suppliers, rut.Validator{})
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{Name: "Uno", TaxID: "11111111-1"})
	require.NoError(t, err)
	dos, err := uc.Create(ctx, admin, dto.CreateSupplierRequest{Name: "Dos", TaxID: "14000000-0"})
	require.NoError(t, err)

	taxID := "11.111.111-1"
	_, err = uc.Update(ctx, admin, dos.ID, dto.UpdateSupplierRequest{TaxID: &taxID})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	contact := "Pedro"
	out, err := uc.Update(ctx, admin, dos.ID, dto.UpdateSupplierRequest{Contact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "Pedro", out.Contact)
}
