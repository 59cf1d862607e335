package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/bootstrap"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/seed"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
)

const fixture = `
super_admin:
  username: root
  email: root@temucosoft.cl
  password: secreto-root
tenants:
  - company_name: Almacén Don Pepe
    rut: 76.543.210-3
    contact_name: Pepe
    contact_email: pepe@donpepe.cl
    plan: STANDARD
    admin:
      username: donpepe
      rut: 12345678-5
      email: admin@donpepe.cl
    branches:
      - name: Centro
        address: Bulnes 100, Temuco
      - name: Pedro de Valdivia
    suppliers:
      - name: Molino La Araucana
        rut: 20000003-K
    products:
      - sku: PAN-001
        name: Pan amasado
        price: 1500
        cost: 600
    users:
      - username: caja1
        email: caja1@donpepe.cl
        password: caja1-secreto
        role: vendedor
        branch: Centro
    purchases:
      - supplier: Molino La Araucana
        branch: Centro
        date: 2024-05-01
        items:
          - sku: PAN-001
            quantity: 10
            unit_cost: 700
`

func newSeeder(t *testing.T) (*seed.Seeder, *testutil.Fixture) {
	t.Helper()
	f := testutil.New()
	st := &bootstrap.Storage{Repos: f.Repos, TxRunner: f.Store, Close: func() {}}
	uc := bootstrap.NewUseCases(st, config.JWTConfig{Secret: "test", Expiration: 60, Issuer: "seed-test"}, ports.NopPublisher{}, zerolog.Nop())
	return seed.New(uc, f.Repos, zerolog.Nop()), f
}

// ─────────────────────────────────────────────────────────────
// Parse
// ─────────────────────────────────────────────────────────────

func TestParse_Fixture(t *testing.T) {
	f, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, f.Tenants, 1)
	assert.Equal(t, "root", f.SuperAdmin.Username)
	assert.Equal(t, "1500", f.Tenants[0].Products[0].Price)
	assert.Equal(t, "2024-05-01", f.Tenants[0].Purchases[0].Date)
	assert.Equal(t, "20000003-K", f.Tenants[0].Suppliers[0].TaxID)
}

func TestParse_CampoDesconocido(t *testing.T) {
	_, err := seed.Parse([]byte("super_admin:\n  usuario: root\n"))
	assert.Error(t, err)
}

// ─────────────────────────────────────────────────────────────
// Run
// ─────────────────────────────────────────────────────────────

func TestRun_CreaEmpresaCompleta(t *testing.T) {
	s, f := newSeeder(t)
	file, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	sum, err := s.Run(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Tenants)
	assert.Equal(t, 2, sum.Branches)
	assert.Equal(t, 1, sum.Suppliers)
	assert.Equal(t, 1, sum.Products)
	assert.Equal(t, 1, sum.Users)
	assert.Equal(t, 1, sum.Purchases)

	ctx := context.Background()
	root, err := f.Repos.Users.GetByUsername(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, entity.RoleSuperAdmin, root.Role)
	assert.True(t, root.Active)

	company, err := f.Repos.Companies.GetByTaxID(ctx, "76543210-3")
	require.NoError(t, err)
	require.NotNil(t, company)

	product, err := f.Repos.Products.GetByCompanyAndSKU(ctx, company.ID, "PAN-001")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.True(t, decimal.NewFromInt(700).Equal(product.Cost), "costo promedio: %s", product.Cost)

	seller, err := f.Repos.Users.GetByUsername(ctx, "caja1")
	require.NoError(t, err)
	require.NotNil(t, seller)
	assert.Equal(t, company.ID, seller.CompanyID)
	require.NotEmpty(t, seller.BranchID)
	assert.Equal(t, 10, f.StockOf(t, product.ID, seller.BranchID))
}

func TestRun_SegundaEjecucionOmiteEmpresa(t *testing.T) {
	s, _ := newSeeder(t)
	file, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), file)
	require.NoError(t, err)

	sum, err := s.Run(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Tenants)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Products)
}

func TestRun_SinCredencialesDeSuperAdmin(t *testing.T) {
	s, _ := newSeeder(t)
	_, err := s.Run(context.Background(), &seed.File{})
	assert.Error(t, err)
}

func TestRun_CompraConSKUNoDeclarado(t *testing.T) {
	s, _ := newSeeder(t)
	file, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)
	file.Tenants[0].Purchases[0].Items[0].SKU = "NO-EXISTE"

	sum, err := s.Run(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO-EXISTE")
	assert.Equal(t, 0, sum.Purchases)
}
