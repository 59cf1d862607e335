// Package testutil arma escenarios sobre el store en memoria para las pruebas de casos de uso.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/plan"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/memory"
)

// Fixture store en memoria con sus repos en modo autocommit.
type Fixture struct {
	Store *memory.Store
	Repos repository.Repos
}

// New crea un store vacío.
func New() *Fixture {
	s := memory.New()
	return &Fixture{Store: s, Repos: s.Repos()}
}

// Company crea una empresa; con tier vacío queda sin suscripción.
func (f *Fixture) Company(t testing.TB, name, taxID string, tier entity.PlanTier) *entity.Company {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	c := &entity.Company{ID: uuid.New().String(), Name: name, TaxID: taxID, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.Repos.Companies.Create(ctx, c))
	if tier != "" {
		sub, err := plan.Apply(nil, c.ID, tier, now)
		require.NoError(t, err)
		sub.ID = uuid.New().String()
		require.NoError(t, f.Repos.Subscriptions.Upsert(ctx, sub))
	}
	return c
}

// Branch crea una sucursal sin pasar por el límite del plan.
func (f *Fixture) Branch(t testing.TB, companyID, name string) *entity.Branch {
	t.Helper()
	now := time.Now()
	b := &entity.Branch{ID: uuid.New().String(), CompanyID: companyID, Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.Repos.Branches.Create(context.Background(), b))
	return b
}

// Product crea un producto con el precio dado ("1000", "9.99").
func (f *Fixture) Product(t testing.TB, companyID, sku, name, price string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       sku,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Cost:      decimal.Zero,
		Category:  entity.CategoryOtros,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.Repos.Products.Create(context.Background(), p))
	return p
}

// Stock deja qty unidades del producto en la sucursal.
func (f *Fixture) Stock(t testing.TB, productID, branchID string, qty int) {
	t.Helper()
	ctx := context.Background()
	current := 0
	if inv, err := f.Repos.Inventory.Get(ctx, productID, branchID); err == nil && inv != nil {
		current = inv.Stock
	}
	_, err := f.Repos.Inventory.IncrementOrCreate(ctx, productID, branchID, qty-current)
	require.NoError(t, err)
}

// StockOf stock actual; cero si no hay fila.
func (f *Fixture) StockOf(t testing.TB, productID, branchID string) int {
	t.Helper()
	inv, err := f.Repos.Inventory.Get(context.Background(), productID, branchID)
	require.NoError(t, err)
	if inv == nil {
		return 0
	}
	return inv.Stock
}

// User crea un usuario activo y devuelve su principal.
func (f *Fixture) User(t testing.TB, companyID string, role entity.Role) access.Principal {
	t.Helper()
	now := time.Now()
	id := uuid.New().String()
	u := &entity.User{
		ID:        id,
		CompanyID: companyID,
		Username:  string(role) + "-" + id[:8],
		Email:     id[:8] + "@temucosoft.test",
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.Repos.Users.Create(context.Background(), u))
	return access.Principal{UserID: u.ID, CompanyID: companyID, Role: role, Active: true}
}

// SuperAdmin principal de plataforma (sin empresa).
func SuperAdmin() access.Principal {
	return access.Principal{UserID: "root", Role: entity.RoleSuperAdmin, Active: true}
}
