package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto mientras se recalcula su costo.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
