// Package guard carga entidades verificando que pertenezcan a la empresa del principal.
package guard

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// Branch obtiene la sucursal y autoriza action sobre su empresa.
func Branch(ctx context.Context, repo repository.BranchRepository, p access.Principal, action access.Action, id string) (*entity.Branch, error) {
	if id == "" {
		return nil, domain.ErrInvalidValue
	}
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.Authorize(p, action, b.CompanyID); err != nil {
		return nil, err
	}
	return b, nil
}

// Product obtiene el producto y verifica que sea de companyID.
func Product(ctx context.Context, repo repository.ProductRepository, companyID, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidValue
	}
	pr, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	if pr.CompanyID != companyID {
		return nil, domain.ErrCrossTenantAccess
	}
	return pr, nil
}

// Supplier obtiene el proveedor y verifica que sea de companyID.
func Supplier(ctx context.Context, repo repository.SupplierRepository, companyID, id string) (*entity.Supplier, error) {
	if id == "" {
		return nil, domain.ErrInvalidValue
	}
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrCrossTenantAccess
	}
	return s, nil
}
