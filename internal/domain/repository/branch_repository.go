package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	// FirstByCompany sucursal más antigua de la empresa (despacho de la tienda web); nil si no hay.
	FirstByCompany(ctx context.Context, companyID string) (*entity.Branch, error)
}
