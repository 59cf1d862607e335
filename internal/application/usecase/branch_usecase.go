package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// BranchUseCase sucursales de la empresa. La creación respeta el límite del plan.
type BranchUseCase struct {
	txRunner repository.TxRunner
	repo     repository.BranchRepository
	log      zerolog.Logger
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(txRunner repository.TxRunner, repo repository.BranchRepository, log zerolog.Logger) *BranchUseCase {
	return &BranchUseCase{txRunner: txRunner, repo: repo, log: log}
}

// Create crea una sucursal. Bloquea la suscripción de la empresa, recuenta y luego inserta:
// dos altas concurrentes no pueden superar MaxBranches.
func (uc *BranchUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageBranches, companyID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidValue
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		sub, err := r.Subscriptions.GetByCompanyForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if sub == nil || !sub.Active {
			return fmt.Errorf("%w: %w", domain.ErrPlanLimitExceeded, domain.ErrNoSubscription)
		}
		count, err := r.Branches.CountByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if count >= sub.MaxBranches {
			uc.log.Info().Str("company_id", companyID).Int("max_branches", sub.MaxBranches).Msg("límite de sucursales alcanzado")
			return domain.ErrPlanLimitExceeded
		}
		return r.Branches.Create(ctx, branch)
	})
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID detalle de una sucursal de la empresa del principal.
func (uc *BranchUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.BranchResponse, error) {
	b, err := guard.Branch(ctx, uc.repo, p, access.ActionViewCatalog, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Update actualiza los datos de la sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	b, err := guard.Branch(ctx, uc.repo, p, access.ActionManageBranches, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidValue
		}
		b.Name = name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// List sucursales de la empresa en orden de creación.
func (uc *BranchUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.BranchListResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionViewCatalog, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina la sucursal junto con su inventario y libera un cupo del plan.
// Con ventas, compras u órdenes registradas devuelve domain.ErrInUse.
func (uc *BranchUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if _, err := guard.Branch(ctx, uc.repo, p, access.ActionManageBranches, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
