package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

// SupplierUseCase proveedores de la empresa. El RUT se valida con el dígito verificador.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	taxIDs ports.TaxIDValidator
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, taxIDs ports.TaxIDValidator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, taxIDs: taxIDs}
}

func (uc *SupplierUseCase) normalizeTaxID(s string) (string, error) {
	if !uc.taxIDs.Validate(s) {
		return "", domain.ErrInvalidTaxID
	}
	taxID, err := rut.Normalize(s)
	if err != nil {
		return "", domain.ErrInvalidTaxID
	}
	return taxID, nil
}

func (uc *SupplierUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidValue
	}
	taxID, err := uc.normalizeTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateKey
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		TaxID:     taxID,
		Contact:   in.Contact,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.SupplierResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	s, err := guard.Supplier(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update cambia datos del proveedor; un RUT nuevo se valida y debe seguir siendo único.
func (uc *SupplierUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	s, err := guard.Supplier(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidValue
		}
		s.Name = name
	}
	if in.TaxID != nil {
		taxID, err := uc.normalizeTaxID(*in.TaxID)
		if err != nil {
			return nil, err
		}
		if taxID != s.TaxID {
			other, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicateKey
			}
			s.TaxID = taxID
		}
	}
	if in.Contact != nil {
		s.Contact = *in.Contact
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina el proveedor; con compras registradas devuelve domain.ErrInUse.
func (uc *SupplierUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return err
	}
	if _, err := guard.Supplier(ctx, uc.repo, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Contact:   s.Contact,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}
