package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cost se recalcula con las compras.
type ProductUseCase struct {
	repo      repository.ProductRepository
	companies repository.CompanyRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, companies repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, companies: companies}
}

// Create crea un producto en la empresa del principal. SKU único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidValue
	}
	if err := checkAmounts(in.Price, in.Cost); err != nil {
		return nil, err
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, domain.ErrInvalidValue
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateKey
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         sku,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa del principal.
func (uc *ProductUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProductResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionViewCatalog, companyID); err != nil {
		return nil, err
	}
	product, err := guard.Product(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El SKU no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return nil, err
	}
	product, err := guard.Product(ctx, uc.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidValue
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if err := checkAmounts(product.Price, product.Cost); err != nil {
		return nil, err
	}
	if in.Category != nil {
		category, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, domain.ErrInvalidValue
		}
		product.Category = category
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa del principal.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ProductListResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionViewCatalog, companyID); err != nil {
		return nil, err
	}
	return uc.list(ctx, companyID, page)
}

// Storefront catálogo público de una empresa activa para la tienda web.
func (uc *ProductUseCase) Storefront(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Active {
		return nil, domain.ErrNotFound
	}
	out, err := uc.list(ctx, companyID, page)
	if err != nil {
		return nil, err
	}
	for i := range out.Items {
		out.Items[i].Cost = decimal.Zero
	}
	return out, nil
}

func (uc *ProductUseCase) list(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto y sus filas de inventario; si ya se vendió, compró o pidió devuelve domain.ErrInUse.
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return err
	}
	if err := access.Authorize(p, access.ActionManageCatalog, companyID); err != nil {
		return err
	}
	if _, err := guard.Product(ctx, uc.repo, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func checkAmounts(price, cost decimal.Decimal) error {
	if price.IsNegative() || cost.IsNegative() {
		return domain.ErrInvalidValue
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Category:    string(p.Category),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
