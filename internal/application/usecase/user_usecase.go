package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

const minPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios y resuelve la identidad de cada request.
type UserUseCase struct {
	repos  repository.Repos
	taxIDs ports.TaxIDValidator
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repos repository.Repos, taxIDs ports.TaxIDValidator) *UserUseCase {
	return &UserUseCase{repos: repos, taxIDs: taxIDs}
}

// Create crea un usuario de staff.
// super_admin solo crea admin_cliente (para cualquier empresa); admin_cliente crea gerente y vendedor en la suya.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(strings.TrimSpace(in.Role))
	companyID := strings.TrimSpace(in.CompanyID)
	if companyID == "" && p.Role != entity.RoleSuperAdmin {
		companyID = p.CompanyID
	}
	switch p.Role {
	case entity.RoleSuperAdmin:
		if role != entity.RoleAdminClient || companyID == "" {
			return nil, domain.ErrInvalidValue
		}
	case entity.RoleAdminClient:
		if role != entity.RoleManager && role != entity.RoleSeller {
			return nil, domain.ErrForbidden
		}
	}
	if err := access.Authorize(p, access.ActionManageUsers, companyID); err != nil {
		return nil, err
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.BranchID != "" {
		branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionManageUsers, in.BranchID)
		if err != nil {
			return nil, err
		}
		if branch.CompanyID != companyID {
			return nil, domain.ErrCrossTenantAccess
		}
	}
	taxID := ""
	if strings.TrimSpace(in.TaxID) != "" {
		if !uc.taxIDs.Validate(in.TaxID) {
			return nil, domain.ErrInvalidTaxID
		}
		if taxID, err = rut.Normalize(in.TaxID); err != nil {
			return nil, domain.ErrInvalidTaxID
		}
	}
	user, err := uc.newUser(ctx, in.Username, in.Email, in.Password, in.Name, role)
	if err != nil {
		return nil, err
	}
	user.CompanyID = companyID
	user.BranchID = in.BranchID
	user.TaxID = taxID
	if err := uc.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

// RegisterCustomer alta pública de un cliente_final (sin empresa).
func (uc *UserUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterCustomerRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in.Username, in.Email, in.Password, in.Name, entity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

func (uc *UserUseCase) newUser(ctx context.Context, username, email, password, name string, role entity.Role) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || !strings.Contains(email, "@") || len(password) < minPasswordLength {
		return nil, domain.ErrInvalidValue
	}
	existing, err := uc.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateKey
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetByID devuelve el propio usuario o uno que el principal administre.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.UserResponse, error) {
	user, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.ID != p.UserID {
		if err := access.Authorize(p, access.ActionManageUsers, user.CompanyID); err != nil {
			return nil, err
		}
	}
	out := dto.FromUser(user)
	return &out, nil
}

// List usuarios de una empresa. admin_cliente ve la suya; super_admin indica companyID.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if companyID == "" {
		companyID = p.CompanyID
	}
	if companyID == "" {
		return nil, domain.ErrInvalidValue
	}
	if err := access.Authorize(p, access.ActionManageUsers, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Users.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.FromUser(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Resolve identidad vigente del usuario: empresa, rol y si está activo.
// El token solo prueba quién es; los permisos se leen siempre del repositorio.
func (uc *UserUseCase) Resolve(ctx context.Context, userID string) (access.Principal, error) {
	user, err := uc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	if user == nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	return access.Principal{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		Active:    user.Active,
	}, nil
}
