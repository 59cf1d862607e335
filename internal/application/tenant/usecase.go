// Package tenant administra empresas, suscripciones y solicitudes de alta.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/plan"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

// TenantUseCase directorio de tenants: empresas, planes y solicitudes de alta.
type TenantUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	taxIDs   ports.TaxIDValidator
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	taxIDs ports.TaxIDValidator,
	events ports.EventPublisher,
	log zerolog.Logger,
) *TenantUseCase {
	return &TenantUseCase{txRunner: txRunner, repos: repos, taxIDs: taxIDs, events: events, log: log, now: time.Now}
}

// ResolvePlanLimit máximo de sucursales de la empresa. Sin suscripción activa no hay capacidad.
func (uc *TenantUseCase) ResolvePlanLimit(ctx context.Context, companyID string) (int, error) {
	sub, err := uc.repos.Subscriptions.GetByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if sub == nil || !sub.Active {
		return 0, domain.ErrNoSubscription
	}
	return sub.MaxBranches, nil
}

// PlanLimit plan de la empresa del principal y sucursales en uso.
func (uc *TenantUseCase) PlanLimit(ctx context.Context, p access.Principal) (*dto.PlanLimitResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	sub, err := uc.repos.Subscriptions.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub == nil || !sub.Active {
		return nil, domain.ErrNoSubscription
	}
	used, err := uc.repos.Branches.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.PlanLimitResponse{Plan: string(sub.Plan), MaxBranches: sub.MaxBranches, BranchesUsed: used}, nil
}

// GetSubscription suscripción de la empresa del principal.
func (uc *TenantUseCase) GetSubscription(ctx context.Context, p access.Principal) (*dto.SubscriptionResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	sub, err := uc.repos.Subscriptions.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNoSubscription
	}
	out := dto.FromSubscription(sub)
	return &out, nil
}

// ApplyPlan crea o actualiza la suscripción de la empresa. Repetir el mismo plan no cambia las fechas.
func (uc *TenantUseCase) ApplyPlan(ctx context.Context, p access.Principal, companyID, tier string) (*dto.SubscriptionResponse, error) {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return nil, err
	}
	t, err := plan.ParseTier(tier)
	if err != nil {
		return nil, err
	}
	var sub *entity.Subscription
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		company, err := r.Companies.GetForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		sub, err = uc.applyPlan(ctx, r, companyID, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSubscription(sub)
	return &out, nil
}

func (uc *TenantUseCase) applyPlan(ctx context.Context, r repository.Repos, companyID string, t entity.PlanTier) (*entity.Subscription, error) {
	current, err := r.Subscriptions.GetByCompanyForUpdate(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sub, err := plan.Apply(current, companyID, t, uc.now())
	if err != nil {
		return nil, err
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if err := r.Subscriptions.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("guardar suscripción: %w", err)
	}
	return sub, nil
}

// CreateTenantFromRequest aprueba una solicitud pendiente: crea la empresa, su plan y el
// usuario admin_cliente con una contraseña temporal. Todo o nada.
func (uc *TenantUseCase) CreateTenantFromRequest(ctx context.Context, p access.Principal, requestID string, in dto.CreateTenantRequest) (*dto.CreateTenantResponse, error) {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return nil, err
	}
	companyName := strings.TrimSpace(in.CompanyName)
	username := strings.TrimSpace(in.AdminUsername)
	email := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if requestID == "" || companyName == "" || username == "" || email == "" || strings.TrimSpace(in.AdminTaxID) == "" {
		return nil, domain.ErrInvalidValue
	}
	if !uc.taxIDs.Validate(in.AdminTaxID) {
		return nil, domain.ErrInvalidTaxID
	}
	adminTaxID, err := rut.Normalize(in.AdminTaxID)
	if err != nil {
		return nil, domain.ErrInvalidTaxID
	}
	password, err := GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("generar contraseña: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var (
		company *entity.Company
		sub     *entity.Subscription
		admin   *entity.User
	)
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		req, err := r.ClientRequests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		taxID := strings.TrimSpace(in.TaxID)
		if taxID == "" {
			taxID = req.TaxID
		}
		if !uc.taxIDs.Validate(taxID) {
			return domain.ErrInvalidTaxID
		}
		if taxID, err = rut.Normalize(taxID); err != nil {
			return domain.ErrInvalidTaxID
		}
		existing, err := r.Companies.GetByTaxID(ctx, taxID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateTenant
		}
		if req.Status != entity.RequestPending {
			return domain.ErrRequestNotPending
		}

		now := uc.now()
		company = &entity.Company{
			ID:        uuid.New().String(),
			Name:      companyName,
			TaxID:     taxID,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Companies.Create(ctx, company); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return domain.ErrDuplicateTenant
			}
			return err
		}
		if sub, err = uc.applyPlan(ctx, r, company.ID, req.Plan); err != nil {
			return err
		}
		admin = &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    company.ID,
			Username:     username,
			Email:        email,
			TaxID:        adminTaxID,
			Name:         username,
			PasswordHash: string(hash),
			Role:         entity.RoleAdminClient,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Users.Create(ctx, admin); err != nil {
			return err
		}
		return r.ClientRequests.UpdateStatus(ctx, req.ID, entity.RequestAccepted)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("request_id", requestID).Msg("empresa creada desde solicitud")
	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventTenantCreated,
		CompanyID:   company.ID,
		AggregateID: company.ID,
		Payload:     map[string]any{"name": company.Name, "tax_id": company.TaxID, "plan": sub.Plan},
	})
	return &dto.CreateTenantResponse{
		Company:           dto.FromCompany(company),
		Subscription:      dto.FromSubscription(sub),
		Admin:             dto.FromUser(admin),
		TemporaryPassword: password,
	}, nil
}

// SubmitRequest registra una solicitud de alta desde el formulario público.
func (uc *TenantUseCase) SubmitRequest(ctx context.Context, in dto.ClientRequestCreate) (*dto.ClientRequestResponse, error) {
	name := strings.TrimSpace(in.CompanyName)
	email := strings.ToLower(strings.TrimSpace(in.ContactEmail))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidValue
	}
	if !uc.taxIDs.Validate(in.TaxID) {
		return nil, domain.ErrInvalidTaxID
	}
	taxID, err := rut.Normalize(in.TaxID)
	if err != nil {
		return nil, domain.ErrInvalidTaxID
	}
	t, err := plan.ParseTier(in.Plan)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	req := &entity.ClientRequest{
		ID:           uuid.New().String(),
		CompanyName:  name,
		TaxID:        taxID,
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: email,
		Plan:         t,
		Status:       entity.RequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.ClientRequests.Create(ctx, req); err != nil {
		return nil, err
	}
	out := toRequestResponse(req)
	return &out, nil
}

// ListRequests solicitudes filtradas por estado (vacío = todas).
func (uc *TenantUseCase) ListRequests(ctx context.Context, p access.Principal, status string, page dto.PageRequest) ([]dto.ClientRequestResponse, error) {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return nil, err
	}
	st := entity.RequestStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch st {
	case "", entity.RequestPending, entity.RequestAccepted, entity.RequestRejected:
	default:
		return nil, domain.ErrInvalidValue
	}
	page.DefaultPage()
	list, err := uc.repos.ClientRequests.ListByStatus(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

// RejectRequest marca como rechazada una solicitud pendiente.
func (uc *TenantUseCase) RejectRequest(ctx context.Context, p access.Principal, id string) error {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		req, err := r.ClientRequests.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestPending {
			return domain.ErrRequestNotPending
		}
		return r.ClientRequests.UpdateStatus(ctx, id, entity.RequestRejected)
	})
}

// DeleteRequest elimina una solicitud que sigue pendiente.
func (uc *TenantUseCase) DeleteRequest(ctx context.Context, p access.Principal, id string) error {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return err
	}
	deleted, err := uc.repos.ClientRequests.DeletePending(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	req, err := uc.repos.ClientRequests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return domain.ErrRequestNotPending
}

// GetCompany detalle de una empresa (super_admin).
func (uc *TenantUseCase) GetCompany(ctx context.Context, p access.Principal, id string) (*dto.CompanyResponse, error) {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return nil, err
	}
	c, err := uc.repos.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromCompany(c)
	return &out, nil
}

// ListCompanies lista paginada de empresas (super_admin).
func (uc *TenantUseCase) ListCompanies(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := access.Authorize(p, access.ActionManageTenants, ""); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Companies.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCompany(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toRequestResponse(r *entity.ClientRequest) dto.ClientRequestResponse {
	return dto.ClientRequestResponse{
		ID:           r.ID,
		CompanyName:  r.CompanyName,
		TaxID:        r.TaxID,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		Plan:         string(r.Plan),
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}
