package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.CompanyRepository       = (*CompanyRepo)(nil)
	_ repository.SubscriptionRepository  = (*SubscriptionRepo)(nil)
	_ repository.ClientRequestRepository = (*ClientRequestRepo)(nil)
)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, tax_id, active, created_at, updated_at`

func scanCompany(row scanner) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa. RUT repetido devuelve domain.ErrDuplicateKey.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, tax_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.TaxID, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("insert company", err)
	}
	return nil
}

func (r *CompanyRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, "get company", `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la empresa.
func (r *CompanyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, "get company for update", `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
}

// GetByTaxID obtiene una empresa por RUT.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	return r.getOne(ctx, "get company by tax id", `SELECT `+companyColumns+` FROM companies WHERE tax_id = $1`, taxID)
}

// List empresas por fecha de creación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	l, o := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at, id LIMIT $1 OFFSET $2`, l, o)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return collect(rows, "company", scanCompany)
}

// SubscriptionRepo plan vigente de cada empresa.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionSelect = `
	SELECT id, company_id, plan, start_date, end_date, active, max_branches, created_at, updated_at
	FROM subscriptions WHERE company_id = $1`

func (r *SubscriptionRepo) get(ctx context.Context, query, companyID string) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Plan, &s.StartDate, &s.EndDate, &s.Active, &s.MaxBranches,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// GetByCompany suscripción de la empresa; nil si no tiene.
func (r *SubscriptionRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return r.get(ctx, subscriptionSelect, companyID)
}

// GetByCompanyForUpdate igual que GetByCompany bloqueando la fila.
func (r *SubscriptionRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return r.get(ctx, subscriptionSelect+` FOR UPDATE`, companyID)
}

// Upsert inserta o reemplaza la suscripción de la empresa.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan, start_date, end_date, active, max_branches, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			active = EXCLUDED.active,
			max_branches = EXCLUDED.max_branches,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Plan, s.StartDate, s.EndDate, s.Active, s.MaxBranches, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return wrap("upsert subscription", err)
	}
	return nil
}

// ClientRequestRepo solicitudes de alta.
type ClientRequestRepo struct {
	q Querier
}

// NewClientRequestRepository construye el adaptador. Pasar pool o tx.
func NewClientRequestRepository(q Querier) *ClientRequestRepo {
	return &ClientRequestRepo{q: q}
}

const requestColumns = `id, company_name, tax_id, contact_name, contact_email, plan, status, created_at, updated_at`

func scanRequest(row scanner) (*entity.ClientRequest, error) {
	var c entity.ClientRequest
	err := row.Scan(&c.ID, &c.CompanyName, &c.TaxID, &c.ContactName, &c.ContactEmail, &c.Plan, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create registra la solicitud.
func (r *ClientRequestRepo) Create(ctx context.Context, c *entity.ClientRequest) error {
	query := `INSERT INTO client_requests (` + requestColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyName, c.TaxID, c.ContactName, c.ContactEmail, c.Plan, c.Status,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("insert client request", err)
	}
	return nil
}

func (r *ClientRequestRepo) get(ctx context.Context, query, id string) (*entity.ClientRequest, error) {
	c, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client request: %w", err)
	}
	return c, nil
}

// GetByID solicitud por ID.
func (r *ClientRequestRepo) GetByID(ctx context.Context, id string) (*entity.ClientRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM client_requests WHERE id = $1`, id)
}

// GetForUpdate bloquea la solicitud mientras se crea el tenant.
func (r *ClientRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.ClientRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM client_requests WHERE id = $1 FOR UPDATE`, id)
}

// ListByStatus más recientes primero; status vacío lista todas.
func (r *ClientRequestRepo) ListByStatus(ctx context.Context, status entity.RequestStatus, limit, offset int) ([]*entity.ClientRequest, error) {
	l, o := pageArgs(limit, offset)
	query := `
		SELECT ` + requestColumns + ` FROM client_requests
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(status), l, o)
	if err != nil {
		return nil, fmt.Errorf("list client requests: %w", err)
	}
	return collect(rows, "client request", scanRequest)
}

// UpdateStatus cambia el estado de la solicitud.
func (r *ClientRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE client_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update client request: %w", err)
	}
	return affected(tag)
}

// DeletePending borra solo si sigue pendiente (sentencia condicional).
func (r *ClientRequestRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM client_requests WHERE id = $1 AND status = $2`, id, entity.RequestPending)
	if err != nil {
		return false, fmt.Errorf("delete client request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
