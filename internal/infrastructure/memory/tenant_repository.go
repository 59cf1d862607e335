package memory

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/plan"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.CompanyRepository       = (*companyRepo)(nil)
	_ repository.SubscriptionRepository  = (*subscriptionRepo)(nil)
	_ repository.ClientRequestRepository = (*clientRequestRepo)(nil)
	_ repository.UserRepository          = (*userRepo)(nil)
)

type companyRepo struct{ s *session }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	t, done := r.s.view()
	defer done()
	for _, row := range t.companies {
		if row.v.TaxID == c.TaxID {
			return domain.ErrDuplicateKey
		}
	}
	t.companies[c.ID] = record[entity.Company]{v: *c, seq: t.next()}
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	t, done := r.s.view()
	defer done()
	if row, ok := t.companies[id]; ok {
		return ptr(row.v), nil
	}
	return nil, nil
}

func (r *companyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r *companyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	t, done := r.s.view()
	defer done()
	for _, row := range t.companies {
		if row.v.TaxID == taxID {
			return ptr(row.v), nil
		}
	}
	return nil, nil
}

func (r *companyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	t, done := r.s.view()
	defer done()
	return pointers(page(t.companies.list(nil), limit, offset)), nil
}

type subscriptionRepo struct{ s *session }

func (r *subscriptionRepo) GetByCompany(_ context.Context, companyID string) (*entity.Subscription, error) {
	t, done := r.s.view()
	defer done()
	if row, ok := t.subscriptions[companyID]; ok {
		return ptr(row.v), nil
	}
	return nil, nil
}

// GetByCompanyForUpdate en memoria la transacción ya es exclusiva.
func (r *subscriptionRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return r.GetByCompany(ctx, companyID)
}

func (r *subscriptionRepo) Upsert(_ context.Context, sub *entity.Subscription) error {
	t, done := r.s.view()
	defer done()
	v := *sub
	v.MaxBranches = plan.MaxBranches(v.Plan)
	seq := t.next()
	if existing, ok := t.subscriptions[v.CompanyID]; ok {
		seq = existing.seq
		v.ID = existing.v.ID
		v.CreatedAt = existing.v.CreatedAt
	}
	t.subscriptions[v.CompanyID] = record[entity.Subscription]{v: v, seq: seq}
	sub.ID, sub.MaxBranches = v.ID, v.MaxBranches
	return nil
}

type clientRequestRepo struct{ s *session }

func (r *clientRequestRepo) Create(_ context.Context, req *entity.ClientRequest) error {
	t, done := r.s.view()
	defer done()
	t.requests[req.ID] = record[entity.ClientRequest]{v: *req, seq: t.next()}
	return nil
}

func (r *clientRequestRepo) GetByID(_ context.Context, id string) (*entity.ClientRequest, error) {
	t, done := r.s.view()
	defer done()
	if row, ok := t.requests[id]; ok {
		return ptr(row.v), nil
	}
	return nil, nil
}

func (r *clientRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.ClientRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *clientRequestRepo) ListByStatus(_ context.Context, status entity.RequestStatus, limit, offset int) ([]*entity.ClientRequest, error) {
	t, done := r.s.view()
	defer done()
	list := t.requests.list(func(c entity.ClientRequest) bool { return status == "" || c.Status == status })
	return pointers(page(list, limit, offset)), nil
}

func (r *clientRequestRepo) UpdateStatus(_ context.Context, id string, status entity.RequestStatus) error {
	t, done := r.s.view()
	defer done()
	existing, ok := t.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	existing.v.Status = status
	t.requests[id] = existing
	return nil
}

func (r *clientRequestRepo) DeletePending(_ context.Context, id string) (bool, error) {
	t, done := r.s.view()
	defer done()
	existing, ok := t.requests[id]
	if !ok || existing.v.Status != entity.RequestPending {
		return false, nil
	}
	delete(t.requests, id)
	return true, nil
}

type userRepo struct{ s *session }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	t, done := r.s.view()
	defer done()
	for _, row := range t.users {
		if row.v.Username == u.Username || (u.Email != "" && row.v.Email == u.Email) {
			return domain.ErrDuplicateKey
		}
	}
	t.users[u.ID] = record[entity.User]{v: *u, seq: t.next()}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	t, done := r.s.view()
	defer done()
	if row, ok := t.users[id]; ok {
		return ptr(row.v), nil
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	t, done := r.s.view()
	defer done()
	for _, row := range t.users {
		if row.v.Username == username {
			return ptr(row.v), nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	t, done := r.s.view()
	defer done()
	list := t.users.list(func(u entity.User) bool { return u.CompanyID == companyID })
	return pointers(page(list, limit, offset)), nil
}

func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
