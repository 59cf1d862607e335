package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*saleRepo)(nil)
	_ repository.PurchaseRepository = (*purchaseRepo)(nil)
	_ repository.OrderRepository    = (*orderRepo)(nil)
	_ repository.CartRepository     = (*cartRepo)(nil)
)

type saleRepo struct{ s *session }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	t, done := r.s.view()
	defer done()
	v := *sale
	v.Items = slices.Clone(sale.Items)
	t.sales[v.ID] = record[entity.Sale]{v: v, seq: t.next()}
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	t, done := r.s.view()
	defer done()
	rec, ok := t.sales[id]
	if !ok {
		return nil, nil
	}
	v := rec.v
	v.Items = slices.Clone(rec.v.Items)
	return &v, nil
}

// List más recientes primero.
func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	t, done := r.s.view()
	defer done()
	list := t.sales.list(func(s entity.Sale) bool { return matchSale(s, f) })
	slices.Reverse(list)
	return pointers(page(list, f.Limit, f.Offset)), nil
}

func matchSale(s entity.Sale, f repository.SaleFilter) bool {
	if f.CompanyID != "" && s.CompanyID != f.CompanyID {
		return false
	}
	if f.BranchID != "" && s.BranchID != f.BranchID {
		return false
	}
	if f.From != nil && s.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !s.CreatedAt.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

type purchaseRepo struct{ s *session }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	t, done := r.s.view()
	defer done()
	v := *p
	v.Items = slices.Clone(p.Items)
	t.purchases[v.ID] = record[entity.Purchase]{v: v, seq: t.next()}
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	t, done := r.s.view()
	defer done()
	rec, ok := t.purchases[id]
	if !ok {
		return nil, nil
	}
	v := rec.v
	v.Items = slices.Clone(rec.v.Items)
	return &v, nil
}

type orderRepo struct{ s *session }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	t, done := r.s.view()
	defer done()
	v := *o
	v.Items = slices.Clone(o.Items)
	t.orders[v.ID] = record[entity.Order]{v: v, seq: t.next()}
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	t, done := r.s.view()
	defer done()
	rec, ok := t.orders[id]
	if !ok {
		return nil, nil
	}
	v := rec.v
	v.Items = slices.Clone(rec.v.Items)
	return &v, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	t, done := r.s.view()
	defer done()
	rec, ok := t.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.v.Status = status
	rec.v.UpdatedAt = time.Now()
	t.orders[id] = rec
	return nil
}

// ListByCompany más recientes primero; status vacío no filtra.
func (r *orderRepo) ListByCompany(_ context.Context, companyID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	t, done := r.s.view()
	defer done()
	list := t.orders.list(func(o entity.Order) bool {
		return o.CompanyID == companyID && (status == "" || o.Status == status)
	})
	slices.Reverse(list)
	return pointers(page(list, limit, offset)), nil
}

type cartRepo struct{ s *session }

func (r *cartRepo) AddQuantity(_ context.Context, userID, productID string, qty int) (*entity.CartItem, error) {
	t, done := r.s.view()
	defer done()
	now := time.Now()
	k := cartKey{userID, productID}
	rec, ok := t.cart[k]
	if !ok {
		rec = record[entity.CartItem]{
			v:   entity.CartItem{ID: uuid.New().String(), UserID: userID, ProductID: productID, CreatedAt: now},
			seq: t.next(),
		}
	}
	rec.v.Quantity += qty
	rec.v.UpdatedAt = now
	t.cart[k] = rec
	return ptr(rec.v), nil
}

func (r *cartRepo) ListByUser(_ context.Context, userID string) ([]*entity.CartItem, error) {
	t, done := r.s.view()
	defer done()
	recs := make([]record[entity.CartItem], 0)
	for k, rec := range t.cart {
		if k.userID == userID {
			recs = append(recs, rec)
		}
	}
	slices.SortFunc(recs, func(a, b record[entity.CartItem]) int { return int(a.seq - b.seq) })
	out := make([]*entity.CartItem, len(recs))
	for i := range recs {
		out[i] = ptr(recs[i].v)
	}
	return out, nil
}

func (r *cartRepo) ListByUserForUpdate(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	return r.ListByUser(ctx, userID)
}

func (r *cartRepo) Remove(_ context.Context, userID, productID string) error {
	t, done := r.s.view()
	defer done()
	k := cartKey{userID, productID}
	if _, ok := t.cart[k]; !ok {
		return domain.ErrNotFound
	}
	delete(t.cart, k)
	return nil
}

func (r *cartRepo) DeleteByUser(_ context.Context, userID string) (int, error) {
	t, done := r.s.view()
	defer done()
	n := 0
	for k := range t.cart {
		if k.userID == userID {
			delete(t.cart, k)
			n++
		}
	}
	return n, nil
}
