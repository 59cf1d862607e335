package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.BranchRepository   = (*branchRepo)(nil)
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.SupplierRepository = (*supplierRepo)(nil)
)

type branchRepo struct{ s *session }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	t, done := r.s.view()
	defer done()
	t.branches[b.ID] = record[entity.Branch]{v: *b, seq: t.next()}
	return nil
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	t, done := r.s.view()
	defer done()
	if rec, ok := t.branches[id]; ok {
		return ptr(rec.v), nil
	}
	return nil, nil
}

func (r *branchRepo) Update(_ context.Context, b *entity.Branch) error {
	t, done := r.s.view()
	defer done()
	rec, ok := t.branches[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.v = *b
	t.branches[b.ID] = rec
	return nil
}

// Delete igual que el esquema SQL: inventario en cascada, usuarios sin sucursal y
// ErrInUse si hay ventas, compras u órdenes de la sucursal.
func (r *branchRepo) Delete(_ context.Context, id string) error {
	t, done := r.s.view()
	defer done()
	for _, s := range t.sales {
		if s.v.BranchID == id {
			return domain.ErrInUse
		}
	}
	for _, p := range t.purchases {
		if p.v.BranchID == id {
			return domain.ErrInUse
		}
	}
	for _, o := range t.orders {
		if o.v.BranchID == id {
			return domain.ErrInUse
		}
	}
	for uid, u := range t.users {
		if u.v.BranchID == id {
			u.v.BranchID = ""
			t.users[uid] = u
		}
	}
	for k := range t.inventory {
		if k.branchID == id {
			delete(t.inventory, k)
		}
	}
	delete(t.branches, id)
	return nil
}

func (r *branchRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Branch, error) {
	t, done := r.s.view()
	defer done()
	list := t.branches.list(func(b entity.Branch) bool { return b.CompanyID == companyID })
	return pointers(page(list, limit, offset)), nil
}

func (r *branchRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	t, done := r.s.view()
	defer done()
	n := 0
	for _, rec := range t.branches {
		if rec.v.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *branchRepo) FirstByCompany(_ context.Context, companyID string) (*entity.Branch, error) {
	t, done := r.s.view()
	defer done()
	list := t.branches.list(func(b entity.Branch) bool { return b.CompanyID == companyID })
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

type productRepo struct{ s *session }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	t, done := r.s.view()
	defer done()
	for _, rec := range t.products {
		if rec.v.CompanyID == p.CompanyID && rec.v.SKU == p.SKU {
			return domain.ErrDuplicateKey
		}
	}
	t.products[p.ID] = record[entity.Product]{v: *p, seq: t.next()}
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	t, done := r.s.view()
	defer done()
	if rec, ok := t.products[id]; ok {
		return ptr(rec.v), nil
	}
	return nil, nil
}

// GetForUpdate la transacción ya tiene el store en exclusiva.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	t, done := r.s.view()
	defer done()
	for _, rec := range t.products {
		if rec.v.CompanyID == companyID && rec.v.SKU == sku {
			return ptr(rec.v), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	t, done := r.s.view()
	defer done()
	rec, ok := t.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.v = *p
	t.products[p.ID] = rec
	return nil
}

func (r *productRepo) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	t, done := r.s.view()
	defer done()
	rec, ok := t.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.v.Cost = cost
	t.products[productID] = rec
	return nil
}

func (r *productRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	t, done := r.s.view()
	defer done()
	list := t.products.list(func(p entity.Product) bool { return p.CompanyID == companyID })
	return pointers(page(list, limit, offset)), nil
}

// Delete borra inventario y carritos del producto; ErrInUse si aparece en ventas, compras u órdenes.
func (r *productRepo) Delete(_ context.Context, id string) error {
	t, done := r.s.view()
	defer done()
	if productReferenced(t, id) {
		return domain.ErrInUse
	}
	for k := range t.inventory {
		if k.productID == id {
			delete(t.inventory, k)
		}
	}
	for k := range t.cart {
		if k.productID == id {
			delete(t.cart, k)
		}
	}
	delete(t.products, id)
	return nil
}

type supplierRepo struct{ s *session }

func (r *supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	t, done := r.s.view()
	defer done()
	for _, rec := range t.suppliers {
		if rec.v.CompanyID == sp.CompanyID && rec.v.TaxID == sp.TaxID {
			return domain.ErrDuplicateKey
		}
	}
	t.suppliers[sp.ID] = record[entity.Supplier]{v: *sp, seq: t.next()}
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	t, done := r.s.view()
	defer done()
	if rec, ok := t.suppliers[id]; ok {
		return ptr(rec.v), nil
	}
	return nil, nil
}

func (r *supplierRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Supplier, error) {
	t, done := r.s.view()
	defer done()
	for _, rec := range t.suppliers {
		if rec.v.CompanyID == companyID && rec.v.TaxID == taxID {
			return ptr(rec.v), nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	t, done := r.s.view()
	defer done()
	rec, ok := t.suppliers[sp.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range t.suppliers {
		if id != sp.ID && other.v.CompanyID == sp.CompanyID && other.v.TaxID == sp.TaxID {
			return domain.ErrDuplicateKey
		}
	}
	rec.v = *sp
	t.suppliers[sp.ID] = rec
	return nil
}

func (r *supplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	t, done := r.s.view()
	defer done()
	list := t.suppliers.list(func(s entity.Supplier) bool { return s.CompanyID == companyID })
	return pointers(page(list, limit, offset)), nil
}

// Delete ErrInUse si el proveedor tiene compras.
func (r *supplierRepo) Delete(_ context.Context, id string) error {
	t, done := r.s.view()
	defer done()
	for _, p := range t.purchases {
		if p.v.SupplierID == id {
			return domain.ErrInUse
		}
	}
	delete(t.suppliers, id)
	return nil
}

func productReferenced(t *tables, productID string) bool {
	for _, s := range t.sales {
		for _, it := range s.v.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	for _, p := range t.purchases {
		for _, it := range p.v.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	for _, o := range t.orders {
		for _, it := range o.v.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	return false
}
