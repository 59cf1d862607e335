package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// BranchRepo sucursales sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchSelect = `SELECT id, company_id, name, address, phone, created_at, updated_at FROM branches`

func scanBranch(row scanner) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste la sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, company_id, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, b.ID, b.CompanyID, b.Name, b.Address, b.Phone, b.CreatedAt, b.UpdatedAt); err != nil {
		return wrap("insert branch", err)
	}
	return nil
}

func (r *BranchRepo) getOne(ctx context.Context, query string, arg any) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// GetByID sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return r.getOne(ctx, branchSelect+` WHERE id = $1`, id)
}

// Update actualiza nombre y datos de contacto.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE branches SET name = $2, address = $3, phone = $4, updated_at = $5 WHERE id = $1`,
		b.ID, b.Name, b.Address, b.Phone, b.UpdatedAt)
	if err != nil {
		return wrap("update branch", err)
	}
	return affected(tag)
}

// Delete elimina la sucursal y su inventario; con ventas, compras u órdenes asociadas devuelve domain.ErrInUse.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id); err != nil {
		return wrap("delete branch", err)
	}
	return nil
}

// ListByCompany sucursales por antigüedad.
func (r *BranchRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error) {
	l, o := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, branchSelect+` WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`, companyID, l, o)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return collect(rows, "branch", scanBranch)
}

// CountByCompany número de sucursales de la empresa.
func (r *BranchRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM branches WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count branches: %w", err)
	}
	return n, nil
}

// FirstByCompany sucursal más antigua; nil si la empresa no tiene.
func (r *BranchRepo) FirstByCompany(ctx context.Context, companyID string) (*entity.Branch, error) {
	return r.getOne(ctx, branchSelect+` WHERE company_id = $1 ORDER BY created_at, id LIMIT 1`, companyID)
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT id, company_id, sku, name, description, price, cost, category, created_at, updated_at
	FROM products`

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Category,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU repetido en la empresa devuelve domain.ErrDuplicateKey.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, description, price, cost, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Description, p.Price, p.Cost, p.Category, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrap("insert product", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, ` WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto con SELECT FOR UPDATE; usar dentro de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, ` WHERE id = $1 FOR UPDATE`, id)
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, ` WHERE company_id = $1 AND sku = $2`, companyID, sku)
}

// Update actualiza los datos del catálogo; el costo solo cambia vía UpdateCost.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, price = $5, category = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.SKU, p.Name, p.Description, p.Price, p.Category, p.UpdatedAt)
	if err != nil {
		return wrap("update product", err)
	}
	return affected(tag)
}

// UpdateCost actualiza el costo promedio ponderado.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return affected(tag)
}

// ListByCompany productos de la empresa por antigüedad.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	l, o := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, productSelect+` WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`, companyID, l, o)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collect(rows, "product", scanProduct)
}

// Delete elimina el producto (su inventario y carritos en cascada); con ventas devuelve domain.ErrInUse.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return wrap("delete product", err)
	}
	return nil
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `
	SELECT id, company_id, name, tax_id, contact, email, phone, created_at, updated_at
	FROM suppliers`

func scanSupplier(row scanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.TaxID, &s.Contact, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste el proveedor. RUT repetido en la empresa devuelve domain.ErrDuplicateKey.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, tax_id, contact, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.TaxID, s.Contact, s.Email, s.Phone, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return wrap("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, supplierSelect+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// GetByID proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.getOne(ctx, ` WHERE id = $1`, id)
}

// GetByCompanyAndTaxID proveedor de la empresa con ese RUT.
func (r *SupplierRepo) GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error) {
	return r.getOne(ctx, ` WHERE company_id = $1 AND tax_id = $2`, companyID, taxID)
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, tax_id = $3, contact = $4, email = $5, phone = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.TaxID, s.Contact, s.Email, s.Phone, s.UpdatedAt)
	if err != nil {
		return wrap("update supplier", err)
	}
	return affected(tag)
}

// ListByCompany proveedores por antigüedad.
func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	l, o := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, supplierSelect+` WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`, companyID, l, o)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return collect(rows, "supplier", scanSupplier)
}

// Delete elimina el proveedor; con compras asociadas devuelve domain.ErrInUse.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id); err != nil {
		return wrap("delete supplier", err)
	}
	return nil
}
