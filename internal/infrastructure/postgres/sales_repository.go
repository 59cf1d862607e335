package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.CartRepository     = (*CartRepo)(nil)
)

// SaleRepo ventas e ítems. Las ventas no se modifican.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y sus ítems; llamar dentro de la transacción de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, branch_id, user_id, total, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.BranchID, s.UserID, s.Total, s.PaymentMethod, s.CreatedAt); err != nil {
		return wrap("insert sale", err)
	}
	for i, it := range s.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, position, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, s.ID, i, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return wrap("insert sale item", err)
		}
	}
	return nil
}

const saleSelect = `SELECT id, company_id, branch_id, user_id, total, payment_method, created_at FROM sales`

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.CompanyID, &s.BranchID, &s.UserID, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID venta con sus ítems.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas filtradas, más recientes primero, con sus ítems.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	l, o := pageArgs(f.Limit, f.Offset)
	query := saleSelect + `
		WHERE company_id = $1
		  AND ($2::text = '' OR branch_id::text = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		ORDER BY created_at DESC, id
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.BranchID, f.From, dayAfter(f.To), l, o)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := collect(rows, "sale", scanSale)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price
		FROM sale_items WHERE sale_id::text = ANY($1::text[])
		ORDER BY sale_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	items, err := collect(rows, "sale item", func(row scanner) (*entity.SaleItem, error) {
		var it entity.SaleItem
		if err := row.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		return &it, nil
	})
	if err != nil {
		return err
	}
	for _, it := range items {
		s := byID[it.SaleID]
		s.Items = append(s.Items, *it)
	}
	return nil
}

// PurchaseRepo recepciones de compra.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la compra y sus ítems.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, company_id, supplier_id, branch_id, date, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.SupplierID, p.BranchID, p.Date, p.UserID, p.CreatedAt); err != nil {
		return wrap("insert purchase", err)
	}
	for i, it := range p.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO purchase_items (id, purchase_id, position, product_id, quantity, unit_cost) VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, p.ID, i, it.ProductID, it.Quantity, it.UnitCost)
		if err != nil {
			return wrap("insert purchase item", err)
		}
	}
	return nil
}

// GetByID compra con sus ítems.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, supplier_id, branch_id, date, user_id, created_at
		FROM purchases WHERE id = $1`, id).Scan(
		&p.ID, &p.CompanyID, &p.SupplierID, &p.BranchID, &p.Date, &p.UserID, &p.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_cost
		FROM purchase_items WHERE purchase_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	items, err := collect(rows, "purchase item", func(row scanner) (*entity.PurchaseItem, error) {
		var it entity.PurchaseItem
		if err := row.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, err
		}
		return &it, nil
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		p.Items = append(p.Items, *it)
	}
	return &p, nil
}

// OrderRepo órdenes web.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT id, company_id, branch_id, user_id, customer_name, customer_email, status, total, created_at, updated_at
	FROM orders`

func scanOrder(row scanner) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CompanyID, &o.BranchID, &o.UserID, &o.CustomerName, &o.CustomerEmail,
		&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la orden y sus ítems.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, branch_id, user_id, customer_name, customer_email, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, o.ID, o.CompanyID, o.BranchID, o.UserID, o.CustomerName, o.CustomerEmail,
		o.Status, o.Total, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return wrap("insert order", err)
	}
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, position, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, o.ID, i, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return wrap("insert order item", err)
		}
	}
	return nil
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID orden con sus ítems.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE id = $1`, id)
}

// GetForUpdate bloquea la orden mientras se cambia su estado.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus cambia el estado; la regla de transición vive en entity.OrderStatus.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return affected(tag)
}

// ListByCompany órdenes de la empresa, más recientes primero; status vacío no filtra.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	l, o := pageArgs(limit, offset)
	query := orderSelect + `
		WHERE company_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, string(status), l, o)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list, err := collect(rows, "order", scanOrder)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id::text = ANY($1::text[])
		ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	items, err := collect(rows, "order item", func(row scanner) (*entity.OrderItem, error) {
		var it entity.OrderItem
		if err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		return &it, nil
	})
	if err != nil {
		return err
	}
	for _, it := range items {
		o := byID[it.OrderID]
		o.Items = append(o.Items, *it)
	}
	return nil
}

// CartRepo carrito por usuario.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartSelect = `SELECT id, user_id, product_id, quantity, created_at, updated_at FROM cart_items`

func scanCartItem(row scanner) (*entity.CartItem, error) {
	var c entity.CartItem
	if err := row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// AddQuantity upsert atómico de (usuario, producto) sumando la cantidad.
func (r *CartRepo) AddQuantity(ctx context.Context, userID, productID string, qty int) (*entity.CartItem, error) {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at`
	item, err := scanCartItem(r.q.QueryRow(ctx, query, uuid.New().String(), userID, productID, qty))
	if err != nil {
		return nil, wrap("upsert cart item", err)
	}
	return item, nil
}

func (r *CartRepo) list(ctx context.Context, query, userID string) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return collect(rows, "cart item", scanCartItem)
}

// ListByUser ítems del carrito en orden de agregado.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	return r.list(ctx, cartSelect+` WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

// ListByUserForUpdate igual que ListByUser bloqueando las filas.
func (r *CartRepo) ListByUserForUpdate(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	return r.list(ctx, cartSelect+` WHERE user_id = $1 ORDER BY created_at, id FOR UPDATE`, userID)
}

// Remove quita el producto del carrito; domain.ErrNotFound si no estaba.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByUser vacía el carrito y devuelve cuántos ítems borró.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
