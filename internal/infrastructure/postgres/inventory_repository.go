package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.InventoryRepository     = (*InventoryRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// InventoryRepo libro de stock sobre PostgreSQL. Toda mutación es una sola sentencia sobre la fila.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row scanner) (*entity.Inventory, error) {
	var i entity.Inventory
	if err := row.Scan(&i.ProductID, &i.BranchID, &i.Stock, &i.ReorderPoint, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// Get fila de inventario; nil si el producto no está en la sucursal.
func (r *InventoryRepo) Get(ctx context.Context, productID, branchID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, branch_id, stock, reorder_point, updated_at
		FROM inventory WHERE product_id = $1 AND branch_id = $2`
	i, err := scanInventory(r.q.QueryRow(ctx, query, productID, branchID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return i, nil
}

// Increment stock = stock + delta sobre la fila existente.
func (r *InventoryRepo) Increment(ctx context.Context, productID, branchID string, delta int) (int, error) {
	query := `
		UPDATE inventory SET stock = stock + $3, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2
		RETURNING stock`
	var stock int
	if err := r.q.QueryRow(ctx, query, productID, branchID, delta).Scan(&stock); err != nil {
		if isNoRows(err) {
			return 0, domain.ErrNotInInventory
		}
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return stock, nil
}

// IncrementOrCreate get-or-create atómico de la fila más el delta.
func (r *InventoryRepo) IncrementOrCreate(ctx context.Context, productID, branchID string, delta int) (int, error) {
	query := `
		INSERT INTO inventory (product_id, branch_id, stock, reorder_point, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, branch_id)
		DO UPDATE SET stock = inventory.stock + EXCLUDED.stock, updated_at = now()
		RETURNING stock`
	var stock int
	if err := r.q.QueryRow(ctx, query, productID, branchID, delta).Scan(&stock); err != nil {
		return 0, wrap("upsert stock", err)
	}
	return stock, nil
}

// DecrementIfAvailable actualización condicional: solo resta si stock >= qty.
func (r *InventoryRepo) DecrementIfAvailable(ctx context.Context, productID, branchID string, qty int) (int, error) {
	query := `
		UPDATE inventory SET stock = stock - $3, updated_at = now()
		WHERE product_id = $1 AND branch_id = $2 AND stock >= $3
		RETURNING stock`
	var stock int
	err := r.q.QueryRow(ctx, query, productID, branchID, qty).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	current, err := r.Get(ctx, productID, branchID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, domain.ErrNotInInventory
	}
	return current.Stock, domain.ErrInsufficientStock
}

// SetReorderPoint fija el punto de reorden creando la fila con stock 0 si falta.
func (r *InventoryRepo) SetReorderPoint(ctx context.Context, productID, branchID string, reorderPoint int) error {
	query := `
		INSERT INTO inventory (product_id, branch_id, stock, reorder_point, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (product_id, branch_id)
		DO UPDATE SET reorder_point = EXCLUDED.reorder_point, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, productID, branchID, reorderPoint); err != nil {
		return wrap("set reorder point", err)
	}
	return nil
}

// ListByBranch inventario de la sucursal en el orden del catálogo.
func (r *InventoryRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Inventory, error) {
	query := `
		SELECT i.product_id, i.branch_id, i.stock, i.reorder_point, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.branch_id = $1
		ORDER BY p.created_at, p.id`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return collect(rows, "inventory", scanInventory)
}

// TotalStock stock del producto sumado en todas las sucursales.
func (r *InventoryRepo) TotalStock(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(stock), 0)::int FROM inventory WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// StockMovementRepo bitácora de movimientos (solo inserción).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, branch_id, type, quantity, stock_after,
		                             reference, justification, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.BranchID, m.Type, m.Quantity, m.StockAfter,
		m.Reference, m.Justification, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return wrap("insert stock movement", err)
	}
	return nil
}

// List movimientos más recientes primero. To incluye el día completo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	l, o := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT id, company_id, product_id, branch_id, type, quantity, stock_after,
		       reference, justification, created_by, created_at
		FROM stock_movements
		WHERE company_id = $1
		  AND ($2::text = '' OR branch_id::text = $2)
		  AND ($3::text = '' OR product_id::text = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC, id
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.BranchID, f.ProductID, f.From, dayAfter(f.To), l, o)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collect(rows, "stock movement", func(row scanner) (*entity.StockMovement, error) {
		var m entity.StockMovement
		err := row.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.BranchID, &m.Type, &m.Quantity, &m.StockAfter,
			&m.Reference, &m.Justification, &m.CreatedBy, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &m, nil
	})
}

// dayAfter convierte un límite inclusivo por día en exclusivo.
func dayAfter(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	next := t.AddDate(0, 0, 1)
	return &next
}
