package memory

import (
	"context"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var (
	_ repository.InventoryRepository     = (*inventoryRepo)(nil)
	_ repository.StockMovementRepository = (*movementRepo)(nil)
)

type inventoryRepo struct{ s *session }

func (r *inventoryRepo) Get(_ context.Context, productID, branchID string) (*entity.Inventory, error) {
	t, done := r.s.view()
	defer done()
	if inv, ok := t.inventory[invKey{productID, branchID}]; ok {
		return ptr(inv), nil
	}
	return nil, nil
}

func (r *inventoryRepo) Increment(_ context.Context, productID, branchID string, delta int) (int, error) {
	t, done := r.s.view()
	defer done()
	k := invKey{productID, branchID}
	inv, ok := t.inventory[k]
	if !ok {
		return 0, domain.ErrNotInInventory
	}
	inv.Stock += delta
	inv.UpdatedAt = time.Now()
	t.inventory[k] = inv
	return inv.Stock, nil
}

func (r *inventoryRepo) IncrementOrCreate(_ context.Context, productID, branchID string, delta int) (int, error) {
	t, done := r.s.view()
	defer done()
	k := invKey{productID, branchID}
	inv, ok := t.inventory[k]
	if !ok {
		inv = entity.Inventory{ProductID: productID, BranchID: branchID}
	}
	inv.Stock += delta
	inv.UpdatedAt = time.Now()
	t.inventory[k] = inv
	return inv.Stock, nil
}

func (r *inventoryRepo) DecrementIfAvailable(_ context.Context, productID, branchID string, qty int) (int, error) {
	t, done := r.s.view()
	defer done()
	k := invKey{productID, branchID}
	inv, ok := t.inventory[k]
	if !ok {
		return 0, domain.ErrNotInInventory
	}
	if inv.Stock < qty {
		return inv.Stock, domain.ErrInsufficientStock
	}
	inv.Stock -= qty
	inv.UpdatedAt = time.Now()
	t.inventory[k] = inv
	return inv.Stock, nil
}

func (r *inventoryRepo) SetReorderPoint(_ context.Context, productID, branchID string, reorderPoint int) error {
	t, done := r.s.view()
	defer done()
	k := invKey{productID, branchID}
	inv, ok := t.inventory[k]
	if !ok {
		inv = entity.Inventory{ProductID: productID, BranchID: branchID}
	}
	inv.ReorderPoint = reorderPoint
	inv.UpdatedAt = time.Now()
	t.inventory[k] = inv
	return nil
}

func (r *inventoryRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.Inventory, error) {
	t, done := r.s.view()
	defer done()
	out := make([]*entity.Inventory, 0)
	for _, p := range t.products.list(nil) {
		if inv, ok := t.inventory[invKey{p.ID, branchID}]; ok {
			out = append(out, ptr(inv))
		}
	}
	return out, nil
}

func (r *inventoryRepo) TotalStock(_ context.Context, productID string) (int, error) {
	t, done := r.s.view()
	defer done()
	total := 0
	for k, inv := range t.inventory {
		if k.productID == productID {
			total += inv.Stock
		}
	}
	return total, nil
}

type movementRepo struct{ s *session }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	t, done := r.s.view()
	defer done()
	t.movements = append(t.movements, *m)
	return nil
}

// List devuelve los movimientos más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	t, done := r.s.view()
	defer done()
	var to time.Time
	if f.To != nil {
		to = f.To.AddDate(0, 0, 1)
	}
	out := make([]entity.StockMovement, 0)
	for i := len(t.movements) - 1; i >= 0; i-- {
		m := t.movements[i]
		switch {
		case f.CompanyID != "" && m.CompanyID != f.CompanyID,
			f.BranchID != "" && m.BranchID != f.BranchID,
			f.ProductID != "" && m.ProductID != f.ProductID,
			f.From != nil && m.CreatedAt.Before(*f.From),
			f.To != nil && !m.CreatedAt.Before(to):
			continue
		}
		out = append(out, m)
	}
	return pointers(page(out, f.Limit, f.Offset)), nil
}
