package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// InventoryRepository libro de stock por (producto, sucursal).
// Todas las mutaciones son deltas atómicos sobre la fila; nunca leer-calcular-escribir.
type InventoryRepository interface {
	Get(ctx context.Context, productID, branchID string) (*entity.Inventory, error)
	// Increment aplica stock += delta sobre una fila existente y devuelve el stock resultante.
	// domain.ErrNotInInventory si la fila no existe.
	Increment(ctx context.Context, productID, branchID string, delta int) (int, error)
	// IncrementOrCreate igual que Increment pero crea la fila (reorder_point 0) si falta.
	IncrementOrCreate(ctx context.Context, productID, branchID string, delta int) (int, error)
	// DecrementIfAvailable resta qty solo si stock >= qty (actualización condicional).
	// Devuelve domain.ErrInsufficientStock o domain.ErrNotInInventory sin aplicar cambios.
	DecrementIfAvailable(ctx context.Context, productID, branchID string, qty int) (int, error)
	SetReorderPoint(ctx context.Context, productID, branchID string, reorderPoint int) error
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Inventory, error)
	// TotalStock suma el stock del producto en todas las sucursales.
	TotalStock(ctx context.Context, productID string) (int, error)
}
