package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// Ledger primitivas del libro de stock. Reciben los repos de la transacción del llamador:
// el ledger nunca abre transacciones propias, así una venta o compra es una sola unidad.
type Ledger struct {
	log zerolog.Logger
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger(log zerolog.Logger) *Ledger {
	return &Ledger{log: log, now: time.Now}
}

// Adjustment delta a aplicar sobre (producto, sucursal).
type Adjustment struct {
	CompanyID     string
	ProductID     string
	BranchID      string
	Delta         int
	Type          entity.MovementType
	Reference     string
	Justification string
	UserID        string
}

// Reservation salida de stock de una venta.
type Reservation struct {
	CompanyID string
	ProductID string
	BranchID  string
	Quantity  int
	Reference string
	UserID    string
}

// Stock devuelve el stock actual; cero si no hay fila.
func (l *Ledger) Stock(ctx context.Context, inv repository.InventoryRepository, productID, branchID string) (int, error) {
	row, err := inv.Get(ctx, productID, branchID)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.Stock, nil
}

// RequireRow devuelve la fila de inventario o domain.ErrNotInInventory.
func (l *Ledger) RequireRow(ctx context.Context, inv repository.InventoryRepository, productID, branchID string) (*entity.Inventory, error) {
	row, err := inv.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotInInventory
	}
	return row, nil
}

// Adjust aplica stock += delta en una sola sentencia. Con delta > 0 crea la fila si falta;
// con delta <= 0 exige que exista. El resultado puede quedar negativo: se registra con la justificación.
func (l *Ledger) Adjust(ctx context.Context, r repository.Repos, a Adjustment) (int, error) {
	var (
		stock int
		err   error
	)
	if a.Delta > 0 {
		stock, err = r.Inventory.IncrementOrCreate(ctx, a.ProductID, a.BranchID, a.Delta)
	} else {
		stock, err = r.Inventory.Increment(ctx, a.ProductID, a.BranchID, a.Delta)
	}
	if err != nil {
		return 0, err
	}
	if stock < 0 {
		l.log.Warn().
			Str("product_id", a.ProductID).
			Str("branch_id", a.BranchID).
			Int("delta", a.Delta).
			Int("stock", stock).
			Str("type", string(a.Type)).
			Str("justification", a.Justification).
			Msg("stock negativo tras ajuste")
	}
	if err := l.record(ctx, r.Movements, a, stock); err != nil {
		return 0, err
	}
	return stock, nil
}

// Reserve descuenta quantity solo si hay stock suficiente al momento del UPDATE.
// Si falla no aplica ningún cambio y devuelve *domain.StockError (o ErrNotInInventory).
func (l *Ledger) Reserve(ctx context.Context, r repository.Repos, res Reservation) (int, error) {
	if res.Quantity <= 0 {
		return 0, domain.ErrInvalidValue
	}
	stock, err := r.Inventory.DecrementIfAvailable(ctx, res.ProductID, res.BranchID, res.Quantity)
	if errors.Is(err, domain.ErrInsufficientStock) {
		available, _ := l.Stock(ctx, r.Inventory, res.ProductID, res.BranchID)
		return 0, &domain.StockError{ProductID: res.ProductID, Requested: res.Quantity, Available: available}
	}
	if err != nil {
		return 0, err
	}
	a := Adjustment{
		CompanyID: res.CompanyID,
		ProductID: res.ProductID,
		BranchID:  res.BranchID,
		Delta:     -res.Quantity,
		Type:      entity.MovementSale,
		Reference: res.Reference,
		UserID:    res.UserID,
	}
	if err := l.record(ctx, r.Movements, a, stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func (l *Ledger) record(ctx context.Context, repo repository.StockMovementRepository, a Adjustment, stockAfter int) error {
	return repo.Create(ctx, &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     a.CompanyID,
		ProductID:     a.ProductID,
		BranchID:      a.BranchID,
		Type:          a.Type,
		Quantity:      a.Delta,
		StockAfter:    stockAfter,
		Reference:     a.Reference,
		Justification: a.Justification,
		CreatedBy:     a.UserID,
		CreatedAt:     l.now(),
	})
}
