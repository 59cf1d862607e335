package repository

import (
	"context"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// StockMovementRepository bitácora de movimientos de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}

// MovementFilter filtros de la bitácora de movimientos; los campos vacíos no filtran.
type MovementFilter struct {
	CompanyID string
	BranchID  string
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
