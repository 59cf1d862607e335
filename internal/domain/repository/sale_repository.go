package repository

import (
	"context"
	"time"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// SaleFilter filtros para listados y reportes de ventas. To es inclusivo por día.
type SaleFilter struct {
	CompanyID string
	BranchID  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SaleRepository persistencia de ventas (las ventas no se modifican).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
}

// PurchaseRepository persistencia de recepciones de compra.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
}
