package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	domaininv "github.com/jhoicas/temucosoft-retail/internal/domain/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/domain/plan"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// PurchaseUseCase recepción de mercadería de proveedores.
type PurchaseUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   *inventory.Ledger
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	ledger *inventory.Ledger,
	events ports.EventPublisher,
	log zerolog.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, repos: repos, ledger: ledger, events: events, log: log, now: time.Now}
}

// RegisterPurchase suma al stock de la sucursal cada ítem recibido, creando la fila si no existe.
// Con costo unitario informado recalcula el costo promedio ponderado del producto.
func (uc *PurchaseUseCase) RegisterPurchase(ctx context.Context, p access.Principal, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionRegisterPurchase, in.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := guard.Supplier(ctx, uc.repos.Suppliers, branch.CompanyID, in.SupplierID); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if date == nil || date.After(plan.Today(now)) {
		return nil, domain.ErrInvalidDate
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyTransaction
	}

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  branch.CompanyID,
		SupplierID: in.SupplierID,
		BranchID:   branch.ID,
		Date:       *date,
		UserID:     p.UserID,
		CreatedAt:  now,
	}
	for _, it := range in.Items {
		if it.Quantity < 1 || (it.UnitCost != nil && it.UnitCost.IsNegative()) {
			return nil, domain.ErrInvalidValue
		}
		if _, err := guard.Product(ctx, uc.repos.Products, branch.CompanyID, it.ProductID); err != nil {
			return nil, err
		}
		cost := decimal.Zero
		if it.UnitCost != nil {
			cost = *it.UnitCost
		}
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitCost:   cost,
		})
	}

	stock := make(map[string]int, len(purchase.Items))
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		for i, it := range purchase.Items {
			if in.Items[i].UnitCost != nil {
				if err := uc.updateCost(ctx, r, it); err != nil {
					return err
				}
			}
			after, err := uc.ledger.Adjust(ctx, r, inventory.Adjustment{
				CompanyID:     purchase.CompanyID,
				ProductID:     it.ProductID,
				BranchID:      purchase.BranchID,
				Delta:         it.Quantity,
				Type:          entity.MovementPurchase,
				Reference:     purchase.ID,
				Justification: "purchase",
				UserID:        p.UserID,
			})
			if err != nil {
				return err
			}
			stock[it.ProductID] = after
		}
		return r.Purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventPurchaseRegistered,
		CompanyID:   purchase.CompanyID,
		AggregateID: purchase.ID,
		Payload:     map[string]any{"branch_id": purchase.BranchID, "supplier_id": purchase.SupplierID, "stock": stock},
	})
	return &dto.PurchaseResponse{
		ID:         purchase.ID,
		SupplierID: purchase.SupplierID,
		BranchID:   purchase.BranchID,
		Date:       purchase.Date.Format(dto.DateLayout),
		Items:      len(purchase.Items),
		Stock:      stock,
	}, nil
}

// updateCost usa el stock total de la empresa previo a la recepción. El producto queda
// bloqueado hasta el commit, así dos compras concurrentes no pisan el costo una de otra.
func (uc *PurchaseUseCase) updateCost(ctx context.Context, r repository.Repos, it entity.PurchaseItem) error {
	product, err := r.Products.GetForUpdate(ctx, it.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	total, err := r.Inventory.TotalStock(ctx, it.ProductID)
	if err != nil {
		return err
	}
	cost := domaininv.WeightedAverageCost(total, product.Cost, it.Quantity, it.UnitCost)
	if err := r.Products.UpdateCost(ctx, it.ProductID, cost); err != nil {
		return fmt.Errorf("actualizar costo: %w", err)
	}
	return nil
}
