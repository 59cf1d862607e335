package inventory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/guard"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// InventoryUseCase operaciones de inventario expuestas por la API: consulta de stock,
// ajustes manuales, punto de reorden y bitácora de movimientos.
type InventoryUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   *Ledger
	events   ports.EventPublisher
	log      zerolog.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	ledger *Ledger,
	events ports.EventPublisher,
	log zerolog.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, repos: repos, ledger: ledger, events: events, log: log}
}

// GetStock stock de un producto en una sucursal (cero si nunca tuvo movimientos).
func (uc *InventoryUseCase) GetStock(ctx context.Context, p access.Principal, productID, branchID string) (*dto.StockResponse, error) {
	branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionViewCatalog, branchID)
	if err != nil {
		return nil, err
	}
	if _, err := guard.Product(ctx, uc.repos.Products, branch.CompanyID, productID); err != nil {
		return nil, err
	}
	row, err := uc.repos.Inventory.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockResponse{ProductID: productID, BranchID: branchID}
	if row != nil {
		out.Stock = row.Stock
		out.ReorderPoint = row.ReorderPoint
	}
	return out, nil
}

// ListBranch inventario completo de una sucursal.
func (uc *InventoryUseCase) ListBranch(ctx context.Context, p access.Principal, branchID string) ([]dto.StockResponse, error) {
	if _, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionViewCatalog, branchID); err != nil {
		return nil, err
	}
	rows, err := uc.repos.Inventory.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toStockResponse(r))
	}
	return out, nil
}

// AdjustStock ajuste manual justificado (mermas, conteos). Puede dejar el stock negativo.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, p access.Principal, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	justification := strings.TrimSpace(in.Justification)
	if in.Quantity == 0 || justification == "" {
		return nil, domain.ErrInvalidValue
	}
	branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionAdjustStock, in.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := guard.Product(ctx, uc.repos.Products, branch.CompanyID, in.ProductID); err != nil {
		return nil, err
	}

	var out *dto.StockResponse
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		stock, err := uc.ledger.Adjust(ctx, r, Adjustment{
			CompanyID:     branch.CompanyID,
			ProductID:     in.ProductID,
			BranchID:      in.BranchID,
			Delta:         in.Quantity,
			Type:          entity.MovementAdjustment,
			Justification: justification,
			UserID:        p.UserID,
		})
		if err != nil {
			return err
		}
		row, err := uc.ledger.RequireRow(ctx, r.Inventory, in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		row.Stock = stock
		resp := toStockResponse(row)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventStockAdjusted,
		CompanyID:   branch.CompanyID,
		AggregateID: in.ProductID,
		Payload: map[string]any{
			"branch_id":     in.BranchID,
			"delta":         in.Quantity,
			"stock":         out.Stock,
			"justification": justification,
		},
	})
	return out, nil
}

// SetReorderPoint fija el punto de reorden de una fila existente.
func (uc *InventoryUseCase) SetReorderPoint(ctx context.Context, p access.Principal, in dto.ReorderPointRequest) (*dto.StockResponse, error) {
	if in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidValue
	}
	branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionAdjustStock, in.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := guard.Product(ctx, uc.repos.Products, branch.CompanyID, in.ProductID); err != nil {
		return nil, err
	}
	var out *dto.StockResponse
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		row, err := uc.ledger.RequireRow(ctx, r.Inventory, in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if err := r.Inventory.SetReorderPoint(ctx, in.ProductID, in.BranchID, in.ReorderPoint); err != nil {
			return err
		}
		row.ReorderPoint = in.ReorderPoint
		resp := toStockResponse(row)
		out = &resp
		return nil
	})
	return out, err
}

// ListMovements bitácora de movimientos de la empresa, filtrable por sucursal, producto y fechas.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, p access.Principal, f repository.MovementFilter) ([]dto.MovementResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionViewReports, companyID); err != nil {
		return nil, err
	}
	if f.BranchID != "" {
		if _, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionViewReports, f.BranchID); err != nil {
			return nil, err
		}
	}
	f.CompanyID = companyID
	if f.Limit <= 0 {
		f.Limit = 50
	}
	list, err := uc.repos.Movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			BranchID:      m.BranchID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			StockAfter:    m.StockAfter,
			Reference:     m.Reference,
			Justification: m.Justification,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

func toStockResponse(r *entity.Inventory) dto.StockResponse {
	return dto.StockResponse{
		ProductID:    r.ProductID,
		BranchID:     r.BranchID,
		Stock:        r.Stock,
		ReorderPoint: r.ReorderPoint,
	}
}
