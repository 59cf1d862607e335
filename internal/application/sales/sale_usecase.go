// Package sales motor de transacciones: ventas de punto de venta, compras, carrito y órdenes web.
// Cada operación que mueve dinero o mercadería corre en una sola transacción.
package sales

import (
	"context"
	"errors"
	"strings"
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
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	BranchID string
	DateFrom string
	DateTo   string
	Page     dto.PageRequest
}

// SaleUseCase ventas de punto de venta.
type SaleUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   *inventory.Ledger
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	ledger *inventory.Ledger,
	events ports.EventPublisher,
	log zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, repos: repos, ledger: ledger, events: events, log: log, now: time.Now}
}

// RegisterSale registra una venta: descuenta stock de cada ítem solo si alcanza y crea la venta.
// Si un ítem no tiene stock suficiente no se aplica nada y el error nombra el producto.
func (uc *SaleUseCase) RegisterSale(ctx context.Context, p access.Principal, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	branch, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionRegisterSale, in.BranchID)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyTransaction
	}
	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		return nil, domain.ErrInvalidValue
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     branch.CompanyID,
		BranchID:      branch.ID,
		UserID:        p.UserID,
		Total:         decimal.Zero,
		PaymentMethod: paymentMethod,
		CreatedAt:     uc.now(),
	}
	names := make(map[string]string, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 || (it.UnitPrice != nil && it.UnitPrice.IsNegative()) {
			return nil, domain.ErrInvalidValue
		}
		product, err := guard.Product(ctx, uc.repos.Products, branch.CompanyID, it.ProductID)
		if err != nil {
			return nil, err
		}
		price := product.Price
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		item := entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  it.Quantity,
			UnitPrice: price,
		}
		sale.Items = append(sale.Items, item)
		sale.Total = sale.Total.Add(item.Subtotal())
		names[product.ID] = product.Name
	}

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		for _, it := range sale.Items {
			_, err := uc.ledger.Reserve(ctx, r, inventory.Reservation{
				CompanyID: sale.CompanyID,
				ProductID: it.ProductID,
				BranchID:  sale.BranchID,
				Quantity:  it.Quantity,
				Reference: sale.ID,
				UserID:    p.UserID,
			})
			var stockErr *domain.StockError
			if errors.As(err, &stockErr) {
				stockErr.ProductName = names[it.ProductID]
			}
			if err != nil {
				return err
			}
		}
		return r.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventSaleRegistered,
		CompanyID:   sale.CompanyID,
		AggregateID: sale.ID,
		Payload:     map[string]any{"branch_id": sale.BranchID, "total": sale.Total, "items": len(sale.Items)},
	})
	return toSaleResponse(sale), nil
}

// GetSale detalle de una venta de la empresa del principal.
func (uc *SaleUseCase) GetSale(ctx context.Context, p access.Principal, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if err := authorizeSalesView(p, sale.CompanyID); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales ventas de la empresa, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, p access.Principal, f SaleFilter) ([]dto.SaleResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := authorizeSalesView(p, companyID); err != nil {
		return nil, err
	}
	if f.BranchID != "" {
		if _, err := guard.Branch(ctx, uc.repos.Branches, p, access.ActionViewCatalog, f.BranchID); err != nil {
			return nil, err
		}
	}
	from, err := dto.ParseDate(f.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate(f.DateTo)
	if err != nil {
		return nil, err
	}
	f.Page.DefaultPage()
	list, err := uc.repos.Sales.List(ctx, repository.SaleFilter{
		CompanyID: companyID,
		BranchID:  f.BranchID,
		From:      from,
		To:        to,
		Limit:     f.Page.Limit,
		Offset:    f.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// authorizeSalesView reportes para administración; el vendedor también consulta las ventas.
func authorizeSalesView(p access.Principal, companyID string) error {
	err := access.Authorize(p, access.ActionViewReports, companyID)
	if errors.Is(err, domain.ErrForbidden) {
		return access.Authorize(p, access.ActionRegisterSale, companyID)
	}
	return err
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		BranchID:      s.BranchID,
		UserID:        s.UserID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
