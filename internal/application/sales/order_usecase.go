package sales

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// OrderUseCase gestión de órdenes web por la empresa: listado y avance de estado.
type OrderUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	events   ports.EventPublisher
	log      zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, repos repository.Repos, events ports.EventPublisher, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, repos: repos, events: events, log: log}
}

// ListOrders órdenes de la empresa del principal; status vacío lista todas.
func (uc *OrderUseCase) ListOrders(ctx context.Context, p access.Principal, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	companyID, err := access.RequireCompany(p)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(p, access.ActionManageOrders, companyID); err != nil {
		return nil, err
	}
	st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch st {
	case "", entity.OrderPending, entity.OrderShipped, entity.OrderDelivered:
	default:
		return nil, domain.ErrInvalidValue
	}
	page.DefaultPage()
	list, err := uc.repos.Orders.ListByCompany(ctx, companyID, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AdvanceOrder avanza la orden un paso: PENDING -> SHIPPED -> DELIVERED.
func (uc *OrderUseCase) AdvanceOrder(ctx context.Context, p access.Principal, id, status string) (*dto.OrderResponse, error) {
	target := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	var order *entity.Order
	var from entity.OrderStatus
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		order, err = r.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := access.Authorize(p, access.ActionManageOrders, order.CompanyID); err != nil {
			return err
		}
		if !order.Status.CanAdvanceTo(target) {
			return domain.ErrInvalidTransition
		}
		if err := r.Orders.UpdateStatus(ctx, id, target); err != nil {
			return err
		}
		from = order.Status
		order.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventOrderStatusChanged,
		CompanyID:   order.CompanyID,
		AggregateID: order.ID,
		Payload:     map[string]any{"from": from, "to": order.Status},
	})
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CompanyID:     o.CompanyID,
		BranchID:      o.BranchID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}
