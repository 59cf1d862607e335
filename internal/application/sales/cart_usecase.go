package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// CartUseCase carrito de la tienda web y checkout a orden.
type CartUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	ledger   *inventory.Ledger
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(
	txRunner repository.TxRunner,
	repos repository.Repos,
	ledger *inventory.Ledger,
	events ports.EventPublisher,
	log zerolog.Logger,
) *CartUseCase {
	return &CartUseCase{txRunner: txRunner, repos: repos, ledger: ledger, events: events, log: log, now: time.Now}
}

// AddToCart suma quantity al ítem del producto. Un carrito solo contiene productos de una empresa.
func (uc *CartUseCase) AddToCart(ctx context.Context, p access.Principal, in dto.AddToCartRequest) (*dto.CartItemResponse, error) {
	if err := access.Authorize(p, access.ActionShop, ""); err != nil {
		return nil, err
	}
	if in.Quantity < 1 || in.ProductID == "" {
		return nil, domain.ErrInvalidValue
	}
	var out *dto.CartItemResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		items, err := r.Cart.ListByUserForUpdate(ctx, p.UserID)
		if err != nil {
			return err
		}
		for _, it := range items {
			other, err := r.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if other != nil && other.CompanyID != product.CompanyID {
				return domain.ErrMixedTenantCart
			}
		}
		item, err := r.Cart.AddQuantity(ctx, p.UserID, product.ID, in.Quantity)
		if err != nil {
			return err
		}
		resp := toCartItemResponse(item, product)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCart carrito del usuario valorizado con los precios vigentes.
func (uc *CartUseCase) ListCart(ctx context.Context, p access.Principal) (*dto.CartResponse, error) {
	if err := access.Authorize(p, access.ActionShop, ""); err != nil {
		return nil, err
	}
	items, err := uc.repos.Cart.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		product, err := uc.repos.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		resp := toCartItemResponse(it, product)
		out.Items = append(out.Items, resp)
		out.Total = out.Total.Add(resp.Subtotal)
	}
	return out, nil
}

// RemoveFromCart quita el producto del carrito.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, p access.Principal, productID string) error {
	if err := access.Authorize(p, access.ActionShop, ""); err != nil {
		return err
	}
	return uc.repos.Cart.Remove(ctx, p.UserID, productID)
}

// Checkout convierte el carrito en una orden PENDING despachada desde la primera sucursal
// de la empresa. Descuenta stock sin verificar disponibilidad (puede quedar negativo).
func (uc *CartUseCase) Checkout(ctx context.Context, p access.Principal) (*dto.OrderResponse, error) {
	if err := access.Authorize(p, access.ActionShop, ""); err != nil {
		return nil, err
	}
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		items, err := r.Cart.ListByUserForUpdate(ctx, p.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}
		products := make([]*entity.Product, len(items))
		for i, it := range items {
			product, err := r.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if i > 0 && product.CompanyID != products[0].CompanyID {
				return domain.ErrMixedTenantCart
			}
			products[i] = product
		}
		companyID := products[0].CompanyID
		branch, err := r.Branches.FirstByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if branch == nil {
			return domain.ErrNoDispatchBranch
		}

		now := uc.now()
		order = &entity.Order{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			BranchID:  branch.ID,
			UserID:    p.UserID,
			Status:    entity.OrderPending,
			Total:     decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if user, err := r.Users.GetByID(ctx, p.UserID); err != nil {
			return err
		} else if user != nil {
			order.CustomerName = user.DisplayName()
			order.CustomerEmail = user.Email
		}
		for i, it := range items {
			line := entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: products[i].Price,
			}
			order.Items = append(order.Items, line)
			order.Total = order.Total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		for _, line := range order.Items {
			_, err := uc.ledger.Adjust(ctx, r, inventory.Adjustment{
				CompanyID:     companyID,
				ProductID:     line.ProductID,
				BranchID:      branch.ID,
				Delta:         -line.Quantity,
				Type:          entity.MovementOrder,
				Reference:     order.ID,
				Justification: "checkout",
				UserID:        p.UserID,
			})
			if err != nil {
				return err
			}
		}
		_, err = r.Cart.DeleteByUser(ctx, p.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	ports.Notify(ctx, uc.events, uc.log, ports.Event{
		Type:        ports.EventOrderCreated,
		CompanyID:   order.CompanyID,
		AggregateID: order.ID,
		Payload:     map[string]any{"branch_id": order.BranchID, "total": order.Total, "customer_email": order.CustomerEmail},
	})
	return toOrderResponse(order), nil
}

func toCartItemResponse(it *entity.CartItem, product *entity.Product) dto.CartItemResponse {
	return dto.CartItemResponse{
		ProductID:   it.ProductID,
		ProductName: product.Name,
		Quantity:    it.Quantity,
		UnitPrice:   product.Price,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
	}
}
