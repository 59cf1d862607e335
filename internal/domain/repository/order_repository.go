package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// OrderRepository persistencia de órdenes de la tienda web.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	ListByCompany(ctx context.Context, companyID string, status entity.OrderStatus, limit, offset int) ([]*entity.Order, error)
}

// CartRepository carrito por usuario.
type CartRepository interface {
	// AddQuantity suma qty al ítem (user, product), creándolo si no existe (upsert atómico).
	AddQuantity(ctx context.Context, userID, productID string, qty int) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	// ListByUserForUpdate bloquea los ítems del carrito para el checkout.
	ListByUserForUpdate(ctx context.Context, userID string) ([]*entity.CartItem, error)
	Remove(ctx context.Context, userID, productID string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
