package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de despacho de una orden web.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

// Next devuelve el estado siguiente; false si el estado es final o desconocido.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderPending:
		return OrderShipped, true
	case OrderShipped:
		return OrderDelivered, true
	default:
		return "", false
	}
}

// CanAdvanceTo solo permite avanzar un paso: PENDING -> SHIPPED -> DELIVERED.
func (s OrderStatus) CanAdvanceTo(to OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

// Order orden generada desde el carrito de la tienda web.
type Order struct {
	ID            string
	CompanyID     string
	BranchID      string // sucursal de despacho
	UserID        string
	CustomerName  string
	CustomerEmail string
	Status        OrderStatus
	Total         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

// OrderItem línea de la orden con el precio vigente al momento del checkout.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
