package entity

import "time"

// CartItem ítem del carrito de un usuario; único por (usuario, producto).
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
