package entity

import "time"

// Branch sucursal de una empresa; el inventario se lleva por sucursal.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
