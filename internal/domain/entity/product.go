package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una empresa; el stock se lleva por sucursal en Inventory.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
