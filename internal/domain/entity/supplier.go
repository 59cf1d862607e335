package entity

import "time"

// Supplier proveedor de una empresa. RUT único por empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
