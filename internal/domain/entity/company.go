package entity

import "time"

// Company representa un tenant del sistema. Todo el catálogo, inventario y ventas cuelgan de ella.
type Company struct {
	ID        string
	Name      string
	TaxID     string // RUT de la empresa, único
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
