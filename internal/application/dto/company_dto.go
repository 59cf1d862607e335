package dto

import "time"

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SubscribeRequest body para POST /api/companies/:id/subscribe.
type SubscribeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=BASIC STANDARD PREMIUM"`
}

// SubscriptionResponse plan vigente de una empresa.
type SubscriptionResponse struct {
	CompanyID   string    `json:"company_id"`
	Plan        string    `json:"plan"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Active      bool      `json:"active"`
	MaxBranches int       `json:"max_branches"`
}

// PlanLimitResponse uso de sucursales frente al límite del plan.
type PlanLimitResponse struct {
	Plan         string `json:"plan"`
	MaxBranches  int    `json:"max_branches"`
	BranchesUsed int    `json:"branches_used"`
}

// ClientRequestCreate formulario público de contratación.
type ClientRequestCreate struct {
	CompanyName  string `json:"company_name" validate:"required,max=200"`
	TaxID        string `json:"tax_id" validate:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Plan         string `json:"plan" validate:"required"`
}

// ClientRequestResponse salida de una solicitud de alta.
type ClientRequestResponse struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	TaxID        string    `json:"tax_id"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Plan         string    `json:"plan"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateTenantRequest datos para aprobar una solicitud y crear la empresa.
// TaxID vacío usa el RUT de la solicitud.
type CreateTenantRequest struct {
	CompanyName   string `json:"company_name" validate:"required"`
	TaxID         string `json:"tax_id"`
	AdminUsername string `json:"admin_username" validate:"required"`
	AdminTaxID    string `json:"admin_rut" validate:"required"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
}

// CreateTenantResponse empresa creada con su administrador y la contraseña temporal.
type CreateTenantResponse struct {
	Company           CompanyResponse      `json:"company"`
	Subscription      SubscriptionResponse `json:"subscription"`
	Admin             UserResponse         `json:"admin"`
	TemporaryPassword string               `json:"temporary_password"`
}
