package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// CompanyID solo lo usa super_admin; admin_cliente crea usuarios en su propia empresa.
type CreateUserRequest struct {
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	TaxID     string `json:"rut"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"max=200"`
	Role      string `json:"role" validate:"required,oneof=admin_cliente gerente vendedor"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	BranchID  string    `json:"branch_id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	TaxID     string    `json:"rut,omitempty"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login por username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RegisterCustomerRequest alta pública de un cliente de la tienda web.
type RegisterCustomerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}
