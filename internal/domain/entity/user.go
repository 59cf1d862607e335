package entity

import "time"

// Role rol de un usuario (conjunto cerrado).
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAdminClient Role = "admin_cliente"
	RoleManager     Role = "gerente"
	RoleSeller      Role = "vendedor"
	RoleCustomer    Role = "cliente_final"
)

// IsValid indica si el rol es uno de los conocidos.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdminClient, RoleManager, RoleSeller, RoleCustomer:
		return true
	}
	return false
}

// User usuario del sistema. CompanyID vacío para super_admin y clientes de la tienda web.
type User struct {
	ID           string
	CompanyID    string
	BranchID     string
	Username     string
	Email        string
	TaxID        string
	Name         string
	PasswordHash string // bcrypt
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName nombre para mostrar; cae al username si no hay nombre.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
