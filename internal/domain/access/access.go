// Package access decide qué puede hacer cada rol sobre los recursos de una empresa.
package access

import (
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// Principal identidad que ejecuta una operación. Se pasa explícitamente a cada caso de uso.
type Principal struct {
	UserID    string
	CompanyID string
	Role      entity.Role
	Active    bool
}

// Action operación protegida.
type Action string

const (
	ActionManageTenants    Action = "tenants:manage"
	ActionManageUsers      Action = "users:manage"
	ActionManageBranches   Action = "branches:manage"
	ActionViewCatalog      Action = "catalog:view"
	ActionManageCatalog    Action = "catalog:manage"
	ActionRegisterSale     Action = "sales:register"
	ActionRegisterPurchase Action = "purchases:register"
	ActionAdjustStock      Action = "inventory:adjust"
	ActionManageOrders     Action = "orders:manage"
	ActionViewReports      Action = "reports:view"
	ActionShop             Action = "cart:shop"
)

var grants = map[entity.Role]map[Action]bool{
	entity.RoleSuperAdmin: {
		ActionManageTenants: true,
		ActionManageUsers:   true,
		ActionShop:          true,
	},
	entity.RoleAdminClient: {
		ActionManageUsers:      true,
		ActionManageBranches:   true,
		ActionViewCatalog:      true,
		ActionManageCatalog:    true,
		ActionRegisterPurchase: true,
		ActionAdjustStock:      true,
		ActionManageOrders:     true,
		ActionViewReports:      true,
		ActionShop:             true,
	},
	entity.RoleManager: {
		ActionViewCatalog:      true,
		ActionManageCatalog:    true,
		ActionRegisterPurchase: true,
		ActionAdjustStock:      true,
		ActionManageOrders:     true,
		ActionViewReports:      true,
		ActionShop:             true,
	},
	entity.RoleSeller: {
		ActionViewCatalog:  true,
		ActionRegisterSale: true,
		ActionShop:         true,
	},
	entity.RoleCustomer: {
		ActionShop: true,
	},
}

// Acciones que no dependen de una empresa dueña.
var global = map[Action]bool{
	ActionManageTenants: true,
	ActionShop:          true,
}

// Permit indica si el principal puede ejecutar action sobre un recurso de la empresa owner.
// Para acciones globales owner se ignora. super_admin gestiona usuarios de cualquier empresa.
func Permit(p Principal, action Action, owner string) bool {
	if !p.Active || !grants[p.Role][action] {
		return false
	}
	if global[action] {
		return true
	}
	if p.Role == entity.RoleSuperAdmin && action == ActionManageUsers {
		return true
	}
	return p.CompanyID != "" && p.CompanyID == owner
}

// Authorize es Permit con el error tipado: primero se verifica la empresa dueña
// (ErrCrossTenantAccess), luego el rol (ErrForbidden).
func Authorize(p Principal, action Action, owner string) error {
	if !p.Active {
		return domain.ErrForbidden
	}
	if !global[action] && !(p.Role == entity.RoleSuperAdmin && action == ActionManageUsers) {
		if p.CompanyID == "" {
			return domain.ErrNoCompany
		}
		if p.CompanyID != owner {
			return domain.ErrCrossTenantAccess
		}
	}
	if !Permit(p, action, owner) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireCompany devuelve la empresa del principal o ErrNoCompany.
func RequireCompany(p Principal) (string, error) {
	if p.CompanyID == "" {
		return "", domain.ErrNoCompany
	}
	return p.CompanyID, nil
}
