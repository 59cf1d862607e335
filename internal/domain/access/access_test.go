package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/access"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

const (
	empresaA = "company-a"
	empresaB = "company-b"
)

func principal(role entity.Role, company string) access.Principal {
	return access.Principal{UserID: "u1", CompanyID: company, Role: role, Active: true}
}

func TestPermit_MatrizDeRoles(t *testing.T) {
	casos := []struct {
		nombre string
		role   entity.Role
		action access.Action
		want   bool
	}{
		{"vendedor registra venta", entity.RoleSeller, access.ActionRegisterSale, true},
		{"vendedor no registra compra", entity.RoleSeller, access.ActionRegisterPurchase, false},
		{"gerente registra compra", entity.RoleManager, access.ActionRegisterPurchase, true},
		{"gerente no registra venta", entity.RoleManager, access.ActionRegisterSale, false},
		{"gerente no crea sucursales", entity.RoleManager, access.ActionManageBranches, false},
		{"admin crea sucursales", entity.RoleAdminClient, access.ActionManageBranches, true},
		{"admin ve reportes", entity.RoleAdminClient, access.ActionViewReports, true},
		{"cliente final no ve reportes", entity.RoleCustomer, access.ActionViewReports, false},
		{"cliente final compra en la tienda", entity.RoleCustomer, access.ActionShop, true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.want, access.Permit(principal(c.role, empresaA), c.action, empresaA))
		})
	}
}

func TestPermit_OtraEmpresaNuncaSePermite(t *testing.T) {
	actions := []access.Action{
		access.ActionManageBranches, access.ActionManageCatalog, access.ActionRegisterPurchase,
		access.ActionAdjustStock, access.ActionViewReports, access.ActionManageUsers,
	}
	for _, a := range actions {
		assert.False(t, access.Permit(principal(entity.RoleAdminClient, empresaA), a, empresaB), a)
	}
}

func TestPermit_UsuarioInactivo(t *testing.T) {
	p := principal(entity.RoleAdminClient, empresaA)
	p.Active = false
	assert.False(t, access.Permit(p, access.ActionViewReports, empresaA))
	assert.ErrorIs(t, access.Authorize(p, access.ActionViewReports, empresaA), domain.ErrForbidden)
}

func TestPermit_SuperAdmin(t *testing.T) {
	p := principal(entity.RoleSuperAdmin, "")
	assert.True(t, access.Permit(p, access.ActionManageTenants, ""))
	assert.True(t, access.Permit(p, access.ActionManageUsers, empresaB))
	assert.False(t, access.Permit(p, access.ActionRegisterSale, empresaB))
}

func TestAuthorize_EmpresaSeVerificaAntesQueElRol(t *testing.T) {
	err := access.Authorize(principal(entity.RoleCustomer, empresaA), access.ActionRegisterSale, empresaB)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	err = access.Authorize(principal(entity.RoleManager, empresaA), access.ActionRegisterSale, empresaA)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = access.Authorize(principal(entity.RoleSeller, ""), access.ActionRegisterSale, empresaA)
	assert.ErrorIs(t, err, domain.ErrNoCompany)

	assert.NoError(t, access.Authorize(principal(entity.RoleSeller, empresaA), access.ActionRegisterSale, empresaA))
}
