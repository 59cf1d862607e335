package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

func userRequest(username, role string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username: username,
		Email:    username + "@temucosoft.cl",
		TaxID:    "9.876.543-3",
		Password: "secreto123",
		Name:     "Usuario " + username,
		Role:     role,
	}
}

func TestUserCreate_ReglasPorRol(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewUserUseCase(f.Repos, rut.Validator{})
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	seller, err := uc.Create(ctx, admin, userRequest("vendedor1", "vendedor"))
	require.NoError(t, err)
	assert.Equal(t, c.ID, seller.CompanyID)
	assert.Equal(t, "9876543-3", seller.TaxID)

	_, err = uc.Create(ctx, admin, userRequest("otroadmin", "admin_cliente"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in := userRequest("admin2", "admin_cliente")
	in.CompanyID = c.ID
	created, err := uc.Create(ctx, testutil.SuperAdmin(), in)
	require.NoError(t, err)
	assert.Equal(t, "admin_cliente", created.Role)

	_, err = uc.Create(ctx, testutil.SuperAdmin(), userRequest("gerente1", "gerente"))
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = uc.Create(ctx, f.User(t, c.ID, entity.RoleManager), userRequest("x", "vendedor"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserCreate_Validaciones(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewUserUseCase(f.Repos, rut.Validator{})
	a := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := f.Company(t, "B", "11111111-1", entity.PlanBasic)
	admin := f.User(t, a.ID, entity.RoleAdminClient)
	ctx := context.Background()

	badRUT := userRequest("vend", "vendedor")
	badRUT.TaxID = "9876543-0"
	_, err := uc.Create(ctx, admin, badRUT)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxID)

	_, err = uc.Create(ctx, admin, userRequest("repetido", "vendedor"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, userRequest("repetido", "gerente"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	other := userRequest("ajeno", "vendedor")
	other.CompanyID = b.ID
	_, err = uc.Create(ctx, admin, other)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	branchB := f.Branch(t, b.ID, "Sucursal B")
	withBranch := userRequest("consucursal", "vendedor")
	withBranch.BranchID = branchB.ID
	_, err = uc.Create(ctx, admin, withBranch)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestUserResolve(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewUserUseCase(f.Repos, rut.Validator{})
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	seller := f.User(t, c.ID, entity.RoleSeller)

	p, err := uc.Resolve(context.Background(), seller.UserID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, p.CompanyID)
	assert.Equal(t, entity.RoleSeller, p.Role)
	assert.True(t, p.Active)

	_, err = uc.Resolve(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterCustomer(t *testing.T) {
	f := testutil.New()
	uc := usecase.NewUserUseCase(f.Repos, rut.Validator{})

	out, err := uc.RegisterCustomer(context.Background(), dto.RegisterCustomerRequest{
		Username: "cliente1", Email: "Cliente1@correo.cl", Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "cliente_final", out.Role)
	assert.Empty(t, out.CompanyID)
	assert.Equal(t, "cliente1@correo.cl", out.Email)

	_, err = uc.RegisterCustomer(context.Background(), dto.RegisterCustomerRequest{
		Username: "cliente2", Email: "c2@correo.cl", Password: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}
