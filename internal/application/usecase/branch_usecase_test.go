package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/dto"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/testutil"
)

func newBranchUseCase(f *testutil.Fixture) *usecase.BranchUseCase {
	return usecase.NewBranchUseCase(f.Store, f.Repos.Branches, zerolog.Nop())
}

func TestBranchCreate_RespetaLimiteDelPlan(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	c := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: fmt.Sprintf("Sucursal %d", i)})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: "Cuarta"})
	assert.ErrorIs(t, err, domain.ErrPlanLimitExceeded)

	n, err := f.Repos.Branches.CountByCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestBranchCreate_SinSuscripcion(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	c := f.Company(t, "Sin plan", "76543210-3", "")
	admin := f.User(t, c.ID, entity.RoleAdminClient)

	_, err := uc.Create(context.Background(), admin, dto.CreateBranchRequest{Name: "Centro"})
	assert.ErrorIs(t, err, domain.ErrPlanLimitExceeded)
	assert.ErrorIs(t, err, domain.ErrNoSubscription)
}

func TestBranchCreate_ConcurrenteEnElLimite(t *testing.T) {
	casos := []struct {
		nombre     string
		existentes int
		intentos   int
		exitos     int
	}{
		{"plan lleno: ninguno entra", 3, 5, 0},
		{"queda un cupo: exactamente uno entra", 2, 2, 1},
		{"queda un cupo con muchos intentos", 2, 8, 1},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			f := testutil.New()
			uc := newBranchUseCase(f)
			company := f.Company(t, "Almacén", "76543210-3", entity.PlanBasic)
			admin := f.User(t, company.ID, entity.RoleAdminClient)
			for i := 0; i < c.existentes; i++ {
				f.Branch(t, company.ID, fmt.Sprintf("Existente %d", i))
			}

			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				ok   int
				errs []error
			)
			for i := 0; i < c.intentos; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := uc.Create(context.Background(), admin, dto.CreateBranchRequest{Name: fmt.Sprintf("Nueva %d", i)})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						ok++
						return
					}
					errs = append(errs, err)
				}(i)
			}
			wg.Wait()

			assert.Equal(t, c.exitos, ok)
			for _, err := range errs {
				assert.ErrorIs(t, err, domain.ErrPlanLimitExceeded)
			}
			n, err := f.Repos.Branches.CountByCompany(context.Background(), company.ID)
			require.NoError(t, err)
			assert.Equal(t, c.existentes+c.exitos, n)
		})
	}
}

func TestBranch_AislamientoEntreEmpresas(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	a := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	b := f.Company(t, "B", "11111111-1", entity.PlanBasic)
	branchB := f.Branch(t, b.ID, "Sucursal B")
	adminA := f.User(t, a.ID, entity.RoleAdminClient)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, adminA, branchB.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	name := "Renombrada"
	_, err = uc.Update(ctx, adminA, branchB.ID, dto.UpdateBranchRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	assert.ErrorIs(t, uc.Delete(ctx, adminA, branchB.ID), domain.ErrCrossTenantAccess)

	stored, err := f.Repos.Branches.GetByID(ctx, branchB.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sucursal B", stored.Name)
}

func TestBranch_RolesSinPermiso(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.User(t, c.ID, entity.RoleManager), dto.CreateBranchRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, f.User(t, "", entity.RoleCustomer), dto.CreateBranchRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNoCompany)

	seller := f.User(t, c.ID, entity.RoleSeller)
	branch := f.Branch(t, c.ID, "Centro")
	got, err := uc.GetByID(ctx, seller, branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centro", got.Name)
}

func TestBranchDelete_LiberaCupo(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()
	var last string
	for i := 0; i < 3; i++ {
		b, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: fmt.Sprintf("S%d", i)})
		require.NoError(t, err)
		last = b.ID
	}
	require.NoError(t, uc.Delete(ctx, admin, last))

	_, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: "Reemplazo"})
	assert.NoError(t, err)
}

func TestBranchUpdate_SoloCamposEnviados(t *testing.T) {
	f := testutil.New()
	uc := newBranchUseCase(f)
	c := f.Company(t, "A", "76543210-3", entity.PlanBasic)
	admin := f.User(t, c.ID, entity.RoleAdminClient)
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, dto.CreateBranchRequest{Name: "Centro", Address: "Bulnes 100", Phone: "452000000"})
	require.NoError(t, err)

	addr := "Montt 250"
	got, err := uc.Update(ctx, admin, created.ID, dto.UpdateBranchRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Centro", got.Name)
	assert.Equal(t, "Montt 250", got.Address)
	assert.Equal(t, "452000000", got.Phone)

	blank := "  "
	_, err = uc.Update(ctx, admin, created.ID, dto.UpdateBranchRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	stored, err := f.Repos.Branches.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centro", stored.Name)
	assert.Equal(t, "Montt 250", stored.Address)
}
