package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// company_id y branch_id son NULL para usuarios sin empresa.
const userSelect = `
	SELECT id, COALESCE(company_id::text, ''), COALESCE(branch_id::text, ''), username, email, tax_id, name,
	       password_hash, role, active, created_at, updated_at
	FROM users`

func scanUser(row scanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.BranchID, &u.Username, &u.Email, &u.TaxID, &u.Name,
		&u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste el usuario. Username o email repetido devuelve domain.ErrDuplicateKey.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, branch_id, username, email, tax_id, name, password_hash, role, active, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, u.BranchID, u.Username, u.Email, u.TaxID, u.Name,
		u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return wrap("insert user", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario (login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE username = $1`, username)
}

// ListByCompany usuarios de la empresa por fecha de creación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	l, o := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, userSelect+` WHERE company_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`, companyID, l, o)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, "user", scanUser)
}
