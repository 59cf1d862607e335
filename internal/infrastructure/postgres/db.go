package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/temucosoft-retail/internal/domain"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepos repos atados a q (pool en autocommit o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Companies:      NewCompanyRepository(q),
		Subscriptions:  NewSubscriptionRepository(q),
		ClientRequests: NewClientRequestRepository(q),
		Users:          NewUserRepository(q),
		Branches:       NewBranchRepository(q),
		Products:       NewProductRepository(q),
		Suppliers:      NewSupplierRepository(q),
		Inventory:      NewInventoryRepository(q),
		Movements:      NewStockMovementRepository(q),
		Sales:          NewSaleRepository(q),
		Purchases:      NewPurchaseRepository(q),
		Orders:         NewOrderRepository(q),
		Cart:           NewCartRepository(q),
		Reports:        NewReportRepository(q),
	}
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// isNoRows también acepta un id mal formado (22P02): no puede coincidir con ninguna fila.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// wrap traduce violaciones de constraints a errores de dominio y envuelve el resto con op.
func wrap(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	case pgCode(err) == codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInUse)
	case pgCode(err) == codeInvalidText:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected devuelve domain.ErrNotFound si la sentencia no tocó filas.
func affected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// pageArgs LIMIT NULL equivale a sin límite.
func pageArgs(limit, offset int) (any, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return nil, offset
	}
	return limit, offset
}

type scanner interface {
	Scan(dest ...any) error
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](rows pgx.Rows, op string, scan func(scanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
