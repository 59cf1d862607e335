package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")

	// Autorización
	ErrForbidden         = errors.New("acceso denegado")
	ErrCrossTenantAccess = errors.New("el recurso pertenece a otra empresa")
	ErrNoCompany         = errors.New("el usuario no tiene empresa asociada")

	// Validación
	ErrInvalidValue      = errors.New("valor inválido")
	ErrInvalidTaxID      = errors.New("RUT inválido")
	ErrInvalidPlan       = errors.New("plan inválido")
	ErrInvalidDate       = errors.New("fecha inválida")
	ErrEmptyTransaction  = errors.New("la transacción no tiene ítems")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrMixedTenantCart   = errors.New("el carrito contiene productos de distintas empresas")
	ErrNoDispatchBranch  = errors.New("la empresa no tiene sucursal de despacho")
	ErrNotInInventory    = errors.New("el producto no está en el inventario de la sucursal")
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// Conflicto de estado
	ErrDuplicateKey      = errors.New("recurso duplicado")
	ErrDuplicateTenant   = errors.New("ya existe una empresa con ese RUT")
	ErrPlanLimitExceeded = errors.New("se alcanzó el límite de sucursales del plan")
	ErrNoSubscription    = errors.New("la empresa no tiene suscripción activa")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRequestNotPending = errors.New("la solicitud ya fue procesada")
	ErrInUse             = errors.New("el recurso tiene registros asociados")
)

// StockError detalla el producto que no tiene stock suficiente en una venta.
type StockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: %s (solicitado %d, disponible %d)",
		ErrInsufficientStock.Error(), e.ProductName, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// Kind clasifica un error para su propagación (400/403/404/409/500).
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthorized, KindAuthorization},
	{ErrForbidden, KindAuthorization},
	{ErrCrossTenantAccess, KindAuthorization},
	{ErrNoCompany, KindAuthorization},
	{ErrNotFound, KindNotFound},
	{ErrInvalidValue, KindValidation},
	{ErrInvalidTaxID, KindValidation},
	{ErrInvalidPlan, KindValidation},
	{ErrInvalidDate, KindValidation},
	{ErrEmptyTransaction, KindValidation},
	{ErrEmptyCart, KindValidation},
	{ErrMixedTenantCart, KindValidation},
	{ErrNoDispatchBranch, KindValidation},
	{ErrNotInInventory, KindValidation},
	// La contratación duplicada se corrige en la solicitud: 400, no 409.
	{ErrDuplicateTenant, KindValidation},
	{ErrPlanLimitExceeded, KindConflict},
	{ErrNoSubscription, KindConflict},
	{ErrInsufficientStock, KindConflict},
	{ErrDuplicateKey, KindConflict},
	{ErrRequestNotPending, KindConflict},
	{ErrInvalidTransition, KindConflict},
	{ErrInUse, KindConflict},
}

// KindOf devuelve la clase del error; los errores no tipados son internos.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
