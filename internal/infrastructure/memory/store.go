// Package memory implementa los repositorios en memoria para demo y pruebas.
// Las transacciones se serializan con un mutex y se confirman reemplazando el estado completo
// (copy-on-write), así un error dentro de Run no deja rastro.
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type record[T any] struct {
	v   T
	seq int64
}

// table mapa por ID que conserva el orden de inserción.
type table[T any] map[string]record[T]

func (t table[T]) list(keep func(T) bool) []T {
	rows := make([]record[T], 0, len(t))
	for _, r := range t {
		if keep == nil || keep(r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.v
	}
	return out
}

type invKey struct{ productID, branchID string }

type cartKey struct{ userID, productID string }

type tables struct {
	seq           int64
	companies     table[entity.Company]
	subscriptions table[entity.Subscription] // por company_id
	requests      table[entity.ClientRequest]
	users         table[entity.User]
	branches      table[entity.Branch]
	products      table[entity.Product]
	suppliers     table[entity.Supplier]
	inventory     map[invKey]entity.Inventory
	movements     []entity.StockMovement
	sales         table[entity.Sale]
	purchases     table[entity.Purchase]
	orders        table[entity.Order]
	cart          map[cartKey]record[entity.CartItem]
}

func newTables() *tables {
	return &tables{
		companies:     table[entity.Company]{},
		subscriptions: table[entity.Subscription]{},
		requests:      table[entity.ClientRequest]{},
		users:         table[entity.User]{},
		branches:      table[entity.Branch]{},
		products:      table[entity.Product]{},
		suppliers:     table[entity.Supplier]{},
		inventory:     map[invKey]entity.Inventory{},
		sales:         table[entity.Sale]{},
		purchases:     table[entity.Purchase]{},
		orders:        table[entity.Order]{},
		cart:          map[cartKey]record[entity.CartItem]{},
	}
}

// clone copia superficial de cada mapa. Las entidades se guardan por valor y sus slices
// (ítems de venta, orden, compra) nunca se modifican en sitio.
func (t *tables) clone() *tables {
	return &tables{
		seq:           t.seq,
		companies:     maps.Clone(t.companies),
		subscriptions: maps.Clone(t.subscriptions),
		requests:      maps.Clone(t.requests),
		users:         maps.Clone(t.users),
		branches:      maps.Clone(t.branches),
		products:      maps.Clone(t.products),
		suppliers:     maps.Clone(t.suppliers),
		inventory:     maps.Clone(t.inventory),
		movements:     slices.Clone(t.movements),
		sales:         maps.Clone(t.sales),
		purchases:     maps.Clone(t.purchases),
		orders:        maps.Clone(t.orders),
		cart:          maps.Clone(t.cart),
	}
}

func (t *tables) next() int64 {
	t.seq++
	return t.seq
}

// Store almacenamiento en memoria con semántica transaccional.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newTables()}
}

// Repos repositorios en modo autocommit (cada llamada es atómica por sí sola).
func (s *Store) Repos() repository.Repos {
	return reposFor(&session{store: s})
}

// Run ejecuta fn sobre una copia del estado; si fn no falla, la copia pasa a ser el estado.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(reposFor(&session{store: s, tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

type session struct {
	store *Store
	tx    *tables
}

// view devuelve las tablas a usar: las de la transacción o las del store bajo su mutex.
func (s *session) view() (*tables, func()) {
	if s.tx != nil {
		return s.tx, func() {}
	}
	s.store.mu.Lock()
	return s.store.data, s.store.mu.Unlock
}

func reposFor(s *session) repository.Repos {
	return repository.Repos{
		Companies:      &companyRepo{s},
		Subscriptions:  &subscriptionRepo{s},
		ClientRequests: &clientRequestRepo{s},
		Users:          &userRepo{s},
		Branches:       &branchRepo{s},
		Products:       &productRepo{s},
		Suppliers:      &supplierRepo{s},
		Inventory:      &inventoryRepo{s},
		Movements:      &movementRepo{s},
		Sales:          &saleRepo{s},
		Purchases:      &purchaseRepo{s},
		Orders:         &orderRepo{s},
		Cart:           &cartRepo{s},
		Reports:        &reportRepo{s},
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func ptr[T any](v T) *T { return &v }
