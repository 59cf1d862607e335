package repository

import "context"

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Companies      CompanyRepository
	Subscriptions  SubscriptionRepository
	ClientRequests ClientRequestRepository
	Users          UserRepository
	Branches       BranchRepository
	Products       ProductRepository
	Suppliers      SupplierRepository
	Inventory      InventoryRepository
	Movements      StockMovementRepository
	Sales          SaleRepository
	Purchases      PurchaseRepository
	Orders         OrderRepository
	Cart           CartRepository
	Reports        ReportRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn no falla, Rollback en otro caso.
// Ningún efecto de fn es visible si devuelve error.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
