// Package bootstrap arma la persistencia y los casos de uso a partir de la configuración.
// Lo comparten cmd/api y cmd/seed.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/auth"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/application/reporting"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
	"github.com/jhoicas/temucosoft-retail/internal/application/tenant"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain/repository"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/events"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/memory"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/postgres"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
	"github.com/jhoicas/temucosoft-retail/pkg/logger"
	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

// Storage repositorios en modo autocommit y el runner de transacciones.
type Storage struct {
	Repos    repository.Repos
	TxRunner repository.TxRunner
	Close    func()
}

// OpenStorage abre PostgreSQL (aplicando migraciones si DB_MIGRATE) o el store en memoria.
func OpenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.New()
		return &Storage{Repos: store.Repos(), TxRunner: store, Close: func() {}}, nil
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Storage{
		Repos:    postgres.NewRepos(pool),
		TxRunner: postgres.NewTxRunner(pool),
		Close:    pool.Close,
	}, nil
}

// Publisher publica en NATS si NATS_URL está definido; si no, solo registra los eventos.
func Publisher(cfg config.NATSConfig, log zerolog.Logger) (ports.EventPublisher, func(), error) {
	if cfg.URL == "" {
		return events.NewLogPublisher(logger.Component(log, "events")), func() {}, nil
	}
	conn, err := events.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return events.NewNATSPublisher(conn, cfg.SubjectPrefix), func() { _ = conn.Drain() }, nil
}

// UseCases casos de uso de la aplicación.
type UseCases struct {
	Auth      *auth.AuthUseCase
	Users     *usecase.UserUseCase
	Tenants   *tenant.TenantUseCase
	Branches  *usecase.BranchUseCase
	Products  *usecase.ProductUseCase
	Suppliers *usecase.SupplierUseCase
	Inventory *inventory.InventoryUseCase
	Sales     *sales.SaleUseCase
	Purchases *sales.PurchaseUseCase
	Cart      *sales.CartUseCase
	Orders    *sales.OrderUseCase
	Reports   *reporting.ReportUseCase
}

// NewUseCases construye el grafo de casos de uso sobre st.
func NewUseCases(st *Storage, jwtCfg config.JWTConfig, pub ports.EventPublisher, log zerolog.Logger) *UseCases {
	taxIDs := rut.Validator{}
	ledger := inventory.NewLedger(logger.Component(log, "ledger"))
	engine := logger.Component(log, "sales")
	return &UseCases{
		Auth: auth.NewAuthUseCase(st.Repos.Users, auth.JWTConfig{
			Secret:     jwtCfg.Secret,
			ExpMinutes: jwtCfg.Expiration,
			Issuer:     jwtCfg.Issuer,
		}),
		Users:     usecase.NewUserUseCase(st.Repos, taxIDs),
		Tenants:   tenant.NewTenantUseCase(st.TxRunner, st.Repos, taxIDs, pub, logger.Component(log, "tenant")),
		Branches:  usecase.NewBranchUseCase(st.TxRunner, st.Repos.Branches, logger.Component(log, "branches")),
		Products:  usecase.NewProductUseCase(st.Repos.Products, st.Repos.Companies),
		Suppliers: usecase.NewSupplierUseCase(st.Repos.Suppliers, taxIDs),
		Inventory: inventory.NewInventoryUseCase(st.TxRunner, st.Repos, ledger, pub, logger.Component(log, "inventory")),
		Sales:     sales.NewSaleUseCase(st.TxRunner, st.Repos, ledger, pub, engine),
		Purchases: sales.NewPurchaseUseCase(st.TxRunner, st.Repos, ledger, pub, engine),
		Cart:      sales.NewCartUseCase(st.TxRunner, st.Repos, ledger, pub, engine),
		Orders:    sales.NewOrderUseCase(st.TxRunner, st.Repos, pub, engine),
		Reports:   reporting.NewReportUseCase(st.Repos.Reports, st.Repos.Branches),
	}
}
