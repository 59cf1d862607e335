package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/temucosoft-retail/docs"
	"github.com/jhoicas/temucosoft-retail/internal/bootstrap"
	httpRouter "github.com/jhoicas/temucosoft-retail/internal/interfaces/http"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
	"github.com/jhoicas/temucosoft-retail/pkg/logger"
)

// @title                       TemucoSoft Retail API
// @version                     1.0
// @description                 Plataforma multiempresa de punto de venta, inventario y tienda web.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer storage.Close()

	publisher, closePublisher, err := bootstrap.Publisher(cfg.NATS, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a NATS")
	}
	defer closePublisher()

	uc := bootstrap.NewUseCases(storage, cfg.JWT, publisher, log)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
	}, logger.Component(log, "http"))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TemucoSoft Retail API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      uc.Auth,
		UserUC:      uc.Users,
		TenantUC:    uc.Tenants,
		BranchUC:    uc.Branches,
		ProductUC:   uc.Products,
		SupplierUC:  uc.Suppliers,
		InventoryUC: uc.Inventory,
		SaleUC:      uc.Sales,
		PurchaseUC:  uc.Purchases,
		CartUC:      uc.Cart,
		OrderUC:     uc.Orders,
		ReportUC:    uc.Reports,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
