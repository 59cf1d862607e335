package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/auth"
	"github.com/jhoicas/temucosoft-retail/internal/application/inventory"
	"github.com/jhoicas/temucosoft-retail/internal/application/reporting"
	"github.com/jhoicas/temucosoft-retail/internal/application/sales"
	"github.com/jhoicas/temucosoft-retail/internal/application/tenant"
	"github.com/jhoicas/temucosoft-retail/internal/application/usecase"
	"github.com/jhoicas/temucosoft-retail/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	TenantUC    *tenant.TenantUseCase
	BranchUC    *usecase.BranchUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	InventoryUC *inventory.InventoryUseCase
	SaleUC      *sales.SaleUseCase
	PurchaseUC  *sales.PurchaseUseCase
	CartUC      *sales.CartUseCase
	OrderUC     *sales.OrderUseCase
	ReportUC    *reporting.ReportUseCase
	JWTSecret   string
	JWTIssuer   string
}

// AppConfig opciones del servidor fiber.
type AppConfig struct {
	Name         string
	AllowOrigins string
	ReadTimeout  time.Duration
}

// NewApp crea la aplicación fiber con el manejo de errores y los middlewares comunes.
func NewApp(cfg AppConfig, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

var (
	superAdmin = string(entity.RoleSuperAdmin)
	admin      = string(entity.RoleAdminClient)
	manager    = string(entity.RoleManager)
	seller     = string(entity.RoleSeller)
)

// Router registra las rutas de la API. Las rutas públicas se registran antes
// del grupo protegido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	productHandler := NewProductHandler(deps.ProductUC)

	// Públicas
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Post("/client-requests", tenantHandler.SubmitRequest)
	api.Get("/shop/:company_id/products", productHandler.Storefront)

	// Rutas protegidas (requieren Bearer Token y usuario vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), LoadPrincipal(deps.UserUC))

	// Plataforma (super_admin)
	requests := protected.Group("/client-requests", RequireRole(superAdmin))
	requests.Get("/", tenantHandler.ListRequests)
	requests.Post("/:id/reject", tenantHandler.RejectRequest)
	requests.Delete("/:id", tenantHandler.DeleteRequest)

	companies := protected.Group("/companies", RequireRole(superAdmin))
	companies.Get("/", tenantHandler.ListCompanies)
	companies.Get("/:id", tenantHandler.GetCompany)
	companies.Post("/:id/subscribe", tenantHandler.Subscribe)
	protected.Post("/company/create/from_request/:id", RequireRole(superAdmin), tenantHandler.CreateFromRequest)

	subscription := protected.Group("/subscription")
	subscription.Get("/", tenantHandler.Subscription)
	subscription.Get("/limit", tenantHandler.PlanLimit)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Post("/", RequireRole(superAdmin, admin), userHandler.Create)
	users.Get("/", RequireRole(superAdmin, admin), userHandler.List)

	// Sucursales
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", RequireRole(admin), branchHandler.Create)
	branches.Put("/:id", RequireRole(admin), branchHandler.Update)
	branches.Delete("/:id", RequireRole(admin), branchHandler.Delete)

	// Catálogo
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(admin, manager), productHandler.Create)
	products.Put("/:id", RequireRole(admin, manager), productHandler.Update)
	products.Delete("/:id", RequireRole(admin, manager), productHandler.Delete)

	suppliers := protected.Group("/suppliers", RequireRole(admin, manager))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Inventario
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/stock", inventoryHandler.Stock)
	inv.Post("/adjust", RequireRole(admin, manager), inventoryHandler.Adjust)
	inv.Put("/reorder-point", RequireRole(admin, manager), inventoryHandler.ReorderPoint)
	inv.Get("/movements", RequireRole(admin, manager), inventoryHandler.Movements)

	// Ventas y compras
	saleHandler := NewSaleHandler(deps.SaleUC, deps.PurchaseUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequireRole(seller), saleHandler.RegisterSale)
	salesGroup.Get("/", saleHandler.ListSales)
	salesGroup.Get("/:id", saleHandler.GetSale)
	protected.Post("/purchases", RequireRole(admin, manager), saleHandler.RegisterPurchase)

	// Tienda web
	cartHandler := NewCartHandler(deps.CartUC, deps.OrderUC)
	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.List)
	cart.Post("/add", cartHandler.Add)
	cart.Post("/checkout", cartHandler.Checkout)
	cart.Delete("/:product_id", cartHandler.Remove)

	orders := protected.Group("/orders", RequireRole(admin, manager))
	orders.Get("/", cartHandler.ListOrders)
	orders.Patch("/:id/status", cartHandler.AdvanceOrder)

	// Reportes
	reports := protected.Group("/reports", RequireRole(admin, manager))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/low-stock", reportHandler.LowStock)
}
