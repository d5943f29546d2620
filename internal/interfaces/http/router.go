package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	LedgerUC  *ledger.LedgerUseCase
	ReportsUC *reports.ReportsUseCase
	Users     UserLoader
	Companies CompanyLoader
	JWTSecret string
	DevMode   bool // en development los errores internos exponen el detalle
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(localDevMode, deps.DevMode)
		return c.Next()
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	// Products (protegido; escrituras gateadas por rol en el caso de uso)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Transactions (protegido; cualquier rol registra movimientos)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/user/:userId", transactionHandler.ListByUser)
	transactions.Get("/product/:productId", transactionHandler.ListByProduct)
	transactions.Get("/:id", transactionHandler.GetByID)

	// Users (protegido; solo Admin y Manager)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleManager))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reports (protegido). El resumen del dashboard es el único abierto a
	// Staff; la actividad por usuario es solo Admin.
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC, deps.Companies)
	adminManager := RequireRole(entity.RoleAdmin, entity.RoleManager)
	reportsGroup.Get("/stock-movements", adminManager, reportHandler.StockMovements)
	reportsGroup.Get("/top-products", adminManager, reportHandler.TopProducts)
	reportsGroup.Get("/transactions-by-date", adminManager, reportHandler.TransactionsByDate)
	reportsGroup.Get("/low-stock", adminManager, reportHandler.LowStock)
	reportsGroup.Get("/dashboard-summary", reportHandler.Dashboard)
	reportsGroup.Get("/user-activity", RequireRole(entity.RoleAdmin), reportHandler.UserActivity)
	reportsGroup.Get("/export", adminManager, reportHandler.Export)
}
