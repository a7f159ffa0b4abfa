package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	LedgerUC     *inventory.LedgerUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	ReconcileUC  *inventory.ReconcileUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	SlipPDF      ports.MoveSlipGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos; un manager autenticado puede registrar managers)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Put("/me", AuthMiddleware(deps.JWTSecret), authHandler.UpdateMe)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managerOnly := RequireRole(domain.RoleManager)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", managerOnly, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", productHandler.Stock)
	products.Put("/:id", managerOnly, productHandler.Update)
	products.Delete("/:id", managerOnly, productHandler.Delete)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", managerOnly, locationHandler.Create)
	locations.Get("/:id", locationHandler.GetByID)

	// Moves (ledger). Las rutas fijas van antes de /:id.
	moves := protected.Group("/moves")
	moveHandler := NewMoveHandler(deps.LedgerUC, deps.AdjustmentUC, deps.ReconcileUC, deps.SlipPDF)
	moves.Post("/", moveHandler.Create)
	moves.Post("/adjustment", moveHandler.Adjustment)
	moves.Get("/history", moveHandler.History)
	moves.Get("/:id", moveHandler.GetByID)
	moves.Get("/:id/slip.pdf", moveHandler.Slip)
	moves.Patch("/:id/status", moveHandler.UpdateStatus)

	protected.Get("/inventory/reconcile", managerOnly, moveHandler.Reconcile)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Stats)
}
