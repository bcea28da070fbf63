package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-analytics/internal/application/analytics"
	"github.com/jhoicas/stock-analytics/internal/application/auth"
	"github.com/jhoicas/stock-analytics/internal/application/inventory"
	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/application/usecase"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	AnalyticsUC    *usecase.AnalyticsUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ReportUC       *report.ReportUseCase
	Location       *time.Location
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas: Bearer Token con rol admin o user.
	protect := func(h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{
			AuthMiddleware(deps.JWTSecret),
			RequireRole(entity.RoleAdmin, entity.RoleUser),
			h,
		}
	}

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", protect(authHandler.Me)...)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", protect(productHandler.Create)...)
	products.Post("/import", protect(productHandler.Import)...)
	products.Get("/", protect(productHandler.List)...)
	products.Get("/:id", protect(productHandler.GetByID)...)
	products.Put("/:id", protect(productHandler.Update)...)
	products.Delete("/:id", protect(productHandler.Delete)...)

	// Movements + reposición
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.Replenishment)
	api.Post("/movements", protect(inventoryHandler.RecordMovement)...)
	api.Get("/movements", protect(inventoryHandler.ListMovements)...)
	api.Get("/inventory/replenishment", protect(inventoryHandler.Replenishment)...)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.Location)
	analytics := api.Group("/analytics")
	analytics.Get("/daily", protect(analyticsHandler.Daily)...)
	analytics.Get("/monthly", protect(analyticsHandler.Monthly)...)
	analytics.Get("/yearly", protect(analyticsHandler.Yearly)...)
	analytics.Get("/categories", protect(analyticsHandler.Categories)...)
	analytics.Get("/products", protect(analyticsHandler.Products)...)
	analytics.Get("/overview", protect(analyticsHandler.Overview)...)
	analytics.Get("/forecast/:productId", protect(analyticsHandler.Forecast)...)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", protect(dashboardHandler.GetSummary)...)

	// Reportes descargables
	reportHandler := NewReportHandler(deps.ReportUC, analyticsHandler)
	reports := api.Group("/reports")
	reports.Get("/yearly.pdf", protect(reportHandler.YearlyPDF)...)
	reports.Get("/yearly.xlsx", protect(reportHandler.YearlyWorkbook)...)
}
