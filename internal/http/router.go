package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/stockroom/docs"
	"github.com/rogerio-castellano/stockroom/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// Auth, throttled per client IP.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	// Public reads.
	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.SearchProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/{id}/stock", handlers.GetStockLevelsHandler)
	r.Get("/products/{id}/operations", handlers.GetOperationsHandler)
	r.Get("/products/{id}/operations/export", handlers.ExportOperationsHandler)
	r.Get("/reports/low-stock", handlers.LowStockReportHandler)
	r.Get("/reports/replenishment", handlers.ReplenishmentHandler)
	r.Get("/reports/purchase-plans", handlers.PurchasePlansHandler)

	// Mutations require a valid token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/products", handlers.CreateProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustStockHandler)
		r.Post("/transfers", handlers.TransferHandler)
		r.Post("/admin/users", handlers.RegisterAsAdminHandler)
		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
