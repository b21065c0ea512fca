package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	RecordConversion *milling.RecordConversionUseCase
	CreateBags       *milling.CreateBagsUseCase
	SellBags         *milling.SellBagsUseCase
	StockOverview    *milling.StockOverviewUseCase
	PurchaseUC       *usecase.PurchaseUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	SettingsUC       *usecase.SettingsUseCase
	JWTSecret        string
}

// Router registers the API routes. Everything under /api requires a Bearer
// token carrying the owner and business scope.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ScopeMiddleware(deps.JWTSecret))

	// Paddy purchases
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Conversions
	conversions := api.Group("/conversions")
	conversionHandler := NewConversionHandler(deps.RecordConversion)
	conversions.Post("/", conversionHandler.Record)
	conversions.Post("/pricing-preview", conversionHandler.PreviewPricing)
	conversions.Get("/", conversionHandler.List)
	conversions.Get("/:id", conversionHandler.GetByID)

	// Bagged stock
	bags := api.Group("/bags")
	baggingHandler := NewBaggingHandler(deps.CreateBags, deps.SellBags, deps.StockOverview)
	bags.Post("/", baggingHandler.Create)
	bags.Get("/", baggingHandler.List)
	bags.Get("/:id", baggingHandler.GetByID)
	bags.Post("/:id/sell", baggingHandler.Sell)

	// Stock read side
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockOverview)
	stock.Get("/overview", stockHandler.Overview)
	stock.Get("/totals", stockHandler.Totals)
	stock.Get("/inventory", stockHandler.Inventory)

	// Employees
	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)

	// Settings
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/bag-sizes", settingsHandler.ListBagSizes)
	settings.Post("/bag-sizes", settingsHandler.AddBagSize)
	settings.Delete("/bag-sizes/:size", settingsHandler.RemoveBagSize)
}
