package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/auth"
	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	appcosting "github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ComponentUC  *catalog.ComponentUseCase
	ProductUC    *catalog.ProductUseCase
	SupplierUC   *catalog.SupplierUseCase
	LocationUC   *catalog.LocationUseCase
	StockUC      *stock.UseCase
	ReceiptUC    *receipt.UseCase
	OrderUC      *order.UseCase
	CostingUC    *appcosting.UseCase
	LocationRepo repository.LocationRepository
	JWTSecret    string
}

// Router enregistre les routes de l'API. Les lectures exigent un token
// valide; les mutations exigent en plus le rôle ADMIN ou OPERATEUR.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	mutate := RequireRole(entity.RoleAdmin, entity.RoleOperateur)

	// Composants
	components := protected.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	components.Post("/", mutate, componentHandler.Create)
	components.Get("/", componentHandler.List)
	components.Get("/:id", componentHandler.GetByID)
	components.Put("/:id", mutate, componentHandler.Update)
	components.Delete("/:id", mutate, componentHandler.Deactivate)
	components.Get("/:id/avg-cost", receiptHandler.GetAvgCost)

	// Produits finis + nomenclature
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.CostingUC)
	products.Post("/", mutate, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", mutate, productHandler.Deactivate)
	products.Put("/:id/bom", mutate, productHandler.SetBomItem)
	products.Get("/:id/bom", productHandler.GetBom)
	products.Delete("/:id/bom/:componentId", mutate, productHandler.RemoveBomItem)
	products.Get("/:id/unit-cost", orderHandler.GetProductUnitCost)

	// Fournisseurs + factures d'achat
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", mutate, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/:id/invoices", mutate, supplierHandler.CreateInvoice)
	suppliers.Get("/:id/invoices", supplierHandler.ListInvoices)

	// Emplacements
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", mutate, locationHandler.Create)
	locations.Get("/", locationHandler.List)

	// Mouvements de stock
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.StockUC, deps.LocationRepo)
	movements.Post("/", mutate, movementHandler.Create)
	movements.Post("/validate", movementHandler.Validate)
	movements.Post("/sortie-vers-pipcos", mutate, movementHandler.SortieVersPipcos)
	movements.Post("/transfert-fini-vers-depot", mutate, movementHandler.TransfertFiniVersDepot)
	movements.Post("/retour-de-pipcos", mutate, movementHandler.RetourDePipcos)
	movements.Get("/item/:itemType/:itemId", movementHandler.ListByItem)
	movements.Get("/location/:locationId", movementHandler.ListByLocation)

	// Soldes
	stocks := protected.Group("/stocks")
	stocks.Get("/:itemType/:itemId", movementHandler.GetAllStocks)
	stocks.Get("/:itemType/:itemId/:locationId", movementHandler.GetStock)

	// Réceptions
	receipts := protected.Group("/receipts")
	receipts.Post("/", mutate, receiptHandler.Create)

	// Ordres de fabrication
	of := protected.Group("/of")
	of.Post("/", mutate, orderHandler.Create)
	of.Get("/", orderHandler.List)
	of.Get("/:id", orderHandler.GetByID)
	of.Post("/:id/production", mutate, orderHandler.RecordProduction)
	of.Post("/:id/close", mutate, orderHandler.Close)
	of.Get("/:id/cost", orderHandler.GetCost)
}
