package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/application/usecase"
	"github.com/jhoicas/pakurmart-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Storage         *storage.Storage
	Recommendations *usecase.RecommendationUseCase
	Receipts        *usecase.ReceiptUseCase
	Log             *logger.Logger
}

// Router registra las rutas de la API. Todas responden con Cache-Control: no-store.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	api := app.Group("/api", NoStore())

	// Users
	userHandler := NewUserHandler(deps.Storage, log)
	users := api.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.GetByEmail)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Get("/:id/orders", userHandler.Orders)
	users.Get("/:id/orders/summary", userHandler.OrderSummary)
	users.Get("/:id/notifications", userHandler.Notifications)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Storage, log)
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/:id", catalogHandler.GetCategory)

	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/:id", catalogHandler.GetProduct)

	// Carrito
	cartHandler := NewCartHandler(deps.Storage, log)
	cart := api.Group("/cart")
	cart.Get("/:userId", cartHandler.Get)
	cart.Post("/:userId", cartHandler.Add)
	cart.Delete("/:userId", cartHandler.Clear)
	cart.Put("/:userId/:cartItemId", cartHandler.UpdateItem)
	cart.Delete("/:userId/:cartItemId", cartHandler.RemoveItem)

	// Pedidos
	orderHandler := NewOrderHandler(deps.Storage, deps.Receipts, log)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	// Wishlist
	wishlistHandler := NewWishlistHandler(deps.Storage, log)
	wishlist := api.Group("/wishlist")
	wishlist.Get("/:userId", wishlistHandler.List)
	wishlist.Post("/:userId", wishlistHandler.Add)
	wishlist.Delete("/:userId", wishlistHandler.Clear)
	wishlist.Get("/:userId/products", wishlistHandler.Products)
	wishlist.Delete("/:userId/:productId", wishlistHandler.Remove)

	// Recomendaciones
	recHandler := NewRecommendationHandler(deps.Recommendations, log)
	recs := api.Group("/recommendations")
	recs.Get("/", recHandler.Recommend)
	recs.Get("/:userId/history", recHandler.History)
	recs.Delete("/:userId", recHandler.Clear)
}
