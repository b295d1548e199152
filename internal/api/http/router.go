package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Customers   *handlers.CustomersHandler
	Categories  *handlers.CategoriesHandler
	Products    *handlers.ProductsHandler
	Warehouses  *handlers.WarehousesHandler
	Inventories *handlers.InventoriesHandler
	Orders      *handlers.OrdersHandler
	Verifier    *auth.Verifier
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/refresh", cfg.Verifier.RefreshChain(), cfg.Auth.Refresh)
	// /me verifies the token only; the handler re-resolves the account so a
	// vanished user maps to 404 instead of a generic 401.
	authGroup.Get("/me", auth.Chain(cfg.Verifier.VerifyCookie(auth.ClassAccess)), cfg.Auth.Me)

	api := app.Group("/api", cfg.Verifier.AccessChain())

	api.Post("/users", cfg.Users.Create)
	api.Get("/users", cfg.Users.List)
	api.Get("/users/:id", cfg.Users.Get)
	api.Patch("/users/:id", cfg.Users.Update)
	api.Delete("/users/:id", cfg.Users.Delete)
	api.Post("/users/password", cfg.Users.ChangePassword)

	api.Get("/customers", cfg.Customers.List)
	api.Get("/customers/:id", cfg.Customers.Get)
	api.Post("/customers", cfg.Customers.Create)
	api.Patch("/customers/:id", cfg.Customers.Update)
	api.Delete("/customers/:id", cfg.Customers.Delete)

	api.Get("/categories", cfg.Categories.List)
	api.Get("/categories/:id", cfg.Categories.Get)
	api.Post("/categories", cfg.Categories.Create)
	api.Patch("/categories/:id", cfg.Categories.Update)
	api.Delete("/categories/:id", cfg.Categories.Delete)

	api.Get("/products", cfg.Products.List)
	api.Get("/products/:id", cfg.Products.Get)
	api.Post("/products", cfg.Products.Create)
	api.Patch("/products/:id", cfg.Products.Update)
	api.Delete("/products/:id", cfg.Products.Delete)

	api.Get("/warehouses", cfg.Warehouses.List)
	api.Get("/warehouses/:id", cfg.Warehouses.Get)
	api.Post("/warehouses", cfg.Warehouses.Create)
	api.Patch("/warehouses/:id", cfg.Warehouses.Update)
	api.Delete("/warehouses/:id", cfg.Warehouses.Delete)

	api.Get("/inventories", cfg.Inventories.List)
	api.Get("/inventories/:id", cfg.Inventories.Get)
	api.Post("/inventories", cfg.Inventories.Create)
	api.Patch("/inventories/:id", cfg.Inventories.Update)
	api.Post("/inventories/:id/adjust", cfg.Inventories.AdjustStock)
	api.Delete("/inventories/:id", cfg.Inventories.Delete)

	api.Get("/orders", cfg.Orders.List)
	api.Get("/orders/:id", cfg.Orders.Get)
	api.Post("/orders", cfg.Orders.Create)
	api.Patch("/orders/:id/status", cfg.Orders.SetStatus)
	api.Delete("/orders/:id", cfg.Orders.Delete)

	// Header-based variant for machine clients that cannot hold cookies.
	integrations := app.Group("/integrations", cfg.Verifier.BearerChain())
	integrations.Get("/orders", cfg.Orders.List)
	integrations.Get("/inventories", cfg.Inventories.List)
}
