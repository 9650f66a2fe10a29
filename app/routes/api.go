package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Controllers bundles everything RegisterAPI needs to wire the HTTP surface.
type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Products *controllers.ProductController
	Orders   *controllers.OrderController

	// SubjectExists verifies the token subject still has an account.
	SubjectExists middleware.SubjectChecker
}

func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")
	api.Post("/auth/login", "auth.login", c.Auth.Login)

	// Signup and product browsing stay open.
	api.Post("/users", "users.store", c.Users.CreateUser)
	api.Get("/products", "products.index", c.Products.GetProducts)
	api.Get("/products/{productId}", "products.show", c.Products.GetProduct)

	protected := api.Group("", middleware.Auth(c.SubjectExists))

	protected.Get("/users", "users.index", c.Users.GetUsers)
	protected.Get("/users/{userId}", "users.show", c.Users.GetUser)
	protected.Put("/users/{userId}", "users.update", c.Users.UpdateUser)
	protected.Delete("/users/{userId}", "users.destroy", c.Users.DeleteUser)

	protected.Post("/products", "products.store", c.Products.CreateProduct)
	protected.Put("/products/{productId}", "products.update", c.Products.UpdateProduct)
	protected.Delete("/products/{productId}", "products.destroy", c.Products.DeleteProduct)

	protected.Get("/orders", "orders.index", c.Orders.GetOrders)
	protected.Get("/orders/{orderId}", "orders.show", c.Orders.GetOrder)
	protected.Post("/orders", "orders.store", c.Orders.CreateOrder)
	protected.Put("/orders/{orderId}/status", "orders.status", c.Orders.UpdateOrderStatus)
}
