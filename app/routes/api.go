// Package routes wires controllers onto the router.
package routes

import (
	"time"

	"github.com/barecheradouane2/ShoppingStorev1/app/controllers"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/middleware"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/router"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/ws"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Shippings  *controllers.ShippingController
	Expenses   *controllers.ExpenseController
	Orders     *controllers.OrderController
}

// RegisterAPI mounts the whole HTTP surface. Everything under /api except
// auth login/register/reset requires a valid JWT.
func RegisterAPI(r *router.Router, c Controllers, hub *ws.Hub) {
	api := r.Group("/api")

	// Public auth endpoints.
	pub := api.Group("/auth", middleware.RateLimit(30, time.Minute))
	pub.Post("/register", "auth.register", c.Auth.Register)
	pub.Post("/login", "auth.login", c.Auth.Login)
	pub.Post("/forgot-password", "auth.forgot", c.Auth.ForgotPassword)
	pub.Post("/reset-password", "auth.reset", c.Auth.ResetPassword)

	// Everything below requires a valid token.
	priv := api.Group("", middleware.Auth)

	priv.Get("/auth/me", "auth.me", c.Auth.Me)

	cat := priv.Group("/categories")
	cat.Get("", "categories.list", c.Categories.List)
	cat.Post("", "categories.create", c.Categories.Create)
	cat.Get("/{id}", "categories.get", c.Categories.Get)
	cat.Put("/{id}", "categories.update", c.Categories.Update)
	cat.Delete("/{id}", "categories.delete", c.Categories.Delete)

	prod := priv.Group("/products")
	prod.Get("", "products.list", c.Products.List)
	prod.Post("", "products.create", c.Products.Create)
	prod.Get("/stats", "products.stats", c.Products.Stats)
	prod.Get("/{id}", "products.get", c.Products.Get)
	prod.Put("/{id}", "products.update", c.Products.Update)
	prod.Delete("/{id}", "products.delete", c.Products.Delete)
	prod.Post("/{id}/stock", "products.addstock", c.Products.AddStock)
	prod.Post("/{id}/images", "products.images", c.Products.UploadImages)

	ship := priv.Group("/shippings")
	ship.Get("", "shippings.list", c.Shippings.List)
	ship.Post("", "shippings.create", c.Shippings.Create)
	ship.Get("/{id}", "shippings.get", c.Shippings.Get)
	ship.Put("/{id}", "shippings.update", c.Shippings.Update)
	ship.Delete("/{id}", "shippings.delete", c.Shippings.Delete)

	exp := priv.Group("/expenses")
	exp.Get("", "expenses.list", c.Expenses.List)
	exp.Post("", "expenses.create", c.Expenses.Create)
	exp.Get("/{id}", "expenses.get", c.Expenses.Get)
	exp.Put("/{id}", "expenses.update", c.Expenses.Update)
	exp.Delete("/{id}", "expenses.delete", c.Expenses.Delete)

	ord := priv.Group("/orders")
	ord.Get("", "orders.list", c.Orders.List)
	ord.Post("", "orders.create", c.Orders.Create)
	ord.Get("/stats", "orders.stats", c.Orders.Stats)
	ord.Get("/{id}", "orders.get", c.Orders.Get)
	ord.Put("/{id}", "orders.update", c.Orders.Update)
	ord.Delete("/{id}", "orders.delete", c.Orders.Delete)

	// Live order feed for the back-office dashboard.
	r.HandleFunc("/ws/orders", hub.Handler())
}
