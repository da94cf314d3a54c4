// internal/adapters/in/http/router.go
package http

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set, already wrapped with the middleware
// each route group needs (see platform/di).
type Deps struct {
	Product http.Handler // GET /products, GET /products/{id}
	Cart    http.Handler // /cart + subroutes, SessionAuth
	Order   http.Handler // /orders + subroutes, UserAuth
	Auth    http.Handler // /auth/sign-in, /auth/profile, UserAuth
	Admin   http.Handler // /admin/*, UserAuth + AdminOnly
}

// handleSafe registers pattern with h. A nil handler logs and falls back
// to NotFoundHandler so a partially-wired deploy still boots.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers all storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	handleSafe(mux, "/products", deps.Product, "Product")
	handleSafe(mux, "/products/", deps.Product, "Product")

	handleSafe(mux, "/cart", deps.Cart, "Cart")
	handleSafe(mux, "/cart/", deps.Cart, "Cart")

	handleSafe(mux, "/orders", deps.Order, "Order")
	handleSafe(mux, "/orders/", deps.Order, "Order")

	handleSafe(mux, "/auth/", deps.Auth, "Auth")

	handleSafe(mux, "/admin/", deps.Admin, "Admin")
}
