// internal/adapters/in/http/handler/product_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
)

// ProductHandler serves the public catalog:
// - GET /products            (?category=sports)
// - GET /products/{id}
// No auth: browsing needs no session.
type ProductHandler struct {
	UC *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &ProductHandler{UC: uc}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.UC == nil {
		writeErr(w, http.StatusInternalServerError, "product handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if path == "/products" {
		products, err := h.UC.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"products": emptyIfNil(products)})
		return
	}

	id := strings.TrimPrefix(path, "/products/")
	if id == "" || strings.Contains(id, "/") {
		notFound(w)
		return
	}

	p, err := h.UC.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
