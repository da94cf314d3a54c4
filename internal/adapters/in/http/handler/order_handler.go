// internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
)

// OrderHandler serves:
// - POST /orders
// - POST /orders/{id}/verify
// - GET  /orders/my-orders
// All routes run behind UserAuth.
type OrderHandler struct {
	UC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{UC: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.UC == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/orders" && r.Method == http.MethodPost:
		h.create(w, r)
	case path == "/orders/my-orders" && r.Method == http.MethodGet:
		h.myOrders(w, r)
	case strings.HasSuffix(path, "/verify") && r.Method == http.MethodPost:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/orders/"), "/verify")
		h.verify(w, r, strings.Trim(id, "/"))
	case strings.HasPrefix(path, "/orders"):
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req usecase.CreateOrderInput
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	res, err := h.UC.Create(r.Context(), uid, req)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *OrderHandler) verify(w http.ResponseWriter, r *http.Request, orderID string) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if strings.TrimSpace(orderID) == "" {
		badRequest(w, "order id is required")
		return
	}

	var req usecase.VerifyPaymentInput
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	o, err := h.UC.Verify(r.Context(), uid, orderID, req)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o, "verified": true})
}

func (h *OrderHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.UC.MyOrders(r.Context(), uid)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}
