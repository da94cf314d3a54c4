// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
)

// CartHandler serves /cart (GET) and /cart/{add,update,remove,clear,merge}.
//
// Guests and signed-in users share the same routes: SessionAuth resolves
// the caller, and the handler picks the matching backend. Every mutation
// returns the resulting cart so the client never needs a follow-up GET.
type CartHandler struct {
	Server *usecase.CartUsecase // Firestore-backed, ownerID = uid
	Guest  *usecase.CartUsecase // in-memory, ownerID = guest session id
	Merge  *usecase.CartMergeUsecase
}

func NewCartHandler(server, guest *usecase.CartUsecase, merge *usecase.CartMergeUsecase) http.Handler {
	return &CartHandler{Server: server, Guest: guest, Merge: merge}
}

// resolve picks the usecase and owner id for the calling session.
func (h *CartHandler) resolve(r *http.Request) (*usecase.CartUsecase, string, bool) {
	if uid, ok := middleware.CurrentUID(r); ok {
		return h.Server, uid, true
	}
	if gid, ok := middleware.GuestID(r); ok {
		return h.Guest, gid, true
	}
	return nil, "", false
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Server == nil || h.Guest == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/cart" && r.Method == http.MethodGet:
		h.get(w, r)
	case path == "/cart/add" && r.Method == http.MethodPost:
		h.add(w, r)
	case path == "/cart/update" && r.Method == http.MethodPost:
		h.update(w, r)
	case path == "/cart/remove" && r.Method == http.MethodPost:
		h.remove(w, r)
	case path == "/cart/clear" && r.Method == http.MethodPost:
		h.clear(w, r)
	case path == "/cart/merge" && r.Method == http.MethodPost:
		h.merge(w, r)
	case strings.HasPrefix(path, "/cart"):
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	uc, owner, ok := h.resolve(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session")
		return
	}

	c, err := uc.Get(r.Context(), owner)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

type cartLineRequest struct {
	ProductID string  `json:"productId"`
	Size      float64 `json:"size"`
	Quantity  int     `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	uc, owner, ok := h.resolve(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session")
		return
	}

	var req cartLineRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	c, err := uc.AddItem(r.Context(), owner, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request) {
	uc, owner, ok := h.resolve(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session")
		return
	}

	var req cartLineRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	c, err := uc.UpdateQuantity(r.Context(), owner, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	uc, owner, ok := h.resolve(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session")
		return
	}

	var req struct {
		ProductID string  `json:"productId"`
		Size      float64 `json:"size"`
	}
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	c, err := uc.RemoveItem(r.Context(), owner, req.ProductID, req.Size)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	uc, owner, ok := h.resolve(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session")
		return
	}

	if err := uc.Clear(r.Context(), owner); err != nil {
		writeDomainErr(w, err)
		return
	}

	c, err := uc.Get(r.Context(), owner)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": c})
}

// merge moves the guest cart into the signed-in user's server cart. Only
// an authenticated caller can merge.
func (h *CartHandler) merge(w http.ResponseWriter, r *http.Request) {
	if h.Merge == nil {
		writeErr(w, http.StatusInternalServerError, "merge is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "merge requires a signed-in user")
		return
	}

	var req struct {
		GuestID string        `json:"guestId"`
		Items   []cartdom.Item `json:"items"`
	}
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	if strings.TrimSpace(req.GuestID) == "" {
		// fall back to the session header the guest calls were using
		req.GuestID = r.Header.Get(middleware.GuestIDHeader)
	}

	res, err := h.Merge.Merge(r.Context(), uid, req.GuestID, req.Items)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
