// internal/adapters/in/http/handler/auth_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
)

// AuthHandler serves:
// - POST /auth/sign-in  (profile upsert from the verified token claims)
// - GET  /auth/profile
// Both run behind UserAuth; the token itself comes from Firebase on the
// client, so sign-in here is only the server-side profile sync.
type AuthHandler struct {
	UC *usecase.UserUsecase
}

func NewAuthHandler(uc *usecase.UserUsecase) http.Handler {
	return &AuthHandler{UC: uc}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.UC == nil {
		writeErr(w, http.StatusInternalServerError, "auth handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/auth/sign-in" && r.Method == http.MethodPost:
		h.signIn(w, r)
	case path == "/auth/profile" && r.Method == http.MethodGet:
		h.profile(w, r)
	case strings.HasPrefix(path, "/auth"):
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	uid, email, name, ok := middleware.CurrentClaims(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// optional body may carry a display name when the token has none
	var req struct {
		Name string `json:"name"`
	}
	_ = readJSON(r, &req)
	if name == "" {
		name = req.Name
	}

	u, err := h.UC.EnsureUser(r.Context(), uid, name, email)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.UC.GetByID(r.Context(), uid)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}
