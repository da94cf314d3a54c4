// internal/adapters/in/http/middleware/admin.go
package middleware

import (
	"log"
	"net/http"

	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

// AdminOnly gates the console routes. It runs after UserAuth, looks up the
// caller's profile and requires the admin role. 403 for non-admins so the
// client can distinguish "sign in" from "not allowed".
type AdminOnly struct {
	Users userdom.Repository
}

func (m *AdminOnly) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Users == nil {
			http.Error(w, "admin middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		uid, ok := CurrentUID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := m.Users.GetByID(r.Context(), uid)
		if err != nil {
			log.Printf("[admin_mw] profile lookup failed uid=%s err=%v", maskUID(uid), err)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if !u.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// maskUID keeps raw uids out of logs.
func maskUID(uid string) string {
	if len(uid) <= 6 {
		return "***"
	}
	return "***" + uid[len(uid)-6:]
}
