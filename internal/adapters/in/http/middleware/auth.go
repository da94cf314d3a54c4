// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so DI can pass *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// TokenVerifier is the slice of the Firebase client the middleware needs;
// tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// context keys use a private type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeyUID     = ctxKey{name: "uid"}
	ctxKeyEmail   = ctxKey{name: "email"}
	ctxKeyName    = ctxKey{name: "name"}
	ctxKeyGuestID = ctxKey{name: "guestId"}
)

// GuestIDHeader carries the client-generated guest session id for
// unauthenticated cart calls.
const GuestIDHeader = "X-Guest-Id"

// UserAuth verifies "Authorization: Bearer <ID_TOKEN>" and stores
// uid/email/name in the request context. Requests without a valid token
// are rejected.
type UserAuth struct {
	Verifier TokenVerifier
}

func (m *UserAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		idToken, ok := bearerToken(r)
		if !ok {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), uid, token.Claims)))
	})
}

// SessionAuth resolves the calling session for endpoints that serve both
// guests and signed-in users (the cart routes). A valid bearer token wins;
// otherwise the guest session id header identifies the caller. Requests
// with neither are rejected, since a cart needs an owner.
type SessionAuth struct {
	Verifier TokenVerifier
}

func (m *SessionAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if idToken, ok := bearerToken(r); ok {
			if m == nil || m.Verifier == nil {
				http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
				return
			}
			token, err := m.Verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				// a presented-but-bad token is rejected, not downgraded
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			uid := strings.TrimSpace(token.UID)
			if uid == "" {
				http.Error(w, "invalid uid in token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithClaims(ctx, uid, token.Claims)))
			return
		}

		gid := strings.TrimSpace(r.Header.Get(GuestIDHeader))
		if gid == "" {
			http.Error(w, "unauthorized: no session", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKeyGuestID, gid)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return t, t != ""
}

func contextWithClaims(ctx context.Context, uid string, claims map[string]interface{}) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, uid)
	if e, ok := claims["email"].(string); ok && strings.TrimSpace(e) != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
	}
	if n, ok := claims["name"].(string); ok && strings.TrimSpace(n) != "" {
		ctx = context.WithValue(ctx, ctxKeyName, strings.TrimSpace(n))
	}
	return ctx
}

// CurrentUID returns the authenticated Firebase uid.
func CurrentUID(r *http.Request) (string, bool) {
	u, ok := r.Context().Value(ctxKeyUID).(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentClaims returns uid plus the optional email/name claims.
func CurrentClaims(r *http.Request) (uid, email, name string, ok bool) {
	uid, ok = CurrentUID(r)
	if !ok {
		return "", "", "", false
	}
	if e, ok2 := r.Context().Value(ctxKeyEmail).(string); ok2 {
		email = e
	}
	if n, ok2 := r.Context().Value(ctxKeyName).(string); ok2 {
		name = n
	}
	return uid, email, name, true
}

// GuestID returns the guest session id when the caller is unauthenticated.
func GuestID(r *http.Request) (string, bool) {
	g, ok := r.Context().Value(ctxKeyGuestID).(string)
	if !ok || strings.TrimSpace(g) == "" {
		return "", false
	}
	return strings.TrimSpace(g), true
}
