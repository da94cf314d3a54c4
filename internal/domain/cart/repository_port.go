// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Two implementations exist behind this one interface:
//   - Firestore-backed (authenticated users; collection: carts, docId = uid)
//   - in-memory guest store (anonymous sessions, docId = guest session id)
//
// Not-found policy: return (nil, nil) and let the application layer treat
// nil as "no cart yet".
type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	DeleteByOwnerID(ctx context.Context, ownerID string) error
}
