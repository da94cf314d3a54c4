// internal/domain/user/repository_port.go
package user

import "context"

// Repository is a persistence port for User.
//
// Storage layout (Firestore):
// - collection: users
// - docId: Firebase uid
// Not-found policy: return ErrNotFound.
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, u *User) error
	Count(ctx context.Context) (int, error)
}
