// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: Firebase uid (docId is the source of truth)
type UserRepositoryFS struct {
	Client *firestore.Client
}

var _ userdom.Repository = (*UserRepositoryFS)(nil)

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

type userDoc struct {
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func userDocFromDomain(u *userdom.User) userDoc {
	return userDoc{
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toDomain(id string) *userdom.User {
	role := strings.TrimSpace(d.Role)
	if role == "" {
		role = userdom.RoleUser
	}
	return &userdom.User{
		ID:        id,
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.TrimSpace(d.Email),
		Role:      role,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(id)
	if uid == "" {
		return nil, userdom.ErrNotFound
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, userdom.ErrNotFound
		}
		return nil, err
	}

	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	// docId is the source of truth for the id
	return d.toDomain(uid), nil
}

func (r *UserRepositoryFS) Save(ctx context.Context, u *userdom.User) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	if u == nil || strings.TrimSpace(u.ID) == "" {
		return errors.New("user_repository_fs: Save requires user.ID as docId")
	}

	_, err := r.col().Doc(u.ID).Set(ctx, userDocFromDomain(u))
	return err
}

// Count backs the dashboard's totalUsers figure.
func (r *UserRepositoryFS) Count(ctx context.Context) (int, error) {
	if r == nil || r.Client == nil {
		return 0, errors.New("user_repository_fs: firestore client is nil")
	}

	docs, err := r.col().Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
