// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

// Errors (single source)
var (
	ErrInvalidID    = errors.New("user: invalid id")
	ErrInvalidName  = errors.New("user: invalid name")
	ErrInvalidEmail = errors.New("user: invalid email")
	ErrInvalidRole  = errors.New("user: invalid role")
	ErrNotFound     = errors.New("user: not found")
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Policy
var MaxNameLength = 100

// User is an account document. ID is the Firebase uid (docId).
type User struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New builds a validated User. Role defaults to "user" when empty.
func New(id, name, email, role string, now time.Time) (*User, error) {
	u := &User{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Role:      strings.TrimSpace(role),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) validate() error {
	if u == nil || u.ID == "" {
		return ErrInvalidID
	}
	if len([]rune(u.Name)) > MaxNameLength {
		return ErrInvalidName
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}
