// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

var ErrUserInvalidArgument = errors.New("user_usecase: invalid argument")

// UserUsecase covers sign-in upsert and profile lookup.
type UserUsecase struct {
	repo  userdom.Repository
	clock Clock
}

func NewUserUsecase(repo userdom.Repository) *UserUsecase {
	return &UserUsecase{repo: repo, clock: systemClock{}}
}

func (uc *UserUsecase) WithClock(clock Clock) *UserUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// EnsureUser creates the profile document on first sign-in and refreshes
// name/email on subsequent ones. The role is never touched here: an admin
// stays an admin across sign-ins.
func (uc *UserUsecase) EnsureUser(ctx context.Context, uid, name, email string) (*userdom.User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrUserInvalidArgument
	}

	now := uc.clock.Now()

	existing, err := uc.repo.GetByID(ctx, uid)
	if err != nil && !errors.Is(err, userdom.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		u, err := userdom.New(uid, name, email, userdom.RoleUser, now)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.Save(ctx, u); err != nil {
			return nil, err
		}
		log.Printf("[user_uc] user created uid=%s", uid)
		return u, nil
	}

	changed := false
	if n := strings.TrimSpace(name); n != "" && n != existing.Name {
		existing.Name = n
		changed = true
	}
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" && e != existing.Email {
		existing.Email = e
		changed = true
	}
	if changed {
		existing.UpdatedAt = now
		if err := uc.repo.Save(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// GetByID returns the profile for uid.
func (uc *UserUsecase) GetByID(ctx context.Context, uid string) (*userdom.User, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrUserInvalidArgument
	}
	return uc.repo.GetByID(ctx, uid)
}
