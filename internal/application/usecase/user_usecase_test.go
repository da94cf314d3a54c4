// internal/application/usecase/user_usecase_test.go
package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

func TestEnsureUser_CreatesOnFirstSignIn(t *testing.T) {
	t.Parallel()
	repo := newMemUserRepo()
	uc := usecase.NewUserUsecase(repo).WithClock(fixedClock{testNow})

	u, err := uc.EnsureUser(context.Background(), "u1", "Asha", "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, userdom.RoleUser, u.Role)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Contains(t, repo.users, "u1")
}

func TestEnsureUser_PreservesRoleOnRepeatSignIn(t *testing.T) {
	t.Parallel()
	admin, err := userdom.New("u1", "Asha", "asha@example.com", userdom.RoleAdmin, testNow)
	require.NoError(t, err)
	repo := newMemUserRepo(admin)
	uc := usecase.NewUserUsecase(repo).WithClock(fixedClock{testNow})

	u, err := uc.EnsureUser(context.Background(), "u1", "Asha R", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, userdom.RoleAdmin, u.Role, "sign-in never demotes an admin")
	assert.Equal(t, "Asha R", u.Name)
}

func TestEnsureUser_RequiresUID(t *testing.T) {
	t.Parallel()
	uc := usecase.NewUserUsecase(newMemUserRepo())

	_, err := uc.EnsureUser(context.Background(), " ", "x", "x@example.com")
	assert.ErrorIs(t, err, usecase.ErrUserInvalidArgument)
}
