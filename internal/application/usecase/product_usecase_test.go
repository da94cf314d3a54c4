// internal/application/usecase/product_usecase_test.go
package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

func TestProductUsecase_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo()
	uc := usecase.NewProductUsecase(repo).WithClock(fixedClock{testNow})

	p, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:        "Trail Runner",
		Description: "Lightweight trail shoe",
		Price:       129.99,
		Category:    "Sports",
		Sizes:       []productdom.SizeStock{{Size: 9, Stock: 4}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "sports", p.Category)
	assert.Equal(t, testNow, p.CreatedAt)

	got, err := uc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runner", got.Name)
}

func TestProductUsecase_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	uc := usecase.NewProductUsecase(newMemProductRepo()).WithClock(fixedClock{})

	_, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:     "Bad price",
		Price:    -1,
		Category: "casual",
	})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)

	_, err = uc.Create(context.Background(), usecase.CreateProductInput{
		Name:     "Bad category",
		Price:    10,
		Category: "gardening",
	})
	assert.ErrorIs(t, err, productdom.ErrInvalidCategory)
}

func TestProductUsecase_ListFiltersByCategory(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo(
		mustProduct("p1", "Court Classic", 80),
		mustProduct("p2", "Street Low", 95),
	)
	uc := usecase.NewProductUsecase(repo)

	all, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// category filter is case-insensitive
	sports, err := uc.List(context.Background(), "SPORTS")
	require.NoError(t, err)
	assert.Len(t, sports, 2)

	none, err := uc.List(context.Background(), "formal")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductUsecase_Update(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo(mustProduct("p1", "Court Classic", 80))
	uc := usecase.NewProductUsecase(repo).WithClock(fixedClock{})

	newPrice := 72.50
	p, err := uc.Update(context.Background(), "p1", productdom.Patch{Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 72.50, p.Price, 1e-9)
	assert.Equal(t, "Court Classic", p.Name)

	_, err = uc.Update(context.Background(), "missing", productdom.Patch{Price: &newPrice})
	assert.ErrorIs(t, err, productdom.ErrNotFound)

	bad := -5.0
	_, err = uc.Update(context.Background(), "p1", productdom.Patch{Price: &bad})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)
}

func TestProductUsecase_Delete(t *testing.T) {
	t.Parallel()

	repo := newMemProductRepo(mustProduct("p1", "Court Classic", 80))
	uc := usecase.NewProductUsecase(repo)

	require.NoError(t, uc.Delete(context.Background(), "p1"))

	_, err := uc.Get(context.Background(), "p1")
	assert.ErrorIs(t, err, productdom.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), "  "), usecase.ErrProductInvalidArgument)
}
