// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

var ErrProductInvalidArgument = errors.New("product_usecase: invalid argument")

// ProductUsecase covers the catalog: public reads plus admin CRUD.
type ProductUsecase struct {
	repo  productdom.Repository
	clock Clock
}

func NewProductUsecase(repo productdom.Repository) *ProductUsecase {
	return &ProductUsecase{repo: repo, clock: systemClock{}}
}

func (uc *ProductUsecase) WithClock(clock Clock) *ProductUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// List returns the catalog, optionally filtered by category.
func (uc *ProductUsecase) List(ctx context.Context, category string) ([]*productdom.Product, error) {
	return uc.repo.List(ctx, strings.TrimSpace(strings.ToLower(category)))
}

// Get returns one product.
func (uc *ProductUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductInvalidArgument
	}
	return uc.repo.GetByID(ctx, id)
}

// CreateProductInput is the admin-side payload for a new catalog entry.
type CreateProductInput struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Category    string                 `json:"category"`
	Images      []string               `json:"images"`
	Sizes       []productdom.SizeStock `json:"sizes"`
}

// Create adds a catalog entry.
func (uc *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (*productdom.Product, error) {
	p, err := productdom.New(uuid.NewString(), in.Name, in.Description, in.Price, in.Category, in.Images, in.Sizes, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("[product_uc] product created id=%s name=%q", p.ID, p.Name)
	return p, nil
}

// Update applies a partial update to an existing product.
func (uc *ProductUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (*productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductInvalidArgument
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(patch, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a catalog entry.
func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrProductInvalidArgument
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[product_uc] product deleted id=%s", id)
	return nil
}
