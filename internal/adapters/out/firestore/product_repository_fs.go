// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository using Firestore.
//
// Collection design:
// - collection: products
// - docId: product id
// - sizes is an array of {size, stock}; stock mutations happen only inside
//   the payment finalization transaction (see order_repository_fs.go).
type ProductRepositoryFS struct {
	Client *firestore.Client
}

var _ productdom.Repository = (*ProductRepositoryFS)(nil)

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

type sizeStockDoc struct {
	Size  float64 `firestore:"size"`
	Stock int     `firestore:"stock"`
}

type productDoc struct {
	Name        string         `firestore:"name"`
	Description string         `firestore:"description"`
	Price       float64        `firestore:"price"`
	Category    string         `firestore:"category"`
	Images      []string       `firestore:"images"`
	Sizes       []sizeStockDoc `firestore:"sizes"`
	CreatedAt   time.Time      `firestore:"createdAt"`
	UpdatedAt   time.Time      `firestore:"updatedAt"`
}

func productDocFromDomain(p *productdom.Product) productDoc {
	sizes := make([]sizeStockDoc, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, sizeStockDoc{Size: s.Size, Stock: s.Stock})
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Images:      p.Images,
		Sizes:       sizes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) toDomain(id string) *productdom.Product {
	sizes := make([]productdom.SizeStock, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		if s.Stock < 0 {
			s.Stock = 0
		}
		sizes = append(sizes, productdom.SizeStock{Size: s.Size, Stock: s.Stock})
	}
	return &productdom.Product{
		ID:          id,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Price:       d.Price,
		Category:    strings.ToLower(strings.TrimSpace(d.Category)),
		Images:      d.Images,
		Sizes:       sizes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, productdom.ErrNotFound
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, productdom.ErrNotFound
		}
		return nil, err
	}

	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(pid), nil
}

// List returns the catalog, optionally filtered by category.
func (r *ProductRepositoryFS) List(ctx context.Context, category string) ([]*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if c := strings.ToLower(strings.TrimSpace(category)); c != "" {
		q = q.Where("category", "==", c)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []*productdom.Product
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d productDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (r *ProductRepositoryFS) Save(ctx context.Context, p *productdom.Product) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return errors.New("product_repository_fs: Save requires product.ID as docId")
	}

	_, err := r.col().Doc(p.ID).Set(ctx, productDocFromDomain(p))
	return err
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.ErrNotFound
	}

	// Delete on a missing doc succeeds in Firestore; check first so the
	// caller can distinguish.
	if _, err := r.col().Doc(pid).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.ErrNotFound
		}
		return err
	}

	_, err := r.col().Doc(pid).Delete(ctx)
	return err
}
