// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository for authenticated carts.
//
// Collection design:
// - collection: carts
// - docId: Firebase uid (docId is the source of truth)
// - fields: items(array), createdAt, updatedAt
//
// Guest carts never reach this collection; they live in the in-memory
// store (see adapters/out/memory).
type CartRepositoryFS struct {
	Client *firestore.Client
}

var _ cartdom.Repository = (*CartRepositoryFS)(nil)

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

type cartItemDoc struct {
	ProductID string  `firestore:"productId"`
	Size      float64 `firestore:"size"`
	Quantity  int     `firestore:"quantity"`
	Price     float64 `firestore:"price"`
}

type cartDoc struct {
	Items     []cartItemDoc `firestore:"items"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		// malformed lines are not written back
		if !it.WellFormed() {
			continue
		}
		items = append(items, cartItemDoc{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// cartDocFromSnapshot parses document data by hand so a line written in an
// older shape degrades to a skipped line instead of a decode failure for
// the whole cart.
func cartDocFromSnapshot(snap *firestore.DocumentSnapshot) cartDoc {
	return cartDocFromRaw(snap.Data())
}

func cartDocFromRaw(raw map[string]any) cartDoc {
	out := cartDoc{}
	if raw == nil {
		return out
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		out.CreatedAt = t
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		out.UpdatedAt = t
	}

	itemsAny, ok := raw["items"].([]any)
	if !ok {
		return out
	}
	for _, v := range itemsAny {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		it := cartItemDoc{
			ProductID: strings.TrimSpace(asString(m["productId"])),
			Size:      asFloat(m["size"]),
			Quantity:  asInt(m["quantity"]),
			Price:     asFloat(m["price"]),
		}
		// legacy/malformed lines are dropped here so a loaded cart stays
		// mutable; the next Upsert writes the cleaned doc back
		if it.ProductID == "" || it.Size <= 0 || it.Quantity < 1 {
			continue
		}
		out.Items = append(out.Items, it)
	}
	return out
}

func (d cartDoc) toDomain(ownerID string) *cartdom.Cart {
	items := make([]cartdom.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, cartdom.Item{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return &cartdom.Cart{
		OwnerID:   ownerID,
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// GetByOwnerID returns (nil, nil) when the cart does not exist.
func (r *CartRepositoryFS) GetByOwnerID(ctx context.Context, ownerID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, errors.New("cart_repository_fs: ownerID is empty")
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return cartDocFromSnapshot(snap).toDomain(oid), nil
}

// Upsert overwrites the full doc by docId=cart.OwnerID.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil || strings.TrimSpace(c.OwnerID) == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.OwnerID as docId")
	}

	_, err := r.col().Doc(c.OwnerID).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return errors.New("cart_repository_fs: ownerID is empty")
	}

	_, err := r.col().Doc(oid).Delete(ctx)
	return err
}
