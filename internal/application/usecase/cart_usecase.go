// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartItemNotFound    = errors.New("cart_usecase: item not found")
	ErrCartProductUnknown  = errors.New("cart_usecase: unknown product or size")
)

// CartUsecase coordinates cart operations over one cart backend.
//
// Two instances are wired in DI sharing this one type: a server-cart
// instance (Firestore repo, ownerID = uid) and a guest-cart instance
// (in-memory repo, ownerID = guest session id). Operation semantics are
// identical for both.
type CartUsecase struct {
	repo     cartdom.Repository
	products productdom.Repository
	clock    Clock
}

func NewCartUsecase(repo cartdom.Repository, products productdom.Repository) *CartUsecase {
	return &CartUsecase{repo: repo, products: products, clock: systemClock{}}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, products productdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, products: products, clock: clock}
}

// Get returns the cart for ownerID, creating an empty one in memory (not
// persisted) when absent so callers always see a cart.
func (uc *CartUsecase) Get(ctx context.Context, ownerID string) (*cartdom.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByOwnerID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.New(oid, nil, uc.clock.Now())
	}
	return c, nil
}

// AddItem validates the product/size against the catalog, captures the
// current unit price, and merges (productID, size) into the cart.
func (uc *CartUsecase) AddItem(ctx context.Context, ownerID, productID string, size float64, qty int) (*cartdom.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	pid := strings.TrimSpace(productID)
	if oid == "" || pid == "" || size <= 0 || qty < 1 {
		return nil, ErrCartInvalidArgument
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, ErrCartProductUnknown
		}
		return nil, err
	}
	if !productdom.ValidSize(size) || p.StockFor(size) == 0 {
		return nil, ErrCartProductUnknown
	}

	now := uc.clock.Now()
	c, err := uc.repo.GetByOwnerID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cartdom.New(oid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Add(pid, size, qty, p.Price, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity for (productID, size). qty < 1 fails
// validation without mutating the cart; a missing entry fails with
// ErrCartItemNotFound on every backend.
func (uc *CartUsecase) UpdateQuantity(ctx context.Context, ownerID, productID string, size float64, qty int) (*cartdom.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	pid := strings.TrimSpace(productID)
	if oid == "" || pid == "" || size <= 0 || qty < 1 {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByOwnerID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartItemNotFound
	}

	if err := c.SetQuantity(pid, size, qty, uc.clock.Now()); err != nil {
		if errors.Is(err, cartdom.ErrItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes (productID, size) from the cart. Missing entries
// report ErrCartItemNotFound (unified guest/server behavior).
func (uc *CartUsecase) RemoveItem(ctx context.Context, ownerID, productID string, size float64) (*cartdom.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	pid := strings.TrimSpace(productID)
	if oid == "" || pid == "" || size <= 0 {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByOwnerID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartItemNotFound
	}

	if err := c.Remove(pid, size, uc.clock.Now()); err != nil {
		if errors.Is(err, cartdom.ErrItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear deletes the cart document.
func (uc *CartUsecase) Clear(ctx context.Context, ownerID string) error {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DeleteByOwnerID(ctx, oid)
}

// Total computes the display total for a cart, skipping malformed stored
// lines. Skipped lines are logged, never fatal.
func (uc *CartUsecase) Total(ctx context.Context, ownerID string) (float64, error) {
	c, err := uc.Get(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	total, skipped := c.Total()
	if skipped > 0 {
		log.Printf("[cart_uc] WARN: skipped %d malformed cart line(s) ownerId=%s", skipped, ownerID)
	}
	return total, nil
}
