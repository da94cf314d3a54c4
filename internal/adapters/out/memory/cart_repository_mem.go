// internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
)

// DefaultGuestTTL bounds how long an abandoned guest cart is kept.
const DefaultGuestTTL = 7 * 24 * time.Hour

// CartRepositoryMem implements cart.Repository for guest sessions.
//
// Guest carts are ephemeral: they live only until the guest signs in
// (merge clears them) or the TTL expires, so they never touch Firestore.
// Keyed by the client-generated guest session id.
type CartRepositoryMem struct {
	mu    sync.RWMutex
	carts map[string]memEntry
	ttl   time.Duration
}

type memEntry struct {
	cart      *cartdom.Cart
	expiresAt time.Time
}

var _ cartdom.Repository = (*CartRepositoryMem)(nil)

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{
		carts: map[string]memEntry{},
		ttl:   DefaultGuestTTL,
	}
}

// WithTTL overrides the guest cart lifetime (tests use short values).
func (r *CartRepositoryMem) WithTTL(ttl time.Duration) *CartRepositoryMem {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

// GetByOwnerID returns (nil, nil) when absent or expired.
func (r *CartRepositoryMem) GetByOwnerID(ctx context.Context, ownerID string) (*cartdom.Cart, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, errors.New("cart_repository_mem: ownerID is empty")
	}

	r.mu.RLock()
	e, ok := r.carts[oid]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		r.mu.Lock()
		delete(r.carts, oid)
		r.mu.Unlock()
		return nil, nil
	}
	return cloneCart(e.cart), nil
}

func (r *CartRepositoryMem) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil || strings.TrimSpace(c.OwnerID) == "" {
		return errors.New("cart_repository_mem: Upsert requires cart.OwnerID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.OwnerID] = memEntry{
		cart:      cloneCart(c),
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *CartRepositoryMem) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return errors.New("cart_repository_mem: ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, oid)
	return nil
}

// Sweep drops expired guest carts. Called periodically from main.
func (r *CartRepositoryMem) Sweep() int {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.carts {
		if now.After(e.expiresAt) {
			delete(r.carts, id)
			n++
		}
	}
	return n
}

// cloneCart keeps callers from mutating the stored copy in place.
func cloneCart(c *cartdom.Cart) *cartdom.Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = append([]cartdom.Item(nil), c.Items...)
	return &out
}
