// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart  = errors.New("cart: invalid")
	ErrItemNotFound = errors.New("cart: item not found")
)

// Item is one line item in a cart.
// Uniqueness is defined by (productId, size); adding the same pair again
// accumulates quantity.
type Item struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Size      float64 `json:"size" firestore:"size"`
	Quantity  int     `json:"quantity" firestore:"quantity"`

	// Price is the unit price observed when the item entered the cart.
	// It is display/total material only; orders re-read catalog prices.
	Price float64 `json:"price" firestore:"price"`
}

// WellFormed reports whether the item could ever be added to a cart.
// Used by the merge flow to skip malformed guest entries.
func (it Item) WellFormed() bool {
	return strings.TrimSpace(it.ProductID) != "" && it.Size > 0 && it.Quantity >= 1
}

// Cart is one session's cart document.
//   - docId = owner id (user uid for server carts, guest session id for
//     guest carts)
//   - a user has at most one cart
type Cart struct {
	OwnerID   string    `json:"ownerId" firestore:"ownerId"`
	Items     []Item    `json:"items" firestore:"items"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New creates a cart for ownerID. items can be nil.
func New(ownerID string, items []Item, now time.Time) (*Cart, error) {
	c := &Cart{
		OwnerID:   strings.TrimSpace(ownerID),
		Items:     normalizeAndMerge(items),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increases quantity for (productID, size), appending a new line item
// when the pair is not present yet. qty must be >= 1.
func (c *Cart) Add(productID string, size float64, qty int, unitPrice float64, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" || size <= 0 || qty < 1 {
		return ErrInvalidCart
	}

	if idx := c.find(pid, size); idx >= 0 {
		c.Items[idx].Quantity += qty
		c.Items[idx].Price = unitPrice
	} else {
		c.Items = append(c.Items, Item{ProductID: pid, Size: size, Quantity: qty, Price: unitPrice})
	}

	c.touch(now)
	return c.validate()
}

// SetQuantity sets the quantity for (productID, size). qty must be >= 1;
// removing is a separate operation. Missing entries fail with
// ErrItemNotFound for every cart backend (guest and server alike).
func (c *Cart) SetQuantity(productID string, size float64, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" || size <= 0 || qty < 1 {
		return ErrInvalidCart
	}

	idx := c.find(pid, size)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Items[idx].Quantity = qty

	c.touch(now)
	return c.validate()
}

// Remove deletes (productID, size) from the cart. Missing entries fail with
// ErrItemNotFound.
func (c *Cart) Remove(productID string, size float64, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	pid := strings.TrimSpace(productID)
	if pid == "" || size <= 0 {
		return ErrInvalidCart
	}

	idx := c.find(pid, size)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	c.touch(now)
	return c.validate()
}

// Clear empties the cart in place.
func (c *Cart) Clear(now time.Time) {
	if c == nil {
		return
	}
	c.Items = []Item{}
	c.touch(now)
}

// Total sums price*quantity. Malformed entries are skipped rather than
// failing the whole computation; the caller may log them via the skipped
// return.
func (c *Cart) Total() (total float64, skipped int) {
	if c == nil {
		return 0, 0
	}
	for _, it := range c.Items {
		if !it.WellFormed() || it.Price < 0 {
			skipped++
			continue
		}
		total += it.Price * float64(it.Quantity)
	}
	return total, skipped
}

func (c *Cart) find(pid string, size float64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == pid && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}

func (c *Cart) validate() error {
	if c == nil || strings.TrimSpace(c.OwnerID) == "" {
		return ErrInvalidCart
	}
	for _, it := range c.Items {
		if !it.WellFormed() {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

type itemKey struct {
	pid  string
	size float64
}

// normalizeAndMerge drops malformed entries, merges duplicate
// (productId, size) pairs and keeps a stable order.
func normalizeAndMerge(src []Item) []Item {
	m := map[itemKey]Item{}
	for _, it := range src {
		it.ProductID = strings.TrimSpace(it.ProductID)
		if !it.WellFormed() {
			continue
		}
		k := itemKey{pid: it.ProductID, size: it.Size}
		if exist, ok := m[k]; ok {
			exist.Quantity += it.Quantity
			m[k] = exist
		} else {
			m[k] = it
		}
	}

	keys := make([]itemKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pid != keys[j].pid {
			return keys[i].pid < keys[j].pid
		}
		return keys[i].size < keys[j].size
	})

	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
