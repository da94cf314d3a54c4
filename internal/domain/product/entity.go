// internal/domain/product/entity.go
package product

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidID       = errors.New("product: invalid id")
	ErrInvalidName     = errors.New("product: invalid name")
	ErrInvalidPrice    = errors.New("product: invalid price")
	ErrInvalidCategory = errors.New("product: invalid category")
	ErrInvalidSize     = errors.New("product: invalid size")
	ErrNotFound        = errors.New("product: not found")
	ErrOutOfStock      = errors.New("product: out of stock")
)

// Categories carried over from the store catalog.
const (
	CategoryCasual = "casual"
	CategoryFormal = "formal"
	CategorySports = "sports"
	CategoryBoots  = "boots"
)

var validCategories = map[string]bool{
	CategoryCasual: true,
	CategoryFormal: true,
	CategorySports: true,
	CategoryBoots:  true,
}

// ShoeSizes is the enumerated size set sold by the store (US sizes, half steps).
var ShoeSizes = []float64{
	6, 6.5, 7, 7.5, 8, 8.5, 9, 9.5, 10, 10.5, 11, 11.5, 12, 12.5, 13,
}

// ValidSize reports whether s is a sellable shoe size.
func ValidSize(s float64) bool {
	for _, v := range ShoeSizes {
		if v == s {
			return true
		}
	}
	return false
}

// SizeStock is per-size inventory.
type SizeStock struct {
	Size  float64 `json:"size" firestore:"size"`
	Stock int     `json:"stock" firestore:"stock"`
}

// Product is a catalog entry. It is read-only from the cart/order flow;
// stock is decremented only by payment finalization.
type Product struct {
	ID          string      `json:"id" firestore:"id"`
	Name        string      `json:"name" firestore:"name"`
	Description string      `json:"description" firestore:"description"`
	Price       float64     `json:"price" firestore:"price"`
	Category    string      `json:"category" firestore:"category"`
	Images      []string    `json:"images" firestore:"images"`
	Sizes       []SizeStock `json:"sizes" firestore:"sizes"`
	CreatedAt   time.Time   `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" firestore:"updatedAt"`
}

// New builds a validated Product.
func New(id, name, description string, price float64, category string, images []string, sizes []SizeStock, now time.Time) (*Product, error) {
	p := &Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Category:    strings.ToLower(strings.TrimSpace(category)),
		Images:      cloneStrings(images),
		Sizes:       normalizeSizes(sizes),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) validate() error {
	if p == nil || p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if !validCategories[p.Category] {
		return ErrInvalidCategory
	}
	for _, s := range p.Sizes {
		if !ValidSize(s.Size) || s.Stock < 0 {
			return ErrInvalidSize
		}
	}
	return nil
}

// StockFor returns the stock for a size, 0 if the size is not listed.
func (p *Product) StockFor(size float64) int {
	if p == nil {
		return 0
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock
		}
	}
	return 0
}

// Patch represents partial updates to Product fields. A nil field means
// "no change".
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Images      *[]string
	Sizes       *[]SizeStock
}

// Apply mutates p with the non-nil fields of patch and revalidates.
func (p *Product) Apply(patch Patch, now time.Time) error {
	if p == nil {
		return ErrInvalidID
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = strings.ToLower(strings.TrimSpace(*patch.Category))
	}
	if patch.Images != nil {
		p.Images = cloneStrings(*patch.Images)
	}
	if patch.Sizes != nil {
		p.Sizes = normalizeSizes(*patch.Sizes)
	}
	p.UpdatedAt = now.UTC()
	return p.validate()
}

// ----------------------------
// Helpers
// ----------------------------

func cloneStrings(src []string) []string {
	out := make([]string, 0, len(src))
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// normalizeSizes merges duplicate size rows (stock summed) and keeps a
// stable ascending order.
func normalizeSizes(src []SizeStock) []SizeStock {
	m := map[float64]int{}
	for _, s := range src {
		if s.Stock < 0 {
			continue
		}
		m[s.Size] += s.Stock
	}

	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]SizeStock, 0, len(keys))
	for _, k := range keys {
		out = append(out, SizeStock{Size: k, Stock: m[k]})
	}
	return out
}
