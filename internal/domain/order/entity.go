// internal/domain/order/entity.go
package order

import (
	"errors"
	"math"
	"strings"
	"time"
)

// ========================================
// Status
// ========================================

// Status is the order lifecycle state. Transitions are append-only:
// pending -> processing -> shipped -> delivered, with cancelled reachable
// from pending/processing only.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var forwardNext = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is an allowed transition.
func CanTransition(from, to Status) bool {
	if !ValidStatus(from) || !ValidStatus(to) || from == to {
		return false
	}
	if to == StatusCancelled {
		return from == StatusPending || from == StatusProcessing
	}
	// forward only, one or more steps ahead
	for cur := from; ; {
		next, ok := forwardNext[cur]
		if !ok {
			return false
		}
		if next == to {
			return true
		}
		cur = next
	}
}

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// ShippingAddress is presence-validated only; no format rules beyond that.
type ShippingAddress struct {
	Street  string `json:"street" firestore:"street"`
	City    string `json:"city" firestore:"city"`
	State   string `json:"state" firestore:"state"`
	ZipCode string `json:"zipCode" firestore:"zipCode"`
	Phone   string `json:"phone" firestore:"phone"`
}

// ItemSnapshot freezes one cart line at order time. UnitPrice never changes
// after creation, whatever happens to the catalog later.
type ItemSnapshot struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Name      string  `json:"name" firestore:"name"`
	Size      float64 `json:"size" firestore:"size"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	UnitPrice float64 `json:"unitPrice" firestore:"unitPrice"`
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"userId" firestore:"userId"`

	Items           []ItemSnapshot  `json:"items" firestore:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" firestore:"shippingAddress"`
	TotalAmount     float64         `json:"totalAmount" firestore:"totalAmount"`

	Status Status `json:"status" firestore:"status"`

	// PaymentOrderID is the gateway-issued order handle bound at creation.
	PaymentOrderID string `json:"paymentOrderId" firestore:"paymentOrderId"`
	// PaymentID is recorded on successful verification.
	PaymentID string `json:"paymentId,omitempty" firestore:"paymentId"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID        = errors.New("order: invalid id")
	ErrInvalidUserID    = errors.New("order: invalid userId")
	ErrInvalidItems     = errors.New("order: invalid items")
	ErrInvalidAddress   = errors.New("order: invalid shippingAddress")
	ErrInvalidTotal     = errors.New("order: totalAmount does not match items")
	ErrInvalidStatus    = errors.New("order: invalid status")
	ErrInvalidTransition = errors.New("order: invalid status transition")
	ErrNotFound         = errors.New("order: not found")
	ErrAlreadyPaid      = errors.New("order: already paid")
)

// ========================================
// Constructor
// ========================================

// New builds a pending order from frozen item snapshots.
// totalAmount must equal sum(unitPrice*quantity), compared in cents.
func New(id, userID string, items []ItemSnapshot, addr ShippingAddress, totalAmount float64, paymentOrderID string, now time.Time) (*Order, error) {
	o := &Order{
		ID:              strings.TrimSpace(id),
		UserID:          strings.TrimSpace(userID),
		Items:           normalizeItems(items),
		ShippingAddress: normalizeAddress(addr),
		TotalAmount:     totalAmount,
		Status:          StatusPending,
		PaymentOrderID:  strings.TrimSpace(paymentOrderID),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// ItemsTotal recomputes sum(unitPrice*quantity) over the snapshots.
func (o *Order) ItemsTotal() float64 {
	var t float64
	for _, it := range o.Items {
		t += it.UnitPrice * float64(it.Quantity)
	}
	return t
}

// MarkPaid transitions pending -> processing and records the gateway
// payment id. Verification is the only caller.
func (o *Order) MarkPaid(paymentID string, now time.Time) error {
	if o == nil {
		return ErrInvalidID
	}
	if o.Status != StatusPending {
		return ErrAlreadyPaid
	}
	pid := strings.TrimSpace(paymentID)
	if pid == "" {
		return ErrInvalidID
	}
	o.Status = StatusProcessing
	o.PaymentID = pid
	o.UpdatedAt = now.UTC()
	return nil
}

// Transition applies an admin-driven status change, enforcing the machine.
func (o *Order) Transition(to Status, now time.Time) error {
	if o == nil {
		return ErrInvalidID
	}
	if !ValidStatus(to) {
		return ErrInvalidStatus
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = now.UTC()
	return nil
}

// ========================================
// Validation
// ========================================

func (o *Order) validate() error {
	if o == nil || o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if len(o.Items) < 1 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if it.ProductID == "" || it.Size <= 0 || it.Quantity < 1 || it.UnitPrice < 0 {
			return ErrInvalidItems
		}
	}
	if err := validateAddress(o.ShippingAddress); err != nil {
		return err
	}
	if Cents(o.TotalAmount) != Cents(o.ItemsTotal()) {
		return ErrInvalidTotal
	}
	if !ValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

func validateAddress(a ShippingAddress) error {
	if a.Street == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Phone == "" {
		return ErrInvalidAddress
	}
	return nil
}

// Cents converts a currency amount to integral cents for comparison; money
// equality is never done on float64 directly.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ----------------------------
// Helpers
// ----------------------------

func normalizeItems(src []ItemSnapshot) []ItemSnapshot {
	out := make([]ItemSnapshot, 0, len(src))
	for _, it := range src {
		it.ProductID = strings.TrimSpace(it.ProductID)
		it.Name = strings.TrimSpace(it.Name)
		out = append(out, it)
	}
	return out
}

func normalizeAddress(a ShippingAddress) ShippingAddress {
	return ShippingAddress{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Phone:   strings.TrimSpace(a.Phone),
	}
}
