// internal/domain/order/repository_port.go
package order

import "context"

// StockDecrement is one per-(product,size) decrement applied when a payment
// is finalized.
type StockDecrement struct {
	ProductID string
	Size      float64
	Quantity  int
}

// Repository is a persistence port for Order.
//
// Storage layout (Firestore):
// - collection: orders
// - docId: order id
// Not-found policy: return ErrNotFound.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context) ([]*Order, error)
	Save(ctx context.Context, o *Order) error

	// FinalizePayment commits the verification outcome atomically:
	// order pending -> processing (+paymentId), per-size stock decrements,
	// and deletion of the owner's server cart. A stock shortfall aborts the
	// whole commit with product.ErrOutOfStock.
	FinalizePayment(ctx context.Context, orderID, paymentID string, decs []StockDecrement) error
}
