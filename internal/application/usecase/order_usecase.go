// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

var (
	ErrOrderInvalidArgument    = errors.New("order_usecase: invalid argument")
	ErrOrderEmptyCart          = errors.New("order_usecase: cart is empty")
	ErrOrderTotalMismatch      = errors.New("order_usecase: totalAmount does not match items")
	ErrOrderStockShortfall     = errors.New("order_usecase: insufficient stock")
	ErrOrderForbidden          = errors.New("order_usecase: not the order owner")
	ErrInvalidPaymentResponse  = errors.New("order_usecase: invalid payment response")
	ErrPaymentOrderMismatch    = errors.New("order_usecase: payment order does not match")
	ErrPaymentSignatureInvalid = errors.New("order_usecase: payment signature mismatch")
	ErrGatewayUnavailable      = errors.New("order_usecase: payment gateway unavailable")
)

// PaymentGateway is the outbound port to the payment provider.
type PaymentGateway interface {
	// CreateOrder registers amountCents with the gateway and returns the
	// gateway order handle the client binds its payment attempt to.
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error)
	// VerifySignature recomputes the callback signature server-side; this
	// is the sole safeguard against a forged success callback.
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// EmailSender sends a plain-text mail (best-effort; see SendGrid adapter).
type EmailSender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderUsecase orchestrates order creation and payment verification.
type OrderUsecase struct {
	orders   orderdom.Repository
	products productdom.Repository
	carts    cartdom.Repository // server carts; cleared on verified payment
	users    userdom.Repository
	gateway  PaymentGateway
	clock    Clock

	// optional
	mailer   EmailSender
	mailFrom string
}

func NewOrderUsecase(
	orders orderdom.Repository,
	products productdom.Repository,
	carts cartdom.Repository,
	users userdom.Repository,
	gateway PaymentGateway,
) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		products: products,
		carts:    carts,
		users:    users,
		gateway:  gateway,
		clock:    systemClock{},
	}
}

// WithClock is useful for tests.
func (uc *OrderUsecase) WithClock(clock Clock) *OrderUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// WithMailer enables the best-effort confirmation mail on verified payment.
func (uc *OrderUsecase) WithMailer(mailer EmailSender, from string) *OrderUsecase {
	uc.mailer = mailer
	uc.mailFrom = strings.TrimSpace(from)
	return uc
}

// ============================================================
// Create
// ============================================================

// OrderItemInput is one submitted cart line.
type OrderItemInput struct {
	ProductID string  `json:"product"`
	Size      float64 `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderInput is the app-level input for order creation.
type CreateOrderInput struct {
	Items           []OrderItemInput         `json:"items"`
	ShippingAddress orderdom.ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64                  `json:"totalAmount"`
}

// CreateOrderResult carries the two ids the client needs to open the
// payment widget.
type CreateOrderResult struct {
	OrderID         string `json:"orderId"`
	RazorpayOrderID string `json:"razorpayOrderId"`
}

// Create converts the submitted cart lines into an immutable pending order
// bound to a fresh gateway order handle.
//
// Unit prices come from the catalog at creation time, not from the client;
// a submitted totalAmount that disagrees with the recomputed sum is
// rejected rather than silently accepted.
func (uc *OrderUsecase) Create(ctx context.Context, userID string, in CreateOrderInput) (*CreateOrderResult, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	if len(in.Items) == 0 {
		return nil, ErrOrderEmptyCart
	}

	now := uc.clock.Now()

	snaps := make([]orderdom.ItemSnapshot, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Size <= 0 || it.Quantity < 1 {
			return nil, ErrOrderInvalidArgument
		}

		p, err := uc.products.GetByID(ctx, pid)
		if err != nil {
			if errors.Is(err, productdom.ErrNotFound) {
				return nil, ErrOrderInvalidArgument
			}
			return nil, err
		}
		if p.StockFor(it.Size) < it.Quantity {
			return nil, ErrOrderStockShortfall
		}

		snaps = append(snaps, orderdom.ItemSnapshot{
			ProductID: pid,
			Name:      p.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		total += p.Price * float64(it.Quantity)
	}

	if orderdom.Cents(total) != orderdom.Cents(in.TotalAmount) {
		return nil, ErrOrderTotalMismatch
	}

	if uc.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	id := uuid.NewString()

	// validate the full order (address included) before touching the
	// gateway, so a bad request never leaves an orphaned gateway order
	o, err := orderdom.New(id, uid, snaps, in.ShippingAddress, total, "", now)
	if err != nil {
		return nil, err
	}

	handle, err := uc.gateway.CreateOrder(ctx, orderdom.Cents(total), "INR", id)
	if err != nil {
		return nil, fmt.Errorf("order_usecase: gateway order failed: %w", err)
	}
	o.PaymentOrderID = handle

	if err := uc.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	log.Printf("[order_uc] order created orderId=%s userId=%s amount=%.2f paymentOrderId=%s", o.ID, uid, total, handle)

	return &CreateOrderResult{OrderID: o.ID, RazorpayOrderID: handle}, nil
}

// ============================================================
// Verify
// ============================================================

// VerifyPaymentInput carries the three gateway-issued callback fields.
type VerifyPaymentInput struct {
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
}

// Verify validates a payment completion callback against the stored order
// and finalizes it atomically (status, stock decrement, cart clear).
// A failed verification never touches the cart: payment state is ambiguous
// and a cleared cart would lose data.
func (uc *OrderUsecase) Verify(ctx context.Context, userID, orderID string, in VerifyPaymentInput) (*orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(orderID)
	if uid == "" || oid == "" {
		return nil, ErrOrderInvalidArgument
	}

	payID := strings.TrimSpace(in.PaymentID)
	gwOrderID := strings.TrimSpace(in.GatewayOrderID)
	sig := strings.TrimSpace(in.Signature)
	if payID == "" || gwOrderID == "" || sig == "" {
		// never reaches the gateway or the store
		return nil, ErrInvalidPaymentResponse
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o.UserID != uid {
		return nil, ErrOrderForbidden
	}
	if o.PaymentOrderID != gwOrderID {
		return nil, ErrPaymentOrderMismatch
	}
	if o.Status != orderdom.StatusPending {
		return nil, orderdom.ErrAlreadyPaid
	}

	if uc.gateway == nil {
		return nil, ErrGatewayUnavailable
	}
	if !uc.gateway.VerifySignature(gwOrderID, payID, sig) {
		return nil, ErrPaymentSignatureInvalid
	}

	decs := make([]orderdom.StockDecrement, 0, len(o.Items))
	for _, it := range o.Items {
		decs = append(decs, orderdom.StockDecrement{ProductID: it.ProductID, Size: it.Size, Quantity: it.Quantity})
	}

	if err := uc.orders.FinalizePayment(ctx, oid, payID, decs); err != nil {
		return nil, err
	}

	o, err = uc.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	uc.sendConfirmation(ctx, o)

	log.Printf("[order_uc] payment verified orderId=%s userId=%s paymentId=%s", oid, uid, payID)
	return o, nil
}

// MyOrders returns the caller's orders.
func (uc *OrderUsecase) MyOrders(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.orders.ListByUserID(ctx, uid)
}

// sendConfirmation mails the buyer after a verified payment. Failures are
// logged only; the order is already finalized.
func (uc *OrderUsecase) sendConfirmation(ctx context.Context, o *orderdom.Order) {
	if uc.mailer == nil || uc.users == nil || o == nil {
		return
	}
	u, err := uc.users.GetByID(ctx, o.UserID)
	if err != nil || strings.TrimSpace(u.Email) == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order %s!\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %s (size %v) x%d  %.2f\n", it.Name, it.Size, it.Quantity, it.UnitPrice*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.TotalAmount)

	if err := uc.mailer.Send(ctx, uc.mailFrom, u.Email, "Your Shop-Xpress order "+o.ID, b.String()); err != nil {
		log.Printf("[order_uc] WARN: confirmation mail failed orderId=%s err=%v", o.ID, err)
	}
}
