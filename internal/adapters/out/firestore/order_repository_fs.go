// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: order id (uuid)
//
// FinalizePayment additionally touches products/{productId} (stock
// decrement) and carts/{userId} (delete) inside one transaction.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

var _ orderdom.Repository = (*OrderRepositoryFS)(nil)

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

type orderItemDoc struct {
	ProductID string  `firestore:"productId"`
	Name      string  `firestore:"name"`
	Size      float64 `firestore:"size"`
	Quantity  int     `firestore:"quantity"`
	UnitPrice float64 `firestore:"unitPrice"`
}

type shippingAddressDoc struct {
	Street  string `firestore:"street"`
	City    string `firestore:"city"`
	State   string `firestore:"state"`
	ZipCode string `firestore:"zipCode"`
	Phone   string `firestore:"phone"`
}

type orderDoc struct {
	UserID          string             `firestore:"userId"`
	Items           []orderItemDoc     `firestore:"items"`
	ShippingAddress shippingAddressDoc `firestore:"shippingAddress"`
	TotalAmount     float64            `firestore:"totalAmount"`
	Status          string             `firestore:"status"`
	PaymentOrderID  string             `firestore:"paymentOrderId"`
	PaymentID       string             `firestore:"paymentId"`
	CreatedAt       time.Time          `firestore:"createdAt"`
	UpdatedAt       time.Time          `firestore:"updatedAt"`
}

func orderDocFromDomain(o *orderdom.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return orderDoc{
		UserID: o.UserID,
		Items:  items,
		ShippingAddress: shippingAddressDoc{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Phone:   o.ShippingAddress.Phone,
		},
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		PaymentOrderID: o.PaymentOrderID,
		PaymentID:      o.PaymentID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (d orderDoc) toDomain(id string) *orderdom.Order {
	items := make([]orderdom.ItemSnapshot, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, orderdom.ItemSnapshot{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &orderdom.Order{
		ID:     id,
		UserID: d.UserID,
		Items:  items,
		ShippingAddress: orderdom.ShippingAddress{
			Street:  d.ShippingAddress.Street,
			City:    d.ShippingAddress.City,
			State:   d.ShippingAddress.State,
			ZipCode: d.ShippingAddress.ZipCode,
			Phone:   d.ShippingAddress.Phone,
		},
		TotalAmount:    d.TotalAmount,
		Status:         orderdom.Status(d.Status),
		PaymentOrderID: d.PaymentOrderID,
		PaymentID:      d.PaymentID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, orderdom.ErrNotFound
		}
		return nil, err
	}

	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toDomain(oid), nil
}

func (r *OrderRepositoryFS) ListByUserID(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	// No OrderBy here: combined with Where it needs a composite index,
	// and callers sort in memory anyway.
	it := r.col().Where("userId", "==", uid).Documents(ctx)
	return collectOrders(it)
}

func (r *OrderRepositoryFS) List(ctx context.Context) ([]*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	return collectOrders(r.col().Documents(ctx))
}

func collectOrders(it *firestore.DocumentIterator) ([]*orderdom.Order, error) {
	defer it.Stop()

	var out []*orderdom.Order
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var d orderDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (r *OrderRepositoryFS) Save(ctx context.Context, o *orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return errors.New("order_repository_fs: Save requires order.ID as docId")
	}

	_, err := r.col().Doc(o.ID).Set(ctx, orderDocFromDomain(o))
	return err
}

// FinalizePayment commits the verified-payment outcome atomically:
// order status pending->processing with paymentId, per-size stock
// decrements, and deletion of the buyer's cart doc. A stock shortfall
// aborts the whole transaction with product.ErrOutOfStock.
func (r *OrderRepositoryFS) FinalizePayment(ctx context.Context, orderID, paymentID string, decs []orderdom.StockDecrement) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(orderID)
	pid := strings.TrimSpace(paymentID)
	if oid == "" || pid == "" {
		return errors.New("order_repository_fs: orderID and paymentID are required")
	}

	orderRef := r.col().Doc(oid)
	productsCol := r.Client.Collection("products")
	cartsCol := r.Client.Collection("carts")

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// all reads first (Firestore transaction rule)
		orderSnap, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}
		var od orderDoc
		if err := orderSnap.DataTo(&od); err != nil {
			return err
		}
		if orderdom.Status(od.Status) != orderdom.StatusPending {
			return orderdom.ErrAlreadyPaid
		}

		type stockUpdate struct {
			ref   *firestore.DocumentRef
			sizes []sizeStockDoc
		}
		updates := make([]stockUpdate, 0, len(decs))

		for _, dec := range decs {
			ref := productsCol.Doc(dec.ProductID)
			snap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return productdom.ErrNotFound
				}
				return err
			}
			var pd productDoc
			if err := snap.DataTo(&pd); err != nil {
				return err
			}

			found := false
			for i, s := range pd.Sizes {
				if s.Size != dec.Size {
					continue
				}
				if s.Stock < dec.Quantity {
					return fmt.Errorf("%w: product %s size %v", productdom.ErrOutOfStock, dec.ProductID, dec.Size)
				}
				pd.Sizes[i].Stock = s.Stock - dec.Quantity
				found = true
				break
			}
			if !found {
				return fmt.Errorf("%w: product %s size %v", productdom.ErrOutOfStock, dec.ProductID, dec.Size)
			}
			updates = append(updates, stockUpdate{ref: ref, sizes: pd.Sizes})
		}

		now := time.Now().UTC()

		if err := tx.Update(orderRef, []firestore.Update{
			{Path: "status", Value: string(orderdom.StatusProcessing)},
			{Path: "paymentId", Value: pid},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		for _, u := range updates {
			if err := tx.Update(u.ref, []firestore.Update{
				{Path: "sizes", Value: u.sizes},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		// the buyer's server cart goes away with the purchase
		if uid := strings.TrimSpace(od.UserID); uid != "" {
			if err := tx.Delete(cartsCol.Doc(uid)); err != nil {
				return err
			}
		}
		return nil
	})
}
