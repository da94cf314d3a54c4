// internal/application/usecase/fakes_test.go
package usecase_test

import (
	"context"
	"errors"
	"time"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ---- cart ----

type memCartRepo struct {
	carts   map[string]*cartdom.Cart
	getErr  error
	delErr  error
	deletes []string
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *memCartRepo) GetByOwnerID(ctx context.Context, ownerID string) (*cartdom.Cart, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.carts[ownerID], nil
}

func (r *memCartRepo) Upsert(ctx context.Context, c *cartdom.Cart) error {
	r.carts[c.OwnerID] = c
	return nil
}

func (r *memCartRepo) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	r.deletes = append(r.deletes, ownerID)
	if r.delErr != nil {
		return r.delErr
	}
	delete(r.carts, ownerID)
	return nil
}

// ---- product ----

type memProductRepo struct {
	products map[string]*productdom.Product
}

func newMemProductRepo(ps ...*productdom.Product) *memProductRepo {
	r := &memProductRepo{products: map[string]*productdom.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, productdom.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) List(ctx context.Context, category string) ([]*productdom.Product, error) {
	var out []*productdom.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(ctx context.Context, p *productdom.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func mustProduct(id, name string, price float64, sizes ...productdom.SizeStock) *productdom.Product {
	p, err := productdom.New(id, name, "", price, "sports", nil, sizes, testNow)
	if err != nil {
		panic(err)
	}
	return p
}

// ---- order ----

type finalizeCall struct {
	orderID   string
	paymentID string
	decs      []orderdom.StockDecrement
}

type memOrderRepo struct {
	orders    map[string]*orderdom.Order
	listErr   error
	finalizes []finalizeCall
	// carts mimics the transactional cart clear of the real adapter.
	carts *memCartRepo
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*orderdom.Order{}}
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	var out []*orderdom.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) List(ctx context.Context) ([]*orderdom.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*orderdom.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) Save(ctx context.Context, o *orderdom.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) FinalizePayment(ctx context.Context, orderID, paymentID string, decs []orderdom.StockDecrement) error {
	r.finalizes = append(r.finalizes, finalizeCall{orderID: orderID, paymentID: paymentID, decs: decs})
	o, ok := r.orders[orderID]
	if !ok {
		return orderdom.ErrNotFound
	}
	if err := o.MarkPaid(paymentID, testNow); err != nil {
		return err
	}
	if r.carts != nil {
		_ = r.carts.DeleteByOwnerID(ctx, o.UserID)
	}
	return nil
}

// ---- user ----

type memUserRepo struct {
	users    map[string]*userdom.User
	countErr error
}

func newMemUserRepo(us ...*userdom.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*userdom.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) Save(ctx context.Context, u *userdom.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.users), nil
}

// ---- gateway / mail ----

type fakeGateway struct {
	handle      string
	createErr   error
	verifyOK    bool
	createCalls int
	verifyCalls int
	lastAmount  int64
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	g.createCalls++
	g.lastAmount = amountCents
	if g.createErr != nil {
		return "", g.createErr
	}
	if g.handle == "" {
		return "order_rzp_test", nil
	}
	return g.handle, nil
}

func (g *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	g.verifyCalls++
	return g.verifyOK
}

type sentMail struct{ to, subject string }

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) Send(ctx context.Context, from, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return m.sendErr
}

var errBoom = errors.New("boom")
