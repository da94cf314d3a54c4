// internal/adapters/in/http/handler/handler_fixtures_test.go
package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/handler"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/memory"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

// fakeVerifier accepts the tokens in its map and rejects everything else.
type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (v *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if t, ok := v.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("invalid token")
}

func userVerifier(uid, email string) *fakeVerifier {
	return &fakeVerifier{tokens: map[string]*fbauth.Token{
		"good-token": {
			UID:    uid,
			Claims: map[string]interface{}{"email": email, "name": "Asha"},
		},
	}}
}

// catalogRepo is an in-memory product.Repository for handler tests.
type catalogRepo struct {
	products map[string]*productdom.Product
}

func newCatalogRepo(ps ...*productdom.Product) *catalogRepo {
	r := &catalogRepo{products: map[string]*productdom.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, productdom.ErrNotFound
	}
	return p, nil
}

func (r *catalogRepo) List(ctx context.Context, category string) ([]*productdom.Product, error) {
	var out []*productdom.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *catalogRepo) Save(ctx context.Context, p *productdom.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func testProduct(t *testing.T, id string, price float64) *productdom.Product {
	t.Helper()
	p, err := productdom.New(id, "Runner "+id, "", price, "sports",
		nil, []productdom.SizeStock{{Size: 9, Stock: 5}}, time.Now())
	require.NoError(t, err)
	return p
}

// ordersRepo is an in-memory order.Repository for handler tests.
type ordersRepo struct {
	orders map[string]*orderdom.Order
	carts  *memory.CartRepositoryMem
}

func newOrdersRepo(carts *memory.CartRepositoryMem) *ordersRepo {
	return &ordersRepo{orders: map[string]*orderdom.Order{}, carts: carts}
}

func (r *ordersRepo) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *ordersRepo) ListByUserID(ctx context.Context, userID string) ([]*orderdom.Order, error) {
	var out []*orderdom.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *ordersRepo) List(ctx context.Context) ([]*orderdom.Order, error) {
	var out []*orderdom.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *ordersRepo) Save(ctx context.Context, o *orderdom.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *ordersRepo) FinalizePayment(ctx context.Context, orderID, paymentID string, decs []orderdom.StockDecrement) error {
	o, ok := r.orders[orderID]
	if !ok {
		return orderdom.ErrNotFound
	}
	if err := o.MarkPaid(paymentID, time.Now()); err != nil {
		return err
	}
	if r.carts != nil {
		_ = r.carts.DeleteByOwnerID(ctx, o.UserID)
	}
	return nil
}

// stubGateway returns a fixed handle and verdict; it counts verify calls
// so tests can assert the field gate short-circuits.
type stubGateway struct {
	verifyOK    bool
	verifyCalls int
}

func (g *stubGateway) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	return "order_rzp_1", nil
}

func (g *stubGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	g.verifyCalls++
	return g.verifyOK
}

// usersRepo satisfies user.Repository; profile reads back whatever sign-in
// stored.
type usersRepo struct {
	users map[string]*userdom.User
}

func newUsersRepo() *usersRepo { return &usersRepo{users: map[string]*userdom.User{}} }

func (r *usersRepo) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userdom.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) Save(ctx context.Context, u *userdom.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) { return len(r.users), nil }

// cartStack wires SessionAuth + CartHandler over in-memory backends.
func cartStack(t *testing.T, products ...*productdom.Product) (http.Handler, *memory.CartRepositoryMem) {
	t.Helper()
	catalog := newCatalogRepo(products...)
	serverRepo := memory.NewCartRepositoryMem()
	guestRepo := memory.NewCartRepositoryMem()

	serverUC := usecase.NewCartUsecase(serverRepo, catalog)
	guestUC := usecase.NewCartUsecase(guestRepo, catalog)
	mergeUC := usecase.NewCartMergeUsecase(guestRepo, serverUC)

	h := handler.NewCartHandler(serverUC, guestUC, mergeUC)
	auth := &middleware.SessionAuth{Verifier: userVerifier("u1", "asha@example.com")}
	return auth.Handler(h), guestRepo
}
