// internal/adapters/in/http/handler/order_handler_test.go
package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/handler"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/memory"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
)

func orderStack(t *testing.T) (http.Handler, *stubGateway, *memory.CartRepositoryMem) {
	t.Helper()
	catalog := newCatalogRepo(testProduct(t, "p1", 100))
	carts := memory.NewCartRepositoryMem()
	orders := newOrdersRepo(carts)
	gateway := &stubGateway{verifyOK: true}

	uc := usecase.NewOrderUsecase(orders, catalog, carts, newUsersRepo(), gateway)
	auth := &middleware.UserAuth{Verifier: userVerifier("u1", "asha@example.com")}
	return auth.Handler(handler.NewOrderHandler(uc)), gateway, carts
}

const createBody = `{
	"items":[{"product":"p1","size":9,"quantity":2,"price":100}],
	"shippingAddress":{"street":"1 Main St","city":"Pune","state":"MH","zipCode":"411001","phone":"9999999999"},
	"totalAmount":200
}`

func TestOrderRoutes_CreateAndVerify(t *testing.T) {
	t.Parallel()
	h, _, _ := orderStack(t)

	rec := doJSON(t, h, http.MethodPost, "/orders", createBody, authHdr())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		OrderID         string `json:"orderId"`
		RazorpayOrderID string `json:"razorpayOrderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.OrderID)
	assert.Equal(t, "order_rzp_1", created.RazorpayOrderID)

	rec = doJSON(t, h, http.MethodPost, "/orders/"+created.OrderID+"/verify",
		`{"razorpay_payment_id":"pay_1","razorpay_order_id":"order_rzp_1","razorpay_signature":"sig"}`, authHdr())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var verified struct {
		Verified bool `json:"verified"`
		Order    struct {
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verified))
	assert.True(t, verified.Verified)
	assert.Equal(t, "processing", verified.Order.Status)

	rec = doJSON(t, h, http.MethodGet, "/orders/my-orders", "", authHdr())
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Orders []json.RawMessage `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine.Orders, 1)
}

func TestOrderRoutes_VerifyFieldGate(t *testing.T) {
	t.Parallel()
	h, gateway, _ := orderStack(t)

	rec := doJSON(t, h, http.MethodPost, "/orders", createBody, authHdr())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// missing signature: rejected before any signature check happens
	rec = doJSON(t, h, http.MethodPost, "/orders/"+created.OrderID+"/verify",
		`{"razorpay_payment_id":"pay_1","razorpay_order_id":"order_rzp_1"}`, authHdr())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.verifyCalls)
}

func TestOrderRoutes_TotalMismatch(t *testing.T) {
	t.Parallel()
	h, _, _ := orderStack(t)

	body := `{
		"items":[{"product":"p1","size":9,"quantity":2,"price":100}],
		"shippingAddress":{"street":"1 Main St","city":"Pune","state":"MH","zipCode":"411001","phone":"9999999999"},
		"totalAmount":150
	}`
	rec := doJSON(t, h, http.MethodPost, "/orders", body, authHdr())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderRoutes_RequireAuth(t *testing.T) {
	t.Parallel()
	h, _, _ := orderStack(t)

	rec := doJSON(t, h, http.MethodPost, "/orders", createBody, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/orders/my-orders", "", map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
