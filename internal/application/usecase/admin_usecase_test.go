// internal/application/usecase/admin_usecase_test.go
package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

func seedOrder(t *testing.T, repo *memOrderRepo, id, uid string, amount float64, status orderdom.Status, created time.Time, items ...orderdom.ItemSnapshot) {
	t.Helper()
	if len(items) == 0 {
		items = []orderdom.ItemSnapshot{{ProductID: "p1", Name: "Runner", Size: 9, Quantity: 1, UnitPrice: amount}}
	}
	o, err := orderdom.New(id, uid, items, orderdom.ShippingAddress{
		Street: "1 Main St", City: "Pune", State: "MH", ZipCode: "411001", Phone: "9999999999",
	}, amount, "order_rzp_"+id, created)
	require.NoError(t, err)
	o.Status = status
	require.NoError(t, repo.Save(context.Background(), o))
}

func TestAdminDashboard_Aggregates(t *testing.T) {
	t.Parallel()
	orders := newMemOrderRepo()

	seedOrder(t, orders, "o1", "u1", 100, orderdom.StatusPending, testNow,
		orderdom.ItemSnapshot{ProductID: "p1", Name: "Runner", Size: 9, Quantity: 1, UnitPrice: 100})
	seedOrder(t, orders, "o2", "u2", 300, orderdom.StatusProcessing, testNow.Add(time.Hour),
		orderdom.ItemSnapshot{ProductID: "p2", Name: "Chelsea", Size: 10, Quantity: 3, UnitPrice: 100})
	seedOrder(t, orders, "o3", "u1", 250, orderdom.StatusCancelled, testNow.Add(2*time.Hour),
		orderdom.ItemSnapshot{ProductID: "p1", Name: "Runner", Size: 9.5, Quantity: 5, UnitPrice: 50})

	u1, err := userdom.New("u1", "", "", "", testNow)
	require.NoError(t, err)
	u2, err := userdom.New("u2", "", "", "", testNow)
	require.NoError(t, err)

	uc := usecase.NewAdminUsecase(orders, newMemUserRepo(u1, u2)).WithClock(fixedClock{testNow})

	d := uc.Dashboard(context.Background())

	assert.Equal(t, 3, d.TotalOrders)
	assert.Equal(t, 2, d.TotalUsers)
	assert.Equal(t, 1, d.PendingOrders)
	assert.InDelta(t, 400, d.TotalRevenue, 0.001, "cancelled orders do not count toward revenue")

	require.Len(t, d.RecentOrders, 3)
	assert.Equal(t, "o3", d.RecentOrders[0].ID, "newest first")

	// cancelled o3's 5 units of p1 are excluded
	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, usecase.TopProduct{ProductID: "p2", Name: "Chelsea", UnitsSold: 3, Revenue: 300}, d.TopProducts[0])
	assert.Equal(t, usecase.TopProduct{ProductID: "p1", Name: "Runner", UnitsSold: 1, Revenue: 100}, d.TopProducts[1])
}

func TestAdminDashboard_DegradesToZeros(t *testing.T) {
	t.Parallel()
	orders := newMemOrderRepo()
	orders.listErr = errBoom
	users := newMemUserRepo()
	users.countErr = errBoom

	uc := usecase.NewAdminUsecase(orders, users)

	d := uc.Dashboard(context.Background())
	assert.Zero(t, d.TotalOrders)
	assert.Zero(t, d.TotalRevenue)
	assert.Zero(t, d.TotalUsers)
	assert.NotNil(t, d.RecentOrders)
	assert.NotNil(t, d.TopProducts)
	assert.Empty(t, d.TopProducts)

	// empty lists must render as [] rather than null
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"recentOrders":[]`)
	assert.Contains(t, string(b), `"topProducts":[]`)
}

func TestAdminListOrders_NewestFirst(t *testing.T) {
	t.Parallel()
	orders := newMemOrderRepo()
	seedOrder(t, orders, "old", "u1", 100, orderdom.StatusPending, testNow)
	seedOrder(t, orders, "new", "u1", 100, orderdom.StatusPending, testNow.Add(time.Hour))

	uc := usecase.NewAdminUsecase(orders, newMemUserRepo())

	got, err := uc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	t.Parallel()
	orders := newMemOrderRepo()
	seedOrder(t, orders, "o1", "u1", 100, orderdom.StatusProcessing, testNow)

	uc := usecase.NewAdminUsecase(orders, newMemUserRepo()).WithClock(fixedClock{testNow})
	ctx := context.Background()

	o, err := uc.UpdateOrderStatus(ctx, "o1", "shipped")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, o.Status)

	// backwards is rejected
	_, err = uc.UpdateOrderStatus(ctx, "o1", "pending")
	assert.ErrorIs(t, err, orderdom.ErrInvalidTransition)

	// shipped orders can no longer be cancelled
	_, err = uc.UpdateOrderStatus(ctx, "o1", "cancelled")
	assert.ErrorIs(t, err, orderdom.ErrInvalidTransition)

	_, err = uc.UpdateOrderStatus(ctx, "o1", "returned")
	assert.ErrorIs(t, err, orderdom.ErrInvalidTransition)

	_, err = uc.UpdateOrderStatus(ctx, "nope", "shipped")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}
