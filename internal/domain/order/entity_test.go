// internal/domain/order/entity_test.go
package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudipto39/Shop-Xpress/internal/domain/order"
)

var (
	now  = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	addr = order.ShippingAddress{
		Street: "12 Main St", City: "Pune", State: "MH", ZipCode: "411001", Phone: "9999999999",
	}
	items = []order.ItemSnapshot{
		{ProductID: "P1", Name: "Runner", Size: 9, Quantity: 2, UnitPrice: 79.99},
		{ProductID: "P2", Name: "Boot", Size: 10, Quantity: 1, UnitPrice: 120},
	}
)

func TestNewValidatesTotal(t *testing.T) {
	t.Parallel()

	t.Run("matching total", func(t *testing.T) {
		o, err := order.New("o1", "u1", items, addr, 279.98, "rzp_order_1", now)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status)
	})

	t.Run("mismatching total rejected", func(t *testing.T) {
		_, err := order.New("o1", "u1", items, addr, 200, "rzp_order_1", now)
		assert.ErrorIs(t, err, order.ErrInvalidTotal)
	})
}

func TestNewRequiresItemsAndAddress(t *testing.T) {
	t.Parallel()

	_, err := order.New("o1", "u1", nil, addr, 0, "rzp_order_1", now)
	assert.ErrorIs(t, err, order.ErrInvalidItems)

	bad := addr
	bad.Phone = ""
	_, err = order.New("o1", "u1", items, bad, 279.98, "rzp_order_1", now)
	assert.ErrorIs(t, err, order.ErrInvalidAddress)
}

func TestTotalIsFrozenSnapshot(t *testing.T) {
	t.Parallel()

	o, err := order.New("o1", "u1", items, addr, 279.98, "rzp_order_1", now)
	require.NoError(t, err)

	// catalog price changes never touch the snapshot
	assert.Equal(t, order.Cents(279.98), order.Cents(o.ItemsTotal()))
	assert.Equal(t, 79.99, o.Items[0].UnitPrice)
}

func TestMarkPaid(t *testing.T) {
	t.Parallel()

	o, _ := order.New("o1", "u1", items, addr, 279.98, "rzp_order_1", now)

	require.NoError(t, o.MarkPaid("pay_1", now))
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, "pay_1", o.PaymentID)

	// second verification attempt is a conflict, never a rollback
	assert.ErrorIs(t, o.MarkPaid("pay_2", now), order.ErrAlreadyPaid)
	assert.Equal(t, "pay_1", o.PaymentID)
}

func TestStatusMachine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to order.Status
		ok       bool
	}{
		{order.StatusPending, order.StatusProcessing, true},
		{order.StatusPending, order.StatusShipped, true},
		{order.StatusProcessing, order.StatusShipped, true},
		{order.StatusShipped, order.StatusDelivered, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusProcessing, order.StatusCancelled, true},
		{order.StatusShipped, order.StatusCancelled, false},
		{order.StatusDelivered, order.StatusCancelled, false},
		{order.StatusDelivered, order.StatusShipped, false},
		{order.StatusShipped, order.StatusProcessing, false},
		{order.StatusCancelled, order.StatusProcessing, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.ok, order.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTransitionUpdatesStatus(t *testing.T) {
	t.Parallel()

	o, _ := order.New("o1", "u1", items, addr, 279.98, "rzp_order_1", now)
	require.NoError(t, o.MarkPaid("pay_1", now))

	require.NoError(t, o.Transition(order.StatusShipped, now))
	assert.ErrorIs(t, o.Transition(order.StatusPending, now), order.ErrInvalidTransition)
	assert.ErrorIs(t, o.Transition(order.Status("weird"), now), order.ErrInvalidStatus)
}
