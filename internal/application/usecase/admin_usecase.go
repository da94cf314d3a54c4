// internal/application/usecase/admin_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

var ErrAdminInvalidArgument = errors.New("admin_usecase: invalid argument")

// AdminUsecase backs the management console: the dashboard aggregate,
// the full order list and order status progression.
type AdminUsecase struct {
	orders orderdom.Repository
	users  userdom.Repository
	clock  Clock
}

func NewAdminUsecase(orders orderdom.Repository, users userdom.Repository) *AdminUsecase {
	return &AdminUsecase{orders: orders, users: users, clock: systemClock{}}
}

func (uc *AdminUsecase) WithClock(clock Clock) *AdminUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// TopProduct is one line of the units-sold leaderboard. Revenue is the
// snapshot unit price times units across all line items of the product.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// Dashboard is the console landing aggregate.
type Dashboard struct {
	TotalRevenue  float64          `json:"totalRevenue"`
	TotalOrders   int              `json:"totalOrders"`
	TotalUsers    int              `json:"totalUsers"`
	PendingOrders int              `json:"pendingOrders"`
	RecentOrders  []*orderdom.Order `json:"recentOrders"`
	TopProducts   []TopProduct     `json:"topProducts"`
}

// Dashboard computes the console aggregate in one pass over all orders.
// Sources that fail to load degrade to zero values with a log line; the
// dashboard itself never errors.
func (uc *AdminUsecase) Dashboard(ctx context.Context) *Dashboard {
	d := &Dashboard{
		RecentOrders: []*orderdom.Order{},
		TopProducts:  []TopProduct{},
	}

	orders, err := uc.orders.List(ctx)
	if err != nil {
		log.Printf("[admin_uc] WARN: order list failed, dashboard degraded: %v", err)
		orders = nil
	}

	type tally struct {
		name    string
		units   int
		revenue float64
	}
	sold := map[string]*tally{}

	for _, o := range orders {
		d.TotalOrders++
		if o.Status == orderdom.StatusPending {
			d.PendingOrders++
		}
		if o.Status != orderdom.StatusCancelled {
			d.TotalRevenue += o.TotalAmount
			for _, it := range o.Items {
				t := sold[it.ProductID]
				if t == nil {
					t = &tally{name: it.Name}
					sold[it.ProductID] = t
				}
				t.units += it.Quantity
				t.revenue += it.UnitPrice * float64(it.Quantity)
			}
		}
	}

	// newest first; keep a non-nil slice so the response renders [] not null
	sorted := append([]*orderdom.Order{}, orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	d.RecentOrders = sorted

	for pid, t := range sold {
		d.TopProducts = append(d.TopProducts, TopProduct{ProductID: pid, Name: t.name, UnitsSold: t.units, Revenue: t.revenue})
	}
	sort.Slice(d.TopProducts, func(i, j int) bool {
		if d.TopProducts[i].UnitsSold != d.TopProducts[j].UnitsSold {
			return d.TopProducts[i].UnitsSold > d.TopProducts[j].UnitsSold
		}
		return d.TopProducts[i].ProductID < d.TopProducts[j].ProductID
	})
	if len(d.TopProducts) > 5 {
		d.TopProducts = d.TopProducts[:5]
	}

	if uc.users != nil {
		n, err := uc.users.Count(ctx)
		if err != nil {
			log.Printf("[admin_uc] WARN: user count failed, dashboard degraded: %v", err)
		} else {
			d.TotalUsers = n
		}
	}

	return d
}

// ListOrders returns every order, newest first.
func (uc *AdminUsecase) ListOrders(ctx context.Context) ([]*orderdom.Order, error) {
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateOrderStatus moves an order along the fulfilment machine.
func (uc *AdminUsecase) UpdateOrderStatus(ctx context.Context, orderID, next string) (*orderdom.Order, error) {
	orderID = strings.TrimSpace(orderID)
	to := orderdom.Status(strings.TrimSpace(strings.ToLower(next)))
	if orderID == "" {
		return nil, ErrAdminInvalidArgument
	}
	if !orderdom.ValidStatus(to) {
		return nil, orderdom.ErrInvalidTransition
	}

	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Transition(to, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	log.Printf("[admin_uc] order status updated orderId=%s status=%s", orderID, to)
	return o, nil
}
