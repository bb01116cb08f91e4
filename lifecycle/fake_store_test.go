package lifecycle_test

import (
	"context"
	"sync"

	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/models"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory lifecycle.Store. Transition holds a lock for
// the whole decide-and-apply sequence, mirroring the row lock the gorm
// store takes.
type fakeStore struct {
	mu       sync.Mutex
	orders   map[uint]models.Order
	users    map[uint]models.User
	earnings map[uint]decimal.Decimal
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[uint]models.Order),
		users:    make(map[uint]models.User),
		earnings: make(map[uint]decimal.Decimal),
	}
}

func (f *fakeStore) Order(_ context.Context, orderID uint) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, lifecycle.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeStore) User(_ context.Context, userID uint) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, lifecycle.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) Transition(_ context.Context, orderID uint, decide lifecycle.DecideFunc) (lifecycle.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[orderID]
	if !ok {
		return lifecycle.Result{}, lifecycle.ErrOrderNotFound
	}

	mutation, err := decide(order)
	if err != nil {
		return lifecycle.Result{}, err
	}

	order.Status = mutation.Status
	if mutation.DeliverymanID != nil {
		order.DeliverymanID = mutation.DeliverymanID
	}

	res := lifecycle.Result{Order: order}
	if mutation.CreditFee {
		user, ok := f.users[*order.DeliverymanID]
		if !ok || user.Role != models.RoleDeliveryMan {
			return lifecycle.Result{}, lifecycle.ErrDeliverymanNotFound
		}
		f.earnings[user.ID] = f.earnings[user.ID].Add(lifecycle.DeliveryFee)
		res.Credited = true
		res.Earnings = f.earnings[user.ID]
	}

	f.orders[orderID] = order
	return res, nil
}

func (f *fakeStore) Stats(_ context.Context, deliverymanID uint) (lifecycle.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := lifecycle.Stats{Earnings: f.earnings[deliverymanID]}
	for _, order := range f.orders {
		if order.DeliverymanID == nil || *order.DeliverymanID != deliverymanID {
			continue
		}
		stats.TotalOrders++
		switch order.Status {
		case models.OrderApproved:
			stats.PendingOrders++
		case models.OrderDelivered:
			stats.DeliveredOrders++
		}
	}
	return stats, nil
}
