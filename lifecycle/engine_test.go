package lifecycle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(id uint, role models.UserRole, status models.UserStatus) models.User {
	return models.User{
		Model:  gorm.Model{ID: id},
		Role:   role,
		Status: status,
	}
}

func newOrder(id uint, status models.OrderStatus, deliverymanID *uint) models.Order {
	return models.Order{
		Model:         gorm.Model{ID: id},
		CustomerID:    1,
		FarmownerID:   2,
		Status:        status,
		DeliverymanID: deliverymanID,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestUpdateOrderStatusApproveAssignsDeliveryman(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderPending, nil)
	engine := lifecycle.NewEngine(store)

	res, err := engine.UpdateOrderStatus(context.Background(), 1, "Approved", uintPtr(42))
	require.NoError(t, err)
	require.Equal(t, models.OrderApproved, res.Order.Status)
	require.NotNil(t, res.Order.DeliverymanID)
	require.Equal(t, uint(42), *res.Order.DeliverymanID)
	require.False(t, res.Credited)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeStore()
	store.orders[1] = newOrder(1, models.OrderPending, nil)
	engine := lifecycle.NewEngine(store)

	_, err := engine.UpdateOrderStatus(context.Background(), 1, "Shipped", nil)
	require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
	require.Equal(t, models.OrderPending, store.orders[1].Status)
}

func TestUpdateOrderStatusRejectsInvalidDeliveryman(t *testing.T) {
	store := newFakeStore()
	store.users[7] = newUser(7, models.RoleCustomer, models.StatusActive)
	store.users[8] = newUser(8, models.RoleDeliveryMan, models.StatusRestricted)
	store.orders[1] = newOrder(1, models.OrderPending, nil)
	engine := lifecycle.NewEngine(store)

	// Wrong role.
	_, err := engine.UpdateOrderStatus(context.Background(), 1, "Approved", uintPtr(7))
	require.ErrorIs(t, err, lifecycle.ErrInvalidDeliveryman)

	// Right role but not active.
	_, err = engine.UpdateOrderStatus(context.Background(), 1, "Approved", uintPtr(8))
	require.ErrorIs(t, err, lifecycle.ErrInvalidDeliveryman)

	// Unknown user.
	_, err = engine.UpdateOrderStatus(context.Background(), 1, "Approved", uintPtr(99))
	require.ErrorIs(t, err, lifecycle.ErrInvalidDeliveryman)

	require.Equal(t, models.OrderPending, store.orders[1].Status)
	require.Nil(t, store.orders[1].DeliverymanID)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	engine := lifecycle.NewEngine(newFakeStore())

	_, err := engine.UpdateOrderStatus(context.Background(), 404, "Approved", nil)
	require.ErrorIs(t, err, lifecycle.ErrOrderNotFound)
}

func TestDeliveredCreditsFlatFeeExactlyOnce(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderPending, nil)
	engine := lifecycle.NewEngine(store)
	ctx := context.Background()

	_, err := engine.UpdateOrderStatus(ctx, 1, "Approved", uintPtr(42))
	require.NoError(t, err)

	res, err := engine.UpdateOrderStatus(ctx, 1, "Delivered", nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderDelivered, res.Order.Status)
	require.True(t, res.Credited)
	require.True(t, res.Earnings.Equal(decimal.NewFromInt(50)), "earnings = %s", res.Earnings)

	// Repeating the call leaves both the order and the earnings untouched.
	res, err = engine.UpdateOrderStatus(ctx, 1, "Delivered", nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderDelivered, res.Order.Status)
	require.False(t, res.Credited)
	require.True(t, store.earnings[42].Equal(decimal.NewFromInt(50)), "earnings = %s", store.earnings[42])
}

func TestCancelSkipsEarnings(t *testing.T) {
	store := newFakeStore()
	store.orders[1] = newOrder(1, models.OrderPending, nil)
	engine := lifecycle.NewEngine(store)

	res, err := engine.UpdateOrderStatus(context.Background(), 1, "Cancelled", nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderCancelled, res.Order.Status)
	require.False(t, res.Credited)
	require.Empty(t, store.earnings)
}

func TestTerminalStatesRejectFurtherTransitions(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderCancelled, nil)
	store.orders[2] = newOrder(2, models.OrderDelivered, uintPtr(42))
	engine := lifecycle.NewEngine(store)
	ctx := context.Background()

	for _, next := range []string{"Pending", "Approved", "Delivered"} {
		_, err := engine.UpdateOrderStatus(ctx, 1, next, nil)
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "Cancelled -> %s", next)
	}
	require.Equal(t, models.OrderCancelled, store.orders[1].Status)

	for _, next := range []string{"Pending", "Approved", "Cancelled"} {
		_, err := engine.UpdateOrderStatus(ctx, 2, next, nil)
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "Delivered -> %s", next)
	}
	require.Equal(t, models.OrderDelivered, store.orders[2].Status)
}

func TestDeliveredWithoutDeliverymanSkipsCredit(t *testing.T) {
	store := newFakeStore()
	store.orders[1] = newOrder(1, models.OrderApproved, nil)
	engine := lifecycle.NewEngine(store)

	res, err := engine.UpdateOrderStatus(context.Background(), 1, "Delivered", nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderDelivered, res.Order.Status)
	require.False(t, res.Credited)
	require.Empty(t, store.earnings)
}

func TestMarkDeliveredRejectsWrongDeliveryman(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderApproved, uintPtr(42))
	engine := lifecycle.NewEngine(store)

	_, err := engine.MarkDelivered(context.Background(), 1, 99, "Delivered")
	require.ErrorIs(t, err, lifecycle.ErrNotAssigned)
	require.Equal(t, models.OrderApproved, store.orders[1].Status)
	require.Empty(t, store.earnings)
}

func TestMarkDeliveredOnlyAcceptsDelivered(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderApproved, uintPtr(42))
	engine := lifecycle.NewEngine(store)
	ctx := context.Background()

	for _, status := range []string{"Approved", "Cancelled", "Pending", "Done"} {
		_, err := engine.MarkDelivered(ctx, 1, 42, status)
		require.ErrorIs(t, err, lifecycle.ErrInvalidStatus, "status %q", status)
	}
	require.Equal(t, models.OrderApproved, store.orders[1].Status)
}

func TestMarkDeliveredIdempotent(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderApproved, uintPtr(42))
	engine := lifecycle.NewEngine(store)
	ctx := context.Background()

	res, err := engine.MarkDelivered(ctx, 1, 42, "Delivered")
	require.NoError(t, err)
	require.True(t, res.Credited)
	require.True(t, res.Earnings.Equal(decimal.NewFromInt(50)))

	res, err = engine.MarkDelivered(ctx, 1, 42, "Delivered")
	require.NoError(t, err)
	require.False(t, res.Credited)
	require.True(t, store.earnings[42].Equal(decimal.NewFromInt(50)))
}

func TestStats(t *testing.T) {
	store := newFakeStore()
	store.users[42] = newUser(42, models.RoleDeliveryMan, models.StatusActive)
	store.orders[1] = newOrder(1, models.OrderApproved, uintPtr(42))
	store.orders[2] = newOrder(2, models.OrderDelivered, uintPtr(42))
	store.orders[3] = newOrder(3, models.OrderDelivered, uintPtr(42))
	store.orders[4] = newOrder(4, models.OrderApproved, uintPtr(7))
	store.earnings[42] = decimal.NewFromInt(100)
	engine := lifecycle.NewEngine(store)

	stats, err := engine.Stats(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalOrders)
	require.Equal(t, int64(1), stats.PendingOrders)
	require.Equal(t, int64(2), stats.DeliveredOrders)
	require.True(t, stats.Earnings.Equal(decimal.NewFromInt(100)))
}

// MockStore verifies error propagation from the persistence layer.
type MockStore struct{ mock.Mock }

func (m *MockStore) Order(ctx context.Context, orderID uint) (models.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockStore) User(ctx context.Context, userID uint) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) Transition(ctx context.Context, orderID uint, decide lifecycle.DecideFunc) (lifecycle.Result, error) {
	args := m.Called(ctx, orderID, decide)
	return args.Get(0).(lifecycle.Result), args.Error(1)
}

func (m *MockStore) Stats(ctx context.Context, deliverymanID uint) (lifecycle.Stats, error) {
	args := m.Called(ctx, deliverymanID)
	return args.Get(0).(lifecycle.Stats), args.Error(1)
}

func TestUpdateOrderStatusSurfacesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")

	store := new(MockStore)
	store.On("Transition", mock.Anything, uint(1), mock.AnythingOfType("lifecycle.DecideFunc")).
		Return(lifecycle.Result{}, storeErr).Once()

	engine := lifecycle.NewEngine(store)
	_, err := engine.UpdateOrderStatus(context.Background(), 1, "Cancelled", nil)
	require.ErrorIs(t, err, storeErr)
	store.AssertExpectations(t)
}
