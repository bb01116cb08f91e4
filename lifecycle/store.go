package lifecycle

import (
	"context"
	"errors"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidDeliveryman  = errors.New("invalid deliveryman assignment")
	ErrDeliverymanNotFound = errors.New("deliveryman not found")
	ErrNotAssigned         = errors.New("order is not assigned to this deliveryman")
)

// Mutation is the change a transition decision wants applied to an order.
// When CreditFee is set the store credits the flat delivery fee to the
// order's assigned deliveryman in the same transaction as the status write.
type Mutation struct {
	Status        models.OrderStatus
	DeliverymanID *uint
	CreditFee     bool
}

// DecideFunc inspects the order's current row and returns the mutation to
// apply, or an error to abort with no state change. The store calls it with
// the row locked, so the decision cannot race a concurrent transition on the
// same order.
type DecideFunc func(current models.Order) (Mutation, error)

// Result reports the order state after a transition and whether the delivery
// fee was credited by it.
type Result struct {
	Order    models.Order
	Credited bool
	Earnings decimal.Decimal
}

// Stats are the read-only aggregates behind the deliveryman dashboard.
type Stats struct {
	TotalOrders     int64           `json:"totalOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	Earnings        decimal.Decimal `json:"earnings"`
}

// Store is the persistence surface the engine runs against. The gorm
// implementation lives in the stores package; tests use an in-memory fake.
type Store interface {
	// Order returns the current order row, or ErrOrderNotFound.
	Order(ctx context.Context, orderID uint) (models.Order, error)

	// User returns a user row, or ErrUserNotFound.
	User(ctx context.Context, userID uint) (models.User, error)

	// Transition atomically applies decide to the order: the row is read
	// under a write lock, the returned mutation is persisted, and any fee
	// credit lands in the same transaction. A decide error rolls everything
	// back.
	Transition(ctx context.Context, orderID uint, decide DecideFunc) (Result, error)

	// Stats aggregates order counts and current earnings for a deliveryman.
	Stats(ctx context.Context, deliverymanID uint) (Stats, error)
}
