// Package lifecycle governs order status transitions and the one-time
// delivery fee credited to a deliveryman when an order first reaches
// Delivered.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/shopspring/decimal"
)

// DeliveryFee is the flat amount credited per completed delivery,
// independent of order value.
var DeliveryFee = decimal.NewFromInt(50)

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// UpdateOrderStatus is the farm-owner entry point. It validates the
// requested status and, for approvals, the deliveryman being assigned, then
// applies the transition. The first transition into Delivered credits the
// flat fee to the assigned deliveryman; a repeated Delivered request
// succeeds with no further credit.
func (e *Engine) UpdateOrderStatus(ctx context.Context, orderID uint, rawStatus string, deliverymanID *uint) (Result, error) {
	newStatus, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	// Only an approval may carry an assignment, and the assignee must be an
	// active deliveryman.
	assign := newStatus == models.OrderApproved && deliverymanID != nil
	if assign {
		user, err := e.store.User(ctx, *deliverymanID)
		if err != nil {
			return Result{}, fmt.Errorf("%w: deliveryman %d", ErrInvalidDeliveryman, *deliverymanID)
		}
		if user.Role != models.RoleDeliveryMan || user.Status != models.StatusActive {
			return Result{}, fmt.Errorf("%w: user %d is not an active deliveryman", ErrInvalidDeliveryman, user.ID)
		}
	}

	return e.store.Transition(ctx, orderID, func(current models.Order) (Mutation, error) {
		return decideTransition(current, newStatus, deliverymanID)
	})
}

// MarkDelivered is the deliveryman entry point. Only "Delivered" is legal
// here, and the order's stored assignment must match the caller.
func (e *Engine) MarkDelivered(ctx context.Context, orderID uint, deliverymanID uint, rawStatus string) (Result, error) {
	newStatus, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if newStatus != models.OrderDelivered {
		return Result{}, fmt.Errorf("%w: deliveryman may only mark orders as Delivered", ErrInvalidStatus)
	}

	return e.store.Transition(ctx, orderID, func(current models.Order) (Mutation, error) {
		if current.DeliverymanID == nil || *current.DeliverymanID != deliverymanID {
			return Mutation{}, ErrNotAssigned
		}
		return decideTransition(current, models.OrderDelivered, nil)
	})
}

// Stats returns the order counts and earnings for a deliveryman dashboard.
func (e *Engine) Stats(ctx context.Context, deliverymanID uint) (Stats, error) {
	return e.store.Stats(ctx, deliverymanID)
}

// decideTransition encodes the state machine. It runs against the locked
// row, so the prior-status check that keeps the fee credit at most once per
// order holds under concurrent calls.
func decideTransition(current models.Order, newStatus models.OrderStatus, deliverymanID *uint) (Mutation, error) {
	// Re-marking a delivered order as delivered is answered as a success
	// with no earnings change, so delivery confirmations can be retried.
	if current.Status == models.OrderDelivered && newStatus == models.OrderDelivered {
		return Mutation{Status: models.OrderDelivered}, nil
	}

	if !current.Status.CanTransition(newStatus) {
		return Mutation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	m := Mutation{Status: newStatus}
	if newStatus == models.OrderApproved && deliverymanID != nil {
		m.DeliverymanID = deliverymanID
	}
	if newStatus == models.OrderDelivered && current.DeliverymanID != nil {
		m.CreditFee = true
	}
	return m, nil
}
