package models

import "fmt"

// OrderStatus is the lifecycle state of an order. Transitions are restricted
// to the edges checked by CanTransition; Delivered and Cancelled are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderApproved  OrderStatus = "Approved"
	OrderCancelled OrderStatus = "Cancelled"
	OrderDelivered OrderStatus = "Delivered"
)

// ParseOrderStatus converts a raw string into an OrderStatus, rejecting
// anything outside the four known values.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%q is not a valid order status", raw)
	}
	return status, nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderApproved, OrderCancelled, OrderDelivered:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether the edge s -> next exists.
//
//	Pending  ──> Approved ──> Delivered
//	   │             │
//	   └──> Cancelled <──┘
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderApproved || next == OrderCancelled
	case OrderApproved:
		return next == OrderDelivered || next == OrderCancelled
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// UserRole distinguishes the four dashboards of the marketplace.
type UserRole string

const (
	RoleCustomer    UserRole = "Customer"
	RoleOwner       UserRole = "Owner"
	RoleDeliveryMan UserRole = "DeliveryMan"
	RoleAdmin       UserRole = "Admin"
)

func ParseUserRole(raw string) (UserRole, error) {
	role := UserRole(raw)
	if !role.Valid() {
		return "", fmt.Errorf("%q is not a valid role", raw)
	}
	return role, nil
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleDeliveryMan, RoleAdmin:
		return true
	}
	return false
}

// UserStatus is the moderation state set by the admin dashboard.
type UserStatus string

const (
	StatusActive         UserStatus = "active"
	StatusRestricted     UserStatus = "restricted"
	StatusBlockedBuying  UserStatus = "blocked_buying"
	StatusBlockedSelling UserStatus = "blocked_selling"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusRestricted, StatusBlockedBuying, StatusBlockedSelling:
		return true
	}
	return false
}

// StatusForRestrictAction maps an admin moderation action to the user status
// it applies. Unknown actions return an error.
func StatusForRestrictAction(action string) (UserStatus, error) {
	switch action {
	case "block":
		return StatusRestricted, nil
	case "unblock":
		return StatusActive, nil
	case "block_buying":
		return StatusBlockedBuying, nil
	case "block_selling":
		return StatusBlockedSelling, nil
	}
	return "", fmt.Errorf("%q is not a valid action", action)
}
