package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deliveryman is the per-deliveryman earnings and profile record. It is
// keyed by the user id; the email column is display data only. The row is
// created lazily on the first delivered order or first profile access.
type Deliveryman struct {
	gorm.Model
	UserID   uint            `json:"userId" gorm:"uniqueIndex"`
	Fullname string          `json:"fullname"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Status   UserStatus      `json:"status" gorm:"default:active"`
	Earnings decimal.Decimal `json:"earnings" gorm:"type:decimal(10,2)"`
}
