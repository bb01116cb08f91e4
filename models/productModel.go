package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	UserID      uint            `json:"userId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	OwnerEmail  string          `json:"owner_email"`
}
