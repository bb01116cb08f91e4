package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	CustomerID      uint            `json:"customerId"`
	FarmownerID     uint            `json:"farmownerId"`
	DeliverymanID   *uint           `json:"deliverymanId"`
	Status          OrderStatus     `json:"status" gorm:"default:Pending"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2)"`
	DeliveryAddress string          `json:"deliveryAddress"`
	ContactNumber   string          `json:"contactNumber"`
	PaymentMethod   string          `json:"paymentMethod"`
	Note            string          `json:"note"`
	Shipping        datatypes.JSON  `json:"shipping"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
}
