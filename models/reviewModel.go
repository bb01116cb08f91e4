package models

import "gorm.io/gorm"

// Review is unique per (product, customer); resubmitting replaces the
// earlier rating and comment.
type Review struct {
	gorm.Model
	ProductID  uint   `json:"productId" gorm:"uniqueIndex:idx_product_customer"`
	CustomerID uint   `json:"customerId" gorm:"uniqueIndex:idx_product_customer"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
