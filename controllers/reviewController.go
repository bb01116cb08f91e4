package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type reviewRequest struct {
	ProductID  uint   `json:"productId" binding:"required"`
	CustomerID uint   `json:"customerId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// SubmitReview records a product review. Only customers with a delivered
// order containing the product may review it, and a resubmission replaces
// the earlier review instead of adding a second one.
func (api *API) SubmitReview(ctx *gin.Context) {
	var review reviewRequest
	if err := ctx.ShouldBindJSON(&review); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var deliveredCount int64
	err := api.DB.Model(&models.Order{}).
		Joins("JOIN order_items oi ON oi.order_id = orders.id").
		Where("orders.customer_id = ? AND oi.product_id = ? AND orders.status = ?",
			review.CustomerID, review.ProductID, models.OrderDelivered).
		Count(&deliveredCount).Error
	if err != nil {
		log.Println("Eligibility check error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if deliveredCount == 0 {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only review products from delivered orders")
		return
	}

	var existing models.Review
	err = api.DB.
		Where("product_id = ? AND customer_id = ?", review.ProductID, review.CustomerID).
		First(&existing).Error

	if err == nil {
		existing.Rating = review.Rating
		existing.Comment = review.Comment
		if err := api.DB.Save(&existing).Error; err != nil {
			log.Println("Review update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update review")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review updated successfully"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	newReview := models.Review{
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}
	if err := api.DB.Create(&newReview).Error; err != nil {
		log.Println("Review creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Review submitted successfully"})
}

// GetProductReviews lists a product's reviews with reviewer display names.
func (api *API) GetProductReviews(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []struct {
		ID           uint   `json:"id"`
		ProductID    uint   `json:"productId"`
		CustomerID   uint   `json:"customerId"`
		CustomerName string `json:"customerName"`
		Rating       int    `json:"rating"`
		Comment      string `json:"comment"`
		CreatedAt    string `json:"createdAt"`
	}
	query := `
		SELECT r.id, r.product_id, r.customer_id, u.fullname AS customer_name,
		       r.rating, r.comment,
		       DATE_FORMAT(r.created_at, '%Y-%m-%d') AS created_at
		FROM reviews r
		LEFT JOIN users u ON r.customer_id = u.id
		WHERE r.product_id = ? AND r.deleted_at IS NULL
		ORDER BY r.created_at DESC`

	if err := api.DB.Raw(query, productId).Scan(&reviews).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

func (api *API) SubmitFeedback(ctx *gin.Context) {
	var feedback models.Feedback
	if err := ctx.ShouldBindJSON(&feedback); err != nil || feedback.Message == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := api.DB.Create(&feedback).Error; err != nil {
		log.Println("Feedback creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Feedback submitted successfully"})
}
