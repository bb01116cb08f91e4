package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminOrderRow is the moderation view of an order with its aggregated items.
type AdminOrderRow struct {
	ID              uint               `json:"id"`
	CustomerID      uint               `json:"customerId"`
	FarmownerID     uint               `json:"farmownerId"`
	DeliverymanID   *uint              `json:"deliverymanId"`
	Status          models.OrderStatus `json:"status"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	DeliveryAddress string             `json:"deliveryAddress"`
	ContactNumber   string             `json:"contactNumber"`
	CreatedAt       time.Time          `json:"createdAt"`
	Products        string             `json:"products"`
	TotalQuantity   int                `json:"totalQuantity"`
}

// AdminStats counts the moderated entities for the dashboard header.
func (api *API) AdminStats(ctx *gin.Context) {
	var userCount, productCount, orderCount int64

	if err := api.DB.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	api.DB.Model(&models.Product{}).Count(&productCount)
	api.DB.Model(&models.Order{}).Count(&orderCount)

	ctx.JSON(http.StatusOK, gin.H{
		"userCount":    userCount,
		"productCount": productCount,
		"orderCount":   orderCount,
	})
}

func (api *API) AdminListUsers(ctx *gin.Context) {
	var users []models.User
	if err := api.DB.Find(&users).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (api *API) AdminDeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	if err := api.DB.Delete(&models.User{}, userId).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Delete failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// AdminRestrictUser applies a moderation action to a user account.
func (api *API) AdminRestrictUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	var body struct {
		Action string `json:"action"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	status, err := models.StatusForRestrictAction(body.Action)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid action")
		return
	}

	result := api.DB.Model(&models.User{}).Where("id = ?", userId).Update("status", status)
	if result.Error != nil {
		log.Println("Status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Status update failed")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "User status updated to '" + string(status) + "' successfully",
	})
}

func (api *API) AdminListProducts(ctx *gin.Context) {
	var products []models.Product
	if err := api.DB.Find(&products).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (api *API) AdminListOrders(ctx *gin.Context) {
	var orders []AdminOrderRow
	query := `
		SELECT
			o.id,
			o.customer_id,
			o.farmowner_id,
			o.deliveryman_id,
			o.status,
			o.total_price,
			o.delivery_address,
			o.contact_number,
			o.created_at,
			GROUP_CONCAT(CONCAT(p.name, ' (', oi.quantity, ')') SEPARATOR ', ') AS products,
			SUM(oi.quantity) AS total_quantity
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE o.deleted_at IS NULL
		GROUP BY o.id, o.customer_id, o.farmowner_id, o.deliveryman_id,
			o.status, o.total_price, o.delivery_address, o.contact_number, o.created_at
		ORDER BY o.id DESC`

	if err := api.DB.Raw(query).Scan(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (api *API) AdminDeleteOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	if err := api.DB.Delete(&models.Order{}, orderId).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Delete failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (api *API) AdminListReports(ctx *gin.Context) {
	var reports []models.Report
	if err := api.DB.Find(&reports).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

func (api *API) AdminDeleteReport(ctx *gin.Context) {
	reportId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse report id")
		return
	}

	result := api.DB.Delete(&models.Report{}, reportId)
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Report not found")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// AdminDeleteReportsForUser purges every report filed against one user.
func (api *API) AdminDeleteReportsForUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse user id")
		return
	}

	if err := api.DB.Where("reported_farm_owner_id = ?", userId).Delete(&models.Report{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete reports")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All reports for this user have been deleted"})
}

func (api *API) AdminListFeedbacks(ctx *gin.Context) {
	var feedbacks []models.Feedback
	if err := api.DB.Find(&feedbacks).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, feedbacks)
}

func (api *API) AdminDeleteFeedback(ctx *gin.Context) {
	feedbackId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse feedback id")
		return
	}

	if err := api.DB.Delete(&models.Feedback{}, feedbackId).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete feedback")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
