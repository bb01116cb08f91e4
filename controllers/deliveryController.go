package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryOrderRow matches the deliveryman dashboard's order card fields.
type DeliveryOrderRow struct {
	ID            uint               `json:"id"`
	CustomerID    uint               `json:"customer_id"`
	FarmownerID   uint               `json:"farmowner_id"`
	TotalCost     decimal.Decimal    `json:"totalCost"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     string             `json:"createdAt"`
	CustomerName  string             `json:"customerName"`
	FarmownerName string             `json:"farmownerName"`
	ProductList   string             `json:"productList"`
	TotalQuantity int                `json:"totalQuantity"`
}

// GetDeliverymen lists the users eligible for assignment: active accounts
// with the DeliveryMan role. The same rule the engine enforces at approval.
func (api *API) GetDeliverymen(ctx *gin.Context) {
	var deliverymen []models.User
	err := api.DB.
		Where("role = ? AND status = ?", models.RoleDeliveryMan, models.StatusActive).
		Find(&deliverymen).Error
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, deliverymen)
}

func (api *API) GetDeliveryOrders(ctx *gin.Context) {
	deliverymanId, err := strconv.Atoi(ctx.Param("deliverymanId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse deliverymanId")
		return
	}

	var orders []DeliveryOrderRow
	query := `
		SELECT
			o.id,
			o.customer_id,
			o.farmowner_id,
			o.total_price AS total_cost,
			o.delivery_address AS address,
			o.contact_number AS phone,
			o.status,
			DATE_FORMAT(o.created_at, '%Y-%m-%d %h:%i %p') AS created_at,
			u1.fullname AS customer_name,
			u2.fullname AS farmowner_name,
			GROUP_CONCAT(CONCAT(p.name, ' (', oi.quantity, ' KG)') SEPARATOR ', ') AS product_list,
			SUM(oi.quantity) AS total_quantity
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN products p ON oi.product_id = p.id
		LEFT JOIN users u1 ON o.customer_id = u1.id
		LEFT JOIN users u2 ON o.farmowner_id = u2.id
		WHERE o.deliveryman_id = ? AND o.deleted_at IS NULL
		GROUP BY o.id, o.customer_id, o.farmowner_id, o.total_price,
			o.delivery_address, o.contact_number, o.status, o.created_at,
			u1.fullname, u2.fullname
		ORDER BY o.created_at DESC`

	if err := api.DB.Raw(query, deliverymanId).Scan(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// DeliverymanUpdateOrder lets the assigned deliveryman mark an order as
// delivered. The engine rejects any other status and any caller whose id
// does not match the stored assignment.
func (api *API) DeliverymanUpdateOrder(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var body struct {
		Status        string `json:"status"`
		DeliverymanID uint   `json:"deliverymanId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.DeliverymanID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	res, err := api.Lifecycle.MarkDelivered(ctx.Request.Context(), uint(orderId), body.DeliverymanID, body.Status)
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, transitionResponse(res, "Order marked as delivered"))
}

func (api *API) DeliverymanStats(ctx *gin.Context) {
	deliverymanId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse deliveryman id")
		return
	}

	stats, err := api.Lifecycle.Stats(ctx.Request.Context(), uint(deliverymanId))
	if err != nil {
		log.Println("Stats error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (api *API) DeliverymanEarnings(ctx *gin.Context) {
	deliverymanId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse deliveryman id")
		return
	}

	var record models.Deliveryman
	err = api.DB.Where("user_id = ?", deliverymanId).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No deliveries yet, nothing accumulated.
		ctx.JSON(http.StatusOK, gin.H{"earnings": decimal.Zero})
		return
	}
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"earnings": record.Earnings})
}

// deliverymanRecord returns the earnings/profile row for a deliveryman user,
// creating it from the user's details on first access.
func (api *API) deliverymanRecord(userId uint) (models.Deliveryman, error) {
	var record models.Deliveryman
	err := api.DB.Where("user_id = ?", userId).First(&record).Error
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Deliveryman{}, err
	}

	var user models.User
	if err := api.DB.First(&user, userId).Error; err != nil {
		return models.Deliveryman{}, err
	}
	if user.Role != models.RoleDeliveryMan {
		return models.Deliveryman{}, gorm.ErrRecordNotFound
	}

	record = models.Deliveryman{
		UserID:   user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		Status:   models.StatusActive,
		Earnings: decimal.Zero,
	}
	if err := api.DB.Create(&record).Error; err != nil {
		return models.Deliveryman{}, err
	}
	return record, nil
}

func (api *API) GetDeliverymanProfile(ctx *gin.Context) {
	deliverymanId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse deliveryman id")
		return
	}

	record, err := api.deliverymanRecord(uint(deliverymanId))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Deliveryman not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}
	ctx.JSON(http.StatusOK, record)
}

func (api *API) UpdateDeliverymanProfile(ctx *gin.Context) {
	deliverymanId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse deliveryman id")
		return
	}

	var body struct {
		Fullname string `json:"fullname"`
		Phone    string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	record, err := api.deliverymanRecord(uint(deliverymanId))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Deliveryman not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	updates := map[string]any{}
	if body.Fullname != "" {
		updates["fullname"] = body.Fullname
	}
	if body.Phone != "" {
		updates["phone"] = body.Phone
	}
	if len(updates) > 0 {
		if err := api.DB.Model(&record).Updates(updates).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Update failed")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": record,
	})
}
