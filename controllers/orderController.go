package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type orderItemRequest struct {
	ProductID uint            `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type placeOrderRequest struct {
	UserID        uint               `json:"userId" binding:"required"`
	Items         []orderItemRequest `json:"items" binding:"required"`
	Shipping      datatypes.JSON     `json:"shipping"`
	TotalCost     decimal.Decimal    `json:"totalCost"`
	Phone         string             `json:"phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	PaymentMethod string             `json:"paymentMethod"`
	Note          string             `json:"note"`
}

// CustomerOrderRow matches the field names the customer dashboard renders.
type CustomerOrderRow struct {
	ID            uint               `json:"id"`
	CustomerID    uint               `json:"customer_id"`
	FarmownerID   uint               `json:"farmowner_id"`
	FarmownerName string             `json:"farmownerName"`
	ProductName   string             `json:"productName"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// FarmownerOrderRow matches the field names the farm owner dashboard renders.
type FarmownerOrderRow struct {
	ID            uint               `json:"id"`
	CustomerID    uint               `json:"customer_id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	DeliverymanID *uint              `json:"deliveryman_id"`
	ProductName   string             `json:"productName"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
}

// PlaceOrder creates an order from a checkout cart. The order row and every
// item row are written in a single transaction; any failure rolls the whole
// order back.
func (api *API) PlaceOrder(ctx *gin.Context) {
	var orderInfo placeOrderRequest
	if err := ctx.ShouldBindJSON(&orderInfo); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}
	if len(orderInfo.Items) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	// The farm owner is derived from the first item's product.
	var firstProduct models.Product
	if err := api.DB.First(&firstProduct, orderInfo.Items[0].ProductID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product")
		return
	}

	order := models.Order{
		CustomerID:      orderInfo.UserID,
		FarmownerID:     firstProduct.UserID,
		Status:          models.OrderPending,
		TotalPrice:      orderInfo.TotalCost,
		DeliveryAddress: orderInfo.Address,
		ContactNumber:   orderInfo.Phone,
		PaymentMethod:   orderInfo.PaymentMethod,
		Note:            orderInfo.Note,
		Shipping:        orderInfo.Shipping,
	}

	err := api.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range orderInfo.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"orderId": order.ID,
	})
}

func (api *API) GetMyOrders(ctx *gin.Context) {
	customerId, err := strconv.Atoi(ctx.Param("customerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse customerId")
		return
	}

	var orders []CustomerOrderRow
	query := `
		SELECT
			o.id,
			o.customer_id,
			o.farmowner_id,
			u.fullname AS farmowner_name,
			GROUP_CONCAT(CONCAT(p.name, ' (', oi.quantity, ')') SEPARATOR ', ') AS product_name,
			SUM(oi.quantity) AS total_quantity,
			SUM(oi.unit_price * oi.quantity) AS total_price,
			o.delivery_address AS address,
			o.contact_number AS phone,
			o.status,
			o.created_at
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		JOIN users u ON o.farmowner_id = u.id
		WHERE o.customer_id = ? AND o.deleted_at IS NULL
		GROUP BY o.id, o.customer_id, o.farmowner_id, u.fullname,
			o.delivery_address, o.contact_number, o.status, o.created_at
		ORDER BY o.created_at DESC`

	if err := api.DB.Raw(query, customerId).Scan(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (api *API) GetFarmownerOrders(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var orders []FarmownerOrderRow
	query := `
		SELECT
			o.id,
			o.customer_id,
			u.fullname AS customer_name,
			u.email AS customer_email,
			o.delivery_address AS address,
			o.contact_number AS phone,
			o.status,
			o.created_at,
			o.deliveryman_id,
			GROUP_CONCAT(CONCAT(p.name, ' (', oi.quantity, ' KG)') SEPARATOR ', ') AS product_name,
			SUM(oi.quantity) AS total_quantity,
			SUM(oi.unit_price * oi.quantity) AS total_price
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN products p ON oi.product_id = p.id
		LEFT JOIN users u ON o.customer_id = u.id
		WHERE o.farmowner_id = ? AND o.deleted_at IS NULL
		GROUP BY o.id, o.customer_id, u.fullname, u.email, o.delivery_address,
			o.contact_number, o.status, o.created_at, o.deliveryman_id
		ORDER BY o.created_at DESC`

	if err := api.DB.Raw(query, userId).Scan(&orders).Error; err != nil {
		log.Println("Get farmowner orders error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus is the farm owner's entry into the order lifecycle
// engine: approve (optionally assigning a deliveryman), cancel, or deliver.
func (api *API) UpdateOrderStatus(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
		return
	}

	var body struct {
		Status        string `json:"status"`
		DeliverymanID *uint  `json:"deliverymanId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	res, err := api.Lifecycle.UpdateOrderStatus(ctx.Request.Context(), uint(orderId), body.Status, body.DeliverymanID)
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, transitionResponse(res, "Order status updated successfully"))
}

// transitionResponse reports the transition outcome, including whether this
// call credited the delivery fee.
func transitionResponse(res lifecycle.Result, message string) gin.H {
	resp := gin.H{
		"message":          message,
		"status":           res.Order.Status,
		"earningsCredited": res.Credited,
	}
	if res.Credited {
		resp["earnings"] = res.Earnings
		return resp
	}
	if res.Order.Status == models.OrderDelivered {
		if res.Order.DeliverymanID == nil {
			resp["message"] = "Order delivered, but no deliveryman is assigned. No earnings credited."
		} else {
			resp["message"] = "Order already delivered. No new earnings credited."
		}
	}
	return resp
}

func respondLifecycleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrOrderNotFound),
		errors.Is(err, lifecycle.ErrDeliverymanNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrNotAssigned):
		sendErrorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidStatus),
		errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrInvalidDeliveryman):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		log.Println("Order transition error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
	}
}
