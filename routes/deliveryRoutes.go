package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(server *gin.Engine, api *controllers.API) {
	server.GET("/get-deliverymen", api.GetDeliverymen)
	server.GET("/get-delivery-orders/:deliverymanId", api.GetDeliveryOrders)

	deliveryman := server.Group("/deliveryman")
	{
		deliveryman.PUT("/update-order/:orderId", api.DeliverymanUpdateOrder)
		deliveryman.GET("/stats/:id", api.DeliverymanStats)
		deliveryman.GET("/earnings/:id", api.DeliverymanEarnings)
		deliveryman.GET("/profile/:id", api.GetDeliverymanProfile)
		deliveryman.PUT("/profile/:id", api.UpdateDeliverymanProfile)
	}
}
