package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, api *controllers.API) {
	server.POST("/place-order", api.PlaceOrder)
	server.GET("/get-my-orders/:customerId", api.GetMyOrders)
	server.GET("/get-farmowner-orders/:userId", api.GetFarmownerOrders)
	server.PUT("/update-order-status/:id", api.UpdateOrderStatus)
}
