package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, api *controllers.API) {
	server.POST("/add-product", api.AddProduct)
	server.PUT("/update-product/:id", api.UpdateProduct)
	server.GET("/get-products", api.GetProducts)
	server.GET("/get-product/:identifier", api.GetProduct)
	server.GET("/get-my-products/:userId", api.GetMyProducts)
	server.DELETE("/delete-product/:id", api.DeleteProduct)
}
