package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, api *controllers.API) {
	server.POST("/signup", api.Signup)
	server.POST("/login", api.Login)
	server.GET("/users/:id", api.GetUser)
	server.PUT("/users/:id", api.UpdateUser)
}
