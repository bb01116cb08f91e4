package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, api *controllers.API) {
	server.GET("/", api.GetHome)
}
