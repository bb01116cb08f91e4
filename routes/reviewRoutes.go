package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func ReviewRoutes(server *gin.Engine, api *controllers.API) {
	server.POST("/reviews", api.SubmitReview)
	server.GET("/reviews/:productId", api.GetProductReviews)
	server.POST("/feedback", api.SubmitFeedback)
	server.POST("/report", api.SubmitReport)
}
