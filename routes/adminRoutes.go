package routes

import (
	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine, api *controllers.API) {
	admin := server.Group("/admin")
	{
		admin.GET("/stats", api.AdminStats)
		admin.GET("/users", api.AdminListUsers)
		admin.DELETE("/users/:id", api.AdminDeleteUser)
		admin.PUT("/users/restrict/:id", api.AdminRestrictUser)
		admin.GET("/products", api.AdminListProducts)
		admin.DELETE("/products/:id", api.DeleteProduct)
		admin.GET("/orders", api.AdminListOrders)
		admin.DELETE("/orders/:id", api.AdminDeleteOrder)
		admin.GET("/reports", api.AdminListReports)
		admin.DELETE("/reports/:id", api.AdminDeleteReport)
		admin.DELETE("/reports/delete/:userId", api.AdminDeleteReportsForUser)
		admin.GET("/feedbacks", api.AdminListFeedbacks)
		admin.DELETE("/feedbacks/:id", api.AdminDeleteFeedback)
	}
}
