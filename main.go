package main

import (
	"log"
	"time"

	"github.com/Kagaba/farmlink-api/controllers"
	"github.com/Kagaba/farmlink-api/initializers"
	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/Kagaba/farmlink-api/routes"
	"github.com/Kagaba/farmlink-api/stores"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()

	db, err := initializers.ConnectToDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal(err)
	}

	uploadDir := initializers.GetEnv("UPLOAD_DIR", "./uploads")
	engine := lifecycle.NewEngine(stores.NewGormStore(db))
	api := controllers.NewAPI(db, engine, uploadDir)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server.Static("/uploads", uploadDir)

	routes.DefaultRoutes(server, api)
	routes.AuthRoutes(server, api)
	routes.ProductRoutes(server, api)
	routes.OrderRoutes(server, api)
	routes.DeliveryRoutes(server, api)
	routes.ReviewRoutes(server, api)
	routes.AdminRoutes(server, api)

	server.Run(":" + initializers.GetEnv("PORT", "5000"))
}
