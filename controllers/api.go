package controllers

import (
	"github.com/Kagaba/farmlink-api/lifecycle"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles the store handle and the order lifecycle engine so handlers
// receive their dependencies explicitly instead of reaching for globals.
type API struct {
	DB        *gorm.DB
	Lifecycle *lifecycle.Engine
	UploadDir string
}

func NewAPI(db *gorm.DB, engine *lifecycle.Engine, uploadDir string) *API {
	return &API{DB: db, Lifecycle: engine, UploadDir: uploadDir}
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// respondWithError includes the underlying error text alongside the message.
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}
