package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/Kagaba/farmlink-api/utils"
	"github.com/gin-gonic/gin"
)

// SubmitReport records a customer's report against a farm owner, with an
// optional proof image.
func (api *API) SubmitReport(ctx *gin.Context) {
	reportedIdStr := ctx.PostForm("reportedFarmOwnerId")
	reporterIdStr := ctx.PostForm("reporterCustomerId")
	reason := ctx.PostForm("reason")

	if reportedIdStr == "" || reporterIdStr == "" || reason == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}

	reportedId, err := strconv.Atoi(reportedIdStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid reportedFarmOwnerId")
		return
	}
	reporterId, err := strconv.Atoi(reporterIdStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid reporterCustomerId")
		return
	}

	proofUrl := ""
	if file, err := ctx.FormFile("image"); err == nil {
		proofUrl, err = utils.SaveUpload(ctx, file, api.UploadDir)
		if err != nil {
			log.Println("Upload error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save proof image")
			return
		}
	}

	report := models.Report{
		ReportedFarmOwnerID: uint(reportedId),
		ReporterCustomerID:  uint(reporterId),
		Reason:              reason,
		ProofURL:            proofUrl,
	}
	if err := api.DB.Create(&report).Error; err != nil {
		if proofUrl != "" {
			utils.RemoveUpload(proofUrl, api.UploadDir)
		}
		log.Println("Report creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit report")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Report submitted successfully"})
}
