package models

import "gorm.io/gorm"

type Report struct {
	gorm.Model
	ReportedFarmOwnerID uint   `json:"reportedFarmOwnerId"`
	ReporterCustomerID  uint   `json:"reporterCustomerId"`
	Reason              string `json:"reason"`
	ProofURL            string `json:"proofUrl"`
}

type Feedback struct {
	gorm.Model
	UserID  uint   `json:"userId"`
	Message string `json:"message"`
}
