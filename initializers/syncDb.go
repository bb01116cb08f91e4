package initializers

import (
	"log"

	"github.com/Kagaba/farmlink-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Deliveryman{},
		&models.Report{},
		&models.Review{},
		&models.Feedback{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
