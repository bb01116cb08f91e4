package initializers

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectToDB opens the MySQL connection and configures the pool. The
// returned handle is passed into the controllers and the lifecycle store;
// there is no package-level database state.
func ConnectToDB() (*gorm.DB, error) {
	dsn := GetEnv("DATABASE_DSN", "root:password@tcp(localhost:3306)/farmlink?charset=utf8mb4&parseTime=True&loc=Local")

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	maxOpen, _ := strconv.Atoi(GetEnv("DATABASE_MAX_OPEN_CONNS", "25"))
	maxIdle, _ := strconv.Atoi(GetEnv("DATABASE_MAX_IDLE_CONNS", "5"))
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
