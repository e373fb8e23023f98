package config

import (
	"fmt"
	"log"
	"os"

	"healthcard-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the shared connection used by handlers and the sweeper.
var DB *gorm.DB

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConnectDB opens the MySQL connection from env components and runs the
// schema migration. Fatal on failure: the API is useless without a store.
func ConnectDB() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getenv("DB_USER", "root"),
		getenv("DB_PASSWORD", ""),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_NAME", "healthcard"),
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database connected")
}

// Migrate keeps the schema in sync with the models. Split out so tests can
// run it against their own connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.MedicalRecord{},
		&models.Prescription{},
	)
}
