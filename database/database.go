package database

import (
	"fmt"
	"log"
	"os"

	"gudbro-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=gudbro_venues port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.OperatingHours{},
		&models.ScheduleOverride{},
		&models.Event{},
	)
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@gudbro.com"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// CreateDefaultLocation seeds a first venue with a standard weekly schedule
// (Mon-Sat open, Sunday closed) so the calendar endpoints work out of the box.
func CreateDefaultLocation(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	location := models.Location{
		Name:     "Gudbro Main Venue",
		Slug:     "gudbro-main",
		Timezone: "Asia/Ho_Chi_Minh",
		IsActive: true,
	}
	if err := db.Create(&location).Error; err != nil {
		return err
	}

	for day := 0; day < 7; day++ {
		hours := models.OperatingHours{
			LocationID: location.ID,
			DayOfWeek:  day,
			OpenTime:   "09:00",
			CloseTime:  "22:00",
			IsClosed:   day == 0, // closed Sundays
		}
		if err := db.Create(&hours).Error; err != nil {
			return err
		}
	}

	log.Printf("Default location created: %s", location.Slug)
	return nil
}
