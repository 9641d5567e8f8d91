package database

import (
	"log"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Teacher{},
		&models.Customer{},
		&models.Package{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: storage-level backstop against two active
	// bookings landing on the same teacher slot.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active_slot
		ON bookings (teacher_id, start_time, end_time)
		WHERE status IN ('pending', 'confirmed', 'cancellation_requested')
	`)

	return db
}
