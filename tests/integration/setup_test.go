//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "studio_booking_test"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS packages")
	testDB.Exec("DROP TABLE IF EXISTS customers")
	testDB.Exec("DROP TABLE IF EXISTS teachers")

	if err := testDB.AutoMigrate(
		&models.Teacher{},
		&models.Customer{},
		&models.Package{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active_slot
		ON bookings (teacher_id, start_time, end_time)
		WHERE status IN ('pending', 'confirmed', 'cancellation_requested')
	`)

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS packages")
	testDB.Exec("DROP TABLE IF EXISTS customers")
	testDB.Exec("DROP TABLE IF EXISTS teachers")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM packages")
	testDB.Exec("DELETE FROM customers")
	testDB.Exec("DELETE FROM teachers")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
