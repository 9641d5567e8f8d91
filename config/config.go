package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	DatabaseDSN        string
	RabbitURL          string
	Environment        string
	BookingAdvanceDays int
	SweepInterval      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseDSN:        getEnv("DB_DSN", "host=localhost user=postgres password=postgres dbname=studio port=5432 sslmode=disable"),
		RabbitURL:          os.Getenv("RABBITMQ_URL"),
		Environment:        getEnv("ENV", "development"),
		BookingAdvanceDays: getEnvInt("BOOKING_ADVANCE_DAYS", 60),
		SweepInterval:      time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 15)) * time.Minute,
	}

	return cfg
}

func (c *Config) DSN() string {
	return c.DatabaseDSN
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
