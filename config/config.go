package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/elidrum/Nutrease/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Settings holds the tunables read from the environment once at startup.
// Threshold defaults only keep a dev instance bootable; deployments are
// expected to set them explicitly.
type Settings struct {
	DatasetPath string

	// Minimum catalog match score accepted by the resolver.
	MatchThreshold float64

	// Per-nutrient daily flag thresholds, in grams.
	LactoseThresholdG  float64
	SorbitolThresholdG float64
	GlutenThresholdG   float64
}

func LoadSettings() Settings {
	return Settings{
		DatasetPath:        envOr("DATASET_PATH", "data/alimentazione.csv"),
		MatchThreshold:     envFloat("MATCH_THRESHOLD", 0.72),
		LactoseThresholdG:  envFloat("LACTOSE_THRESHOLD_G", 10),
		SorbitolThresholdG: envFloat("SORBITOL_THRESHOLD_G", 5),
		GlutenThresholdG:   envFloat("GLUTEN_THRESHOLD_G", 0.1),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate is separate so tests can apply the same schema to their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.DiaryEntry{},
		&models.Connection{},
		&models.ChatMessage{},
		&models.Alert{},
	)
}
