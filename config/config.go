package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"familydiet/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	JWTSecret             string
	HouseholdPasscodeHash string
	SessionTTL            time.Duration
	AllowedOrigins        []string

	AWSRegion      string
	S3Bucket       string
	S3PublicURL    string
	SESSender      string
	SNSPlatformARN string
}

// AWSEnabled reports whether any AWS integration is configured.
func (c *Config) AWSEnabled() bool {
	return c.S3Bucket != "" || c.SESSender != "" || c.SNSPlatformARN != ""
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		DBDriver:              getenv("DB_DRIVER", "postgres"),
		DBHost:                getenv("DB_HOST", "localhost"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBPort:                getenv("DB_PORT", "5432"),
		SQLitePath:            getenv("SQLITE_PATH", "familydiet.db"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		HouseholdPasscodeHash: os.Getenv("HOUSEHOLD_PASSCODE_HASH"),
		AWSRegion:             getenv("AWS_REGION", "us-east-1"),
		S3Bucket:              os.Getenv("S3_BUCKET"),
		S3PublicURL:           os.Getenv("S3_PUBLIC_URL"),
		SESSender:             os.Getenv("SES_SENDER"),
		SNSPlatformARN:        os.Getenv("SNS_PLATFORM_APPLICATION_ARN"),
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "72h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.HouseholdPasscodeHash == "" {
		return nil, errors.New("HOUSEHOLD_PASSCODE_HASH is required")
	}
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBUser == "" || cfg.DBName == "" {
			return nil, errors.New("DB_USER and DB_NAME are required for postgres")
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func (c *Config) dialector() gorm.Dialector {
	if c.DBDriver == "sqlite" {
		return sqlite.Open(c.SQLitePath)
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	return postgres.Open(dsn)
}

// OpenDB connects and migrates every model.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.dialector(), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.FamilyMember{},
		&models.DailyDietPlan{},
		&models.ConsumptionEntry{},
		&models.GroceryPlan{},
		&models.HouseholdDevice{},
	)
	if err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}
