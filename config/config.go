package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	ClinicTimezone    string `mapstructure:"CLINIC_TIMEZONE"`

	// MongoDB configuration.
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Token configuration.
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	VerifyTokenTTL time.Duration `mapstructure:"VERIFY_TOKEN_TTL"`
	ResetTokenTTL  time.Duration `mapstructure:"RESET_TOKEN_TTL"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int           `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	SlotLockTTL   time.Duration `mapstructure:"SLOT_LOCK_TTL"`

	// Payments.
	StripeKey       string `mapstructure:"STRIPE_KEY"`
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY"`

	// Outbound email.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	MailFromName   string `mapstructure:"MAIL_FROM_NAME"`
	MailAsync      bool   `mapstructure:"MAIL_ASYNC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("CLINIC_TIMEZONE", "UTC")

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "halo")
	viper.SetDefault("MONGO_TRANSACTIONS", true)

	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SESSION_TTL", time.Hour)
	viper.SetDefault("VERIFY_TOKEN_TTL", time.Hour)
	viper.SetDefault("RESET_TOKEN_TTL", 5*time.Minute)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("SLOT_LOCK_TTL", 5*time.Second)

	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "no-reply@halo.local")
	viper.SetDefault("MAIL_FROM_NAME", "The HALO Team")
	viper.SetDefault("MAIL_ASYNC", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ClinicLocation resolves the time zone used for calendar-day comparisons.
func ClinicLocation() *time.Location {
	if AppConfig.ClinicTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.ClinicTimezone)
	if err != nil {
		log.Printf("invalid CLINIC_TIMEZONE %q, falling back to UTC", AppConfig.ClinicTimezone)
		return time.UTC
	}
	return loc
}
