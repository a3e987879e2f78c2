package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	Port          string

	OpenAIAPIKey string

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	MailerFrom string
	MailerName string

	ReminderSweepInterval time.Duration
	ProviderTimeout       time.Duration
}

func Load() *Config {
	// Optional .env for local development; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "giftwise"),
		DBPassword:    getEnv("DB_PASSWORD", "giftwise"),
		DBName:        getEnv("DB_NAME", "giftwise"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		Port:          getEnv("PORT", "8080"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		SMTPHost:   getEnv("SMTP_HOST", ""),
		SMTPPort:   getEnv("SMTP_PORT", "587"),
		SMTPUser:   getEnv("SMTP_USER", ""),
		SMTPPass:   getEnv("SMTP_PASSWORD", ""),
		MailerFrom: getEnv("MAILER_FROM_EMAIL", "noreply@giftwiseapp.com"),
		MailerName: getEnv("MAILER_FROM_NAME", "GiftWise"),

		ReminderSweepInterval: getDuration("REMINDER_SWEEP_INTERVAL", 60*time.Second),
		ProviderTimeout:       getDuration("PROVIDER_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
