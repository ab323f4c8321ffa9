package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// AWS / document store
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	SlotsTable        string
	AppointmentsTable string
	ContactInfoTable  string
	MessagesTable     string
	DoctorsTable      string
	BoardingTable     string
	TransportTable    string

	// Blob store
	MediaBucket string

	// Email
	EmailProvider     string
	FromEmail         string
	FromName          string
	BusinessEmail     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// Dashboard cache
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	StatsCacheTTL time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables.
// In development a .env file is loaded first when present.
func Load() *Config {
	if strings.ToLower(getEnv("ENV", "development")) == "development" {
		_ = godotenv.Load()
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		SlotsTable:        getEnv("SLOTS_TABLE", "slots"),
		AppointmentsTable: getEnv("APPOINTMENTS_TABLE", "appointments"),
		ContactInfoTable:  getEnv("CONTACT_INFO_TABLE", "contact_info"),
		MessagesTable:     getEnv("MESSAGES_TABLE", "messages"),
		DoctorsTable:      getEnv("DOCTORS_TABLE", "doctor_details"),
		BoardingTable:     getEnv("BOARDING_TABLE", "boarding_bookings"),
		TransportTable:    getEnv("TRANSPORT_TABLE", "pet_transportation"),

		MediaBucket: getEnv("MEDIA_BUCKET", ""),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "ses"))),
		FromEmail:         getEnv("FROM_EMAIL", ""),
		FromName:          getEnv("FROM_NAME", "BrightPaw Veterinary"),
		BusinessEmail:     getEnv("BUSINESS_EMAIL", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "BrightPaw Veterinary"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		StatsCacheTTL: getEnvAsDuration("STATS_CACHE_TTL", 30*time.Second),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
