package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	BusinessTimezone  string `mapstructure:"BUSINESS_TIMEZONE"`

	// Document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	StoreDriver  string `mapstructure:"STORE_DRIVER"`

	// Redis configuration.
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB       int           `mapstructure:"REDIS_CONTEXT_DB"`
	RedisReminderQueueDB int           `mapstructure:"REDIS_REMINDER_DB"`
	ChatContextTTL       time.Duration `mapstructure:"CHAT_CONTEXT_TTL"`

	// Gemini.
	GeminiAPIKey           string        `mapstructure:"GEMINI_API_KEY"`
	GeminiBookingModel     string        `mapstructure:"GEMINI_BOOKING_MODEL"`
	GeminiChatModel        string        `mapstructure:"GEMINI_CHAT_MODEL"`
	ModelTimeout           time.Duration `mapstructure:"MODEL_TIMEOUT"`
	MaxAssistantIterations int           `mapstructure:"MAX_ASSISTANT_ITERATIONS"`

	// Notifications.
	SendGridAPIKey          string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail       string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName        string `mapstructure:"SENDGRID_FROM_NAME"`
	OperatorEmail           string `mapstructure:"OPERATOR_EMAIL"`
	TwilioAccountSID        string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken         string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber        string `mapstructure:"TWILIO_FROM_NUMBER"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FCMOperatorTopic        string `mapstructure:"FCM_OPERATOR_TOPIC"`

	// Reminders.
	ReminderEnabled  bool          `mapstructure:"REMINDER_ENABLED"`
	ReminderLeadTime time.Duration `mapstructure:"REMINDER_LEAD_TIME"`

	// Admin listing guard; empty disables it.
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`

	// Tracing.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

var AppConfig Config

func LoadConfig() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with process environment")
	}

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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BUSINESS_TIMEZONE", "Local")

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cafe")
	viper.SetDefault("STORE_DRIVER", "mongo")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("CHAT_CONTEXT_TTL", "30m")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_BOOKING_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_CHAT_MODEL", "gemini-2.5-flash")
	viper.SetDefault("MODEL_TIMEOUT", "30s")
	viper.SetDefault("MAX_ASSISTANT_ITERATIONS", 5)

	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("SENDGRID_FROM_EMAIL", "")
	viper.SetDefault("SENDGRID_FROM_NAME", "Booking System")
	viper.SetDefault("OPERATOR_EMAIL", "")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_FROM_NUMBER", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("FCM_OPERATOR_TOPIC", "")

	viper.SetDefault("REMINDER_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD_TIME", "2h")

	viper.SetDefault("ADMIN_JWT_SECRET", "")

	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BusinessLocation resolves BUSINESS_TIMEZONE, falling back to the server's zone.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.BusinessTimezone)
	if err != nil {
		log.Printf("Unknown BUSINESS_TIMEZONE %q, using local time", AppConfig.BusinessTimezone)
		return time.Local
	}
	return loc
}
