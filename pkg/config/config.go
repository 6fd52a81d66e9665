package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	MigrationsDir string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string
	RefreshTokenSecret         string

	// Redis (entity cache + reversal locks). Empty address disables both.
	RedisAddress  string
	RedisPassword string
	CacheTTL      time.Duration

	// Kafka change-event mirror. Empty broker list disables publishing.
	KafkaBrokers     []string
	KafkaChangeTopic string

	// Vision document extraction
	ExtractionAPIKey  string
	ExtractionBaseURL string
	ExtractionModel   string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PostHogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "bizdesk-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_CHANGE_TOPIC", "bizdesk.changes")
	viper.SetDefault("EXTRACTION_API_KEY", "")
	viper.SetDefault("EXTRACTION_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("EXTRACTION_MODEL", "gpt-4o-mini")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsDir = viper.GetString("MIGRATIONS_DIR")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTExpiryDuration = viper.GetDuration("JWT_EXPIRY_DURATION")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RefreshTokenExpiryDuration = viper.GetDuration("REFRESH_TOKEN_EXPIRY_DURATION")
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.CacheTTL = viper.GetDuration("CACHE_TTL")
	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaChangeTopic = viper.GetString("KAFKA_CHANGE_TOPIC")
	cfg.ExtractionAPIKey = viper.GetString("EXTRACTION_API_KEY")
	cfg.ExtractionBaseURL = viper.GetString("EXTRACTION_BASE_URL")
	cfg.ExtractionModel = viper.GetString("EXTRACTION_MODEL")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
