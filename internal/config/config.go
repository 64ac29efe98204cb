package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	OTP       OTPConfig
	RateLimit RateLimitConfig
	S3        S3Config
	LLM       LLMConfig
	OAuth     OAuthConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port           int
	Environment    string
	BaseURL        string
	FrontendURL    string
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console, json
}

type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig is optional; an empty Addr keeps the OTP cooldown in process.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
	ResetTicketTTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type OTPConfig struct {
	Length      int
	TTL         time.Duration
	Cooldown    time.Duration
	MaxAttempts int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string
}

type LLMConfig struct {
	APIKey string
	Model  string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	SessionKey         string
}

type SchedulerConfig struct {
	OTPPurgeSpec     string
	AccountStatsSpec string
}

// Load reads configuration from the environment, loading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("PORT", 8000),
			Environment:    getEnv("ENVIRONMENT", "development"),
			BaseURL:        strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:8000"), "/"),
			FrontendURL:    strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "skilltwin"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 72*time.Hour),
			ResetTicketTTL: getEnvDuration("JWT_RESET_TICKET_TTL", 10*time.Minute),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", getEnv("SMTP_USERNAME", "")),
		},
		OTP: OTPConfig{
			Length:      getEnvInt("OTP_LENGTH", 6),
			TTL:         getEnvDuration("OTP_TTL", 10*time.Minute),
			Cooldown:    getEnvDuration("OTP_COOLDOWN", time.Minute),
			MaxAttempts: getEnvInt("OTP_MAX_ATTEMPTS", 5),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 3),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 5),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         strings.TrimSuffix(getEnv("AWS_S3_BASE_URL", ""), "/"),
		},
		LLM: LLMConfig{
			APIKey: getEnv("API_KEY", ""),
			Model:  getEnv("LLM_MODEL", "gemini-2.5-flash"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			SessionKey:         getEnv("SESSION_KEY", ""),
		},
		Scheduler: SchedulerConfig{
			OTPPurgeSpec:     getEnv("SCHEDULE_OTP_PURGE", "@every 15m"),
			AccountStatsSpec: getEnv("SCHEDULE_ACCOUNT_STATS", "@every 30s"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		errs = append(errs, errors.New("OTP_LENGTH must be between 4 and 10"))
	}
	if c.OTP.TTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	if c.OTP.MaxAttempts < 1 {
		errs = append(errs, errors.New("OTP_MAX_ATTEMPTS must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// SMTPConfigured reports whether outgoing mail can actually be delivered.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.Username != "" && c.SMTP.Password != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid number in environment, using default")
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration in environment, using default")
		return fallback
	}
	return d
}

func parseSlice(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
