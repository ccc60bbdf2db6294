package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DefaultEndpoint       = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule   = "@every 600s"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultLogFile        = "main.log"
	DefaultChatRatePerMin = 20
	defaultLogLevel       = "debug"
	defaultEnvironment    = "development"
	envPracticumToken     = "PRACTICUM_TOKEN"
	envTelegramToken      = "TELEGRAM_TOKEN"
	envTelegramChatID     = "TELEGRAM_CHAT_ID"
)

// ErrMissingTokens is returned by CheckTokens when a required credential is absent.
var ErrMissingTokens = fmt.Errorf("required tokens are missing")

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string
	TelegramToken     string
	TelegramChatID    int64
	PracticumEndpoint string
	PollSchedule      string
	HTTPTimeout       time.Duration
	LogLevel          string
	Environment       string
	LogFile           string
	LogChatRatePerMin int
	DatabaseURL       string // Optional: enables the notification journal

	rawChatID string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing credentials are not an error here; see CheckTokens.
func Load() (*AppConfig, error) {
	// Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PracticumToken = strings.TrimSpace(os.Getenv(envPracticumToken))
	cfg.TelegramToken = strings.TrimSpace(os.Getenv(envTelegramToken))
	cfg.rawChatID = strings.TrimSpace(os.Getenv(envTelegramChatID))
	if cfg.rawChatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(cfg.rawChatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envTelegramChatID, err)
		}
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}

	cfg.PollSchedule = os.Getenv("POLL_SCHEDULE")
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule // 600 seconds between cycles
	}
	if _, err = cron.ParseStandard(cfg.PollSchedule); err != nil {
		return nil, fmt.Errorf("invalid POLL_SCHEDULE %q: %w", cfg.PollSchedule, err)
	}

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		if cfg.HTTPTimeout <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive, got %s", cfg.HTTPTimeout)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}

	cfg.LogFile = os.Getenv("LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	cfg.LogChatRatePerMin = DefaultChatRatePerMin
	if raw := os.Getenv("LOG_CHAT_RATE_PER_MIN"); raw != "" {
		cfg.LogChatRatePerMin, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_CHAT_RATE_PER_MIN: %w", err)
		}
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	return cfg, nil
}

// CheckTokens reports every required credential that is not set.
func (c *AppConfig) CheckTokens() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, envPracticumToken)
	}
	if c.TelegramToken == "" {
		missing = append(missing, envTelegramToken)
	}
	if c.rawChatID == "" && c.TelegramChatID == 0 {
		missing = append(missing, envTelegramChatID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTokens, strings.Join(missing, ", "))
	}
	return nil
}
