// internal/infra/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
// Records go to stdout and, when cfg.LogFile is set, are appended to that file.
// The returned closer releases the log file.
func Init(cfg *config.AppConfig) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	Log.SetOutput(os.Stdout) // Default output

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		Log.SetOutput(io.MultiWriter(f, os.Stdout))
		closer = f
	}

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'debug'. Error: %v", cfg.LogLevel, err)
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(level)
	}

	// Set Log Formatter
	if strings.ToLower(cfg.Environment) == "production" || strings.ToLower(cfg.Environment) == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true, // The same stream is written to the log file
		})
	}

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
	return closer, nil
}

// Named returns an entry tagged with the component name.
func Named(name string) *logrus.Entry {
	return Log.WithField(FieldLogger, name)
}

// FieldLogger is the field carrying the component name of a record.
const FieldLogger = "logger"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
