// Package config provides the command line defaults loaded from environment variables.
//
// A .env file in the working directory is loaded first, if present. Command
// line flags override every value.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the defaults of the wrap command.
type Config struct {
	// Trades is the trade ledger file (.csv, .jsonl or .json).
	Trades string
	// TradesPath is the JSONPath of the trade records in a .json ledger.
	TradesPath string
	// Banking is the banking ledger file.
	Banking string
	// DB is an optional SQLite database used instead of the ledger files.
	DB string
	// Currency is the reporting currency of trade amounts.
	Currency string
	// LogLevel is the logrus level name.
	LogLevel string
	// Model is the Gemini model used by the assistant.
	Model string
}

// Load reads the configuration from the environment.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		Trades:     getEnv("WRAPPED_TRADES", "trading_sample_data.csv"),
		TradesPath: getEnv("WRAPPED_TRADES_PATH", ""),
		Banking:    getEnv("WRAPPED_BANKING", "banking_sample_data.csv"),
		DB:         getEnv("WRAPPED_DB", ""),
		Currency:   strings.ToUpper(getEnv("WRAPPED_CURRENCY", "EUR")),
		LogLevel:   getEnv("WRAPPED_LOG_LEVEL", "warn"),
		Model:      getEnv("WRAPPED_MODEL", "gemini-2.5-flash"),
	}
}

// ConfigureLogging sets logrus' standard logger level and format.
func (c *Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("WRAPPED_LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetOutput(os.Stderr)
	return nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
