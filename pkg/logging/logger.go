/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the Akaylee Surrogate Evaluator. Provides
structured logrus logging with timestamped log files, JSON and text formats,
and console mirroring for batch evaluation runs.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Config holds the configuration for the logger
type Config struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"` // empty disables file output
	Timestamp bool      `json:"timestamp"`
	Colors    bool      `json:"colors"`
}

// Validate checks the Config for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *Config) Validate() error {
	switch c.Format {
	case LogFormatJSON, LogFormatText:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// DefaultConfig returns the configuration used when the caller passes nil.
func DefaultConfig() *Config {
	return &Config{
		Level:     LogLevelInfo,
		Format:    LogFormatText,
		Timestamp: true,
		Colors:    true,
	}
}

// New creates a configured logrus logger. With an OutputDir set, log lines
// go to a timestamped file in that directory as well as stdout.
func New(config *Config) (*logrus.Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch config.Format {
	case LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	case LogFormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   config.Timestamp,
			TimestampFormat: time.RFC3339,
			ForceColors:     config.Colors,
			DisableColors:   !config.Colors,
		})
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		name := filepath.Join(config.OutputDir, fmt.Sprintf("akaylee-surrogate_%s.log", timestamp))
		file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(io.MultiWriter(os.Stdout, file))
		logger.WithFields(logrus.Fields{
			"log_file": name,
			"level":    config.Level,
			"format":   config.Format,
		}).Info("Akaylee Surrogate logging system initialized")
	}

	return logger, nil
}
