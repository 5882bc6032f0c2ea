/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Surrogate Evaluator commands.
Provides common configuration loading, logging setup, and JSON input loaders
used across all command implementations.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/kleascm/akaylee-surrogate/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system from viper settings
func SetupLogging() (*logrus.Logger, error) {
	config := &logging.Config{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormatText,
		OutputDir: viper.GetString("log_dir"),
		Timestamp: true,
		Colors:    true,
	}
	if viper.GetBool("json_logs") {
		config.Format = logging.LogFormatJSON
		config.Colors = false
	}

	logger, err := logging.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// LoadStatePaths reads a JSON file containing decoded state paths, one array
// of state indices per sequence. I/O and format errors propagate to the
// caller; recovery belongs to the user, not this tool.
func LoadStatePaths(path string) ([]interfaces.StatePath, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paths []interfaces.StatePath
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("failed to parse state paths from %s: %w", path, err)
	}
	return paths, nil
}

// LoadTrace reads a JSON file containing a coverage-over-time trace as a
// flat array of floats.
func LoadTrace(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var trace []float64
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("failed to parse trace from %s: %w", path, err)
	}
	return trace, nil
}
