/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Surrogate Evaluator.
Evaluates how well a trained surrogate model reproduces the path-diversity
behavior of a fuzzed target, with coverage trace construction and
growth-timing similarity scoring.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-surrogate/cmd/evaluator/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool
	logDir     string
	reportDir  string

	// Evaluation configuration
	pathsFile     string
	referenceFile string
	stateCount    int
	window        int
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-surrogate",
		Short: "Akaylee Surrogate - coverage evaluation for statistical surrogate models",
		Long: `Akaylee Surrogate evaluates whether a compact statistical surrogate model
reproduces the path-diversity behavior of a real fuzzing target. It turns decoded
state paths into edge-coverage bitmaps, aggregates them into coverage-over-time
traces, and scores how similar two coverage-growth curves are under a
jitter-tolerant windowed matching algorithm.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&reportDir, "report-dir", "./reports", "Report output directory")
	rootCmd.PersistentFlags().IntVar(&window, "window", 5, "Growth-event matching window")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("report_dir", rootCmd.PersistentFlags().Lookup("report-dir"))
	viper.BindPFlag("window", rootCmd.PersistentFlags().Lookup("window"))

	// Add evaluate command
	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Build a coverage trace from decoded state paths and score it",
		Long: `Build the edge-coverage bitmap and coverage-over-time trace for a corpus of
decoded surrogate state paths, and optionally score the trace against a reference
trace recorded from the instrumented real target.`,
		RunE: commands.RunEvaluate,
	}
	evaluateCmd.Flags().StringVar(&pathsFile, "paths", "", "JSON file of decoded state paths (required)")
	evaluateCmd.Flags().IntVar(&stateCount, "states", 0, "Total state count of the surrogate model (required)")
	evaluateCmd.Flags().StringVar(&referenceFile, "reference", "", "JSON file with the reference coverage trace")
	viper.BindPFlag("paths", evaluateCmd.Flags().Lookup("paths"))
	viper.BindPFlag("states", evaluateCmd.Flags().Lookup("states"))
	viper.BindPFlag("reference", evaluateCmd.Flags().Lookup("reference"))

	// Add score command
	scoreCmd := &cobra.Command{
		Use:   "score <trace-a.json> <trace-b.json>",
		Short: "Score the growth-timing similarity of two coverage traces",
		Args:  cobra.ExactArgs(2),
		RunE:  commands.RunScore,
	}

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(scoreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
