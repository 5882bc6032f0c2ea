/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: score.go
Description: Score command implementation for the Akaylee Surrogate
Evaluator. Scores the growth-timing similarity of two coverage-over-time
traces and prints the generic curve metrics alongside.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-surrogate/pkg/analysis"
	"github.com/kleascm/akaylee-surrogate/pkg/similarity"
	"github.com/kleascm/akaylee-surrogate/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ScoreOutput is the JSON report written by the score command.
type ScoreOutput struct {
	TraceA  string                 `json:"trace_a"`
	TraceB  string                 `json:"trace_b"`
	Window  int                    `json:"window"`
	Score   float64                `json:"score"`
	Metrics *analysis.CurveMetrics `json:"metrics,omitempty"`
}

// RunScore scores two coverage traces against each other
func RunScore(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}

	if len(args) != 2 {
		return fmt.Errorf("expected exactly two trace files, got %d", len(args))
	}

	traceA, err := LoadTrace(args[0])
	if err != nil {
		return err
	}
	traceB, err := LoadTrace(args[1])
	if err != nil {
		return err
	}

	window := viper.GetInt("window")
	scorer, err := similarity.NewScorer(window)
	if err != nil {
		return err
	}

	out := &ScoreOutput{
		TraceA: args[0],
		TraceB: args[1],
		Window: window,
		Score:  scorer.Score(traceA, traceB),
	}
	if len(traceA) == len(traceB) {
		if metrics, err := analysis.CompareCurves(traceA, traceB); err == nil {
			out.Metrics = metrics
		}
	}

	logger.WithFields(logrus.Fields{
		"trace_a": args[0],
		"trace_b": args[1],
		"score":   out.Score,
	}).Info("Traces scored")

	reportPath, err := utils.WriteReport(viper.GetString("report_dir"), "score", out)
	if err != nil {
		return err
	}

	fmt.Printf("Growth-timing score: %.6f\n", out.Score)
	if out.Metrics != nil {
		fmt.Printf("RMSE:                %.6f\n", out.Metrics.RMSE)
		fmt.Printf("Correlation:         %.6f\n", out.Metrics.Correlation)
		fmt.Printf("Area between curves: %.6f\n", out.Metrics.Area)
	}
	fmt.Printf("Report written to:   %s\n", reportPath)
	return nil
}
