/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: evaluate.go
Description: Evaluate command implementation for the Akaylee Surrogate
Evaluator. Builds the coverage-over-time trace from decoded surrogate state
paths and scores it against a reference trace recorded from the instrumented
target.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-surrogate/pkg/analysis"
	"github.com/kleascm/akaylee-surrogate/pkg/coverage"
	"github.com/kleascm/akaylee-surrogate/pkg/similarity"
	"github.com/kleascm/akaylee-surrogate/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EvaluationOutput is the JSON report written by the evaluate command.
type EvaluationOutput struct {
	States      int                    `json:"states"`
	Sequences   int                    `json:"sequences"`
	Trace       coverage.Trace         `json:"trace"`
	Score       float64                `json:"score"`
	Metrics     *analysis.CurveMetrics `json:"metrics,omitempty"`
	ReportPath  string                 `json:"-"`
	EdgesHit    int                    `json:"edges_hit"`
	EdgesTotal  int                    `json:"edges_total"`
	FinalCover  float64                `json:"final_coverage"`
	WindowUsed  int                    `json:"window"`
	ReferenceOK bool                   `json:"reference_compared"`
}

// RunEvaluate executes the coverage evaluation pipeline
func RunEvaluate(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return err
	}

	pathsFile := viper.GetString("paths")
	states := viper.GetInt("states")
	if pathsFile == "" {
		return fmt.Errorf("--paths is required")
	}
	if states < 2 {
		return fmt.Errorf("--states must be >= 2, got %d", states)
	}

	paths, err := LoadStatePaths(pathsFile)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no state paths in %s", pathsFile)
	}

	logger.WithFields(logrus.Fields{
		"paths":  len(paths),
		"states": states,
	}).Info("Building coverage trace")

	acc := coverage.NewAccumulator(states)
	for i, p := range paths {
		bm, err := coverage.BuildBitmap(p, states)
		if err != nil {
			return fmt.Errorf("state path %d: %w", i, err)
		}
		if err := acc.Add(bm); err != nil {
			return fmt.Errorf("state path %d: %w", i, err)
		}
	}

	out := &EvaluationOutput{
		States:     states,
		Sequences:  len(paths),
		Trace:      acc.Trace(),
		EdgesHit:   acc.Bitmap().Count(),
		EdgesTotal: states * states,
		FinalCover: acc.Bitmap().Fraction(),
		WindowUsed: viper.GetInt("window"),
	}

	if refFile := viper.GetString("reference"); refFile != "" {
		reference, err := LoadTrace(refFile)
		if err != nil {
			return err
		}
		scorer, err := similarity.NewScorer(out.WindowUsed)
		if err != nil {
			return err
		}
		out.Score = scorer.Score(reference, out.Trace)
		out.ReferenceOK = true
		if len(reference) == len(out.Trace) {
			if metrics, err := analysis.CompareCurves(reference, out.Trace); err == nil {
				out.Metrics = metrics
			}
		}
		logger.WithFields(logrus.Fields{
			"score": out.Score,
		}).Info("Reference trace compared")
	}

	reportPath, err := utils.WriteReport(viper.GetString("report_dir"), "evaluation", out)
	if err != nil {
		return err
	}
	out.ReportPath = reportPath

	fmt.Printf("Sequences processed: %d\n", out.Sequences)
	fmt.Printf("Final edge coverage: %d/%d (%.4f)\n", out.EdgesHit, out.EdgesTotal, out.FinalCover)
	if out.ReferenceOK {
		fmt.Printf("Growth-timing score: %.6f\n", out.Score)
	}
	fmt.Printf("Report written to:   %s\n", reportPath)
	return nil
}
