/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: runner.go
Description: Batch evaluation runner for the Akaylee Surrogate Evaluator.
Constructs surrogate models for a range of state counts, replays the corpus
through each, and scores the resulting coverage-over-time traces against a
reference trace. Unfit-able configurations are recorded and skipped, never
fatal.
*/

package evaluation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kleascm/akaylee-surrogate/pkg/analysis"
	"github.com/kleascm/akaylee-surrogate/pkg/coverage"
	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/kleascm/akaylee-surrogate/pkg/model"
	"github.com/kleascm/akaylee-surrogate/pkg/similarity"
	"github.com/sirupsen/logrus"
)

// Config holds the knobs of one batch evaluation run.
type Config struct {
	// StateCounts are the total state counts to try, one surrogate model
	// per entry. Each must be >= 2.
	StateCounts []int `json:"state_counts"`

	// MaxAttempts bounds the fit retries per configuration.
	MaxAttempts int `json:"max_attempts"`

	// Window is the growth-event matching window for the scorer.
	Window int `json:"window"`
}

// Validate checks the Config for invalid or missing values.
func (c *Config) Validate() error {
	if len(c.StateCounts) == 0 {
		return fmt.Errorf("state_counts must not be empty")
	}
	for _, n := range c.StateCounts {
		if n < model.SentinelStates {
			return fmt.Errorf("state count must be >= %d, got %d", model.SentinelStates, n)
		}
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive")
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

// ConfigResult is the outcome for one state-count configuration.
type ConfigResult struct {
	StateCount int                    `json:"state_count"`
	Attempts   int                    `json:"attempts"`
	Exhausted  bool                   `json:"exhausted"`
	Score      float64                `json:"score,omitempty"`
	Metrics    *analysis.CurveMetrics `json:"metrics,omitempty"`
	Trace      coverage.Trace         `json:"trace,omitempty"`
}

// Report is the full outcome of one batch run. Failed lists every state
// count whose fit attempt budget was exhausted; the run itself still
// completes.
type Report struct {
	RunID   string         `json:"run_id"`
	Results []ConfigResult `json:"results"`
	Failed  []int          `json:"failed"`
}

// Runner evaluates a corpus against a range of surrogate model sizes.
type Runner struct {
	supervisor *model.Supervisor
	logger     *logrus.Logger
}

// NewRunner creates a runner around the given fitting collaborator.
func NewRunner(fitter interfaces.Fitter, logger *logrus.Logger) *Runner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runner{
		supervisor: model.NewSupervisor(fitter, logger),
		logger:     logger,
	}
}

// Run fits one surrogate per configured state count, replays the corpus in
// order through the fitted model, and scores the surrogate's
// coverage-over-time trace against the reference trace (typically recorded
// from the instrumented real target).
//
// A configuration whose fit budget is exhausted is recorded in
// Report.Failed and skipped; only decode failures and usage errors abort
// the run.
func (r *Runner) Run(corpus []interfaces.FeatureSequence, reference coverage.Trace, cfg *Config) (*Report, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("corpus must not be empty")
	}

	scorer, err := similarity.NewScorer(cfg.Window)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.New().String()}
	for _, states := range cfg.StateCounts {
		r.logger.WithFields(logrus.Fields{
			"run_id": report.RunID,
			"states": states,
		}).Info("Evaluating configuration")

		constructed, err := r.supervisor.Construct(states, corpus, cfg.MaxAttempts)
		if err != nil {
			return nil, fmt.Errorf("construct with %d states: %w", states, err)
		}
		if constructed.Exhausted {
			report.Results = append(report.Results, ConfigResult{
				StateCount: states,
				Attempts:   constructed.Attempts,
				Exhausted:  true,
			})
			report.Failed = append(report.Failed, states)
			continue
		}

		trace, err := r.replay(constructed.Model, corpus)
		if err != nil {
			return nil, fmt.Errorf("replay with %d states: %w", states, err)
		}

		result := ConfigResult{
			StateCount: states,
			Attempts:   constructed.Attempts,
			Score:      scorer.Score(reference, trace),
			Trace:      trace,
		}
		if len(reference) == len(trace) {
			if metrics, err := analysis.CompareCurves(reference, trace); err == nil {
				result.Metrics = metrics
			}
		}
		report.Results = append(report.Results, result)

		r.logger.WithFields(logrus.Fields{
			"run_id": report.RunID,
			"states": states,
			"score":  result.Score,
		}).Info("Configuration scored")
	}

	return report, nil
}

// replay decodes the corpus in its given order and accumulates the
// coverage-over-time trace.
func (r *Runner) replay(m interfaces.Model, corpus []interfaces.FeatureSequence) (coverage.Trace, error) {
	ctx := NewContext(m, r.logger)
	acc := coverage.NewAccumulator(m.StateCount())
	for i, seq := range corpus {
		bm, err := ctx.CoverageForSequence(seq)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		if err := acc.Add(bm); err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
	}
	return acc.Trace(), nil
}
