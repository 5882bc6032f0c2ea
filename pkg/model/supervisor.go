/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: supervisor.go
Description: Model Construction Supervisor for the Akaylee Surrogate
Evaluator. Wraps the stochastic external fitting routine in a bounded retry
loop with error-class discrimination, returning an explicit result instead of
leaking fitting exceptions to batch callers.
*/

package model

import (
	"fmt"

	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// SentinelStates is the number of implicit start/end states the fitting
// routine adds on top of the requested content states.
const SentinelStates = 2

// ConstructResult is the outcome of a Construct call. Exactly one of the two
// shapes occurs: a fitted model (Model non-nil, Exhausted false) or an
// exhausted attempt budget (Model nil, Exhausted true). Exhaustion is a
// normal outcome for batch callers, not an error.
type ConstructResult struct {
	Model     interfaces.Model
	Attempts  int
	Exhausted bool
}

// Supervisor drives the external fitting routine. The routine is randomized
// and occasionally fails, so every configuration gets a bounded number of
// fresh attempts.
type Supervisor struct {
	fitter interfaces.Fitter
	logger *logrus.Logger
}

// NewSupervisor creates a supervisor around the given fitting collaborator.
// A nil logger falls back to the logrus standard logger.
func NewSupervisor(fitter interfaces.Fitter, logger *logrus.Logger) *Supervisor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Supervisor{fitter: fitter, logger: logger}
}

// Construct fits a surrogate model with targetStateCount total states,
// retrying up to maxAttempts times. targetStateCount includes the two
// sentinel states, so the fitting routine is asked for
// targetStateCount-2 content states.
//
// Recoverable failures are retried silently; unexpected ones are logged and
// retried within the same budget. A fully exhausted budget yields
// ConstructResult{Exhausted: true} rather than an error: callers running
// many configurations must skip and record it, not abort.
func (s *Supervisor) Construct(targetStateCount int, corpus []interfaces.FeatureSequence, maxAttempts int) (*ConstructResult, error) {
	if targetStateCount < SentinelStates {
		return nil, fmt.Errorf("target state count must be >= %d, got %d", SentinelStates, targetStateCount)
	}
	if maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", maxAttempts)
	}

	contentStates := targetStateCount - SentinelStates

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fitted, err := s.fitter.Fit(contentStates, corpus)
		if err == nil {
			if err := fitted.Finalize(); err != nil {
				s.logger.WithFields(logrus.Fields{
					"states":  targetStateCount,
					"attempt": attempt,
					"error":   err.Error(),
				}).Warn("Model finalization failed, retrying")
				continue
			}
			s.logger.WithFields(logrus.Fields{
				"states":  targetStateCount,
				"attempt": attempt,
			}).Info("Surrogate model constructed")
			return &ConstructResult{Model: fitted, Attempts: attempt}, nil
		}

		switch ClassifyFitError(err) {
		case FitRecoverable:
			// Known library instability; a fresh random init usually clears it.
			s.logger.WithFields(logrus.Fields{
				"states":  targetStateCount,
				"attempt": attempt,
			}).Debug("Recoverable fit failure, retrying")
		default:
			s.logger.WithFields(logrus.Fields{
				"states":  targetStateCount,
				"attempt": attempt,
				"error":   err.Error(),
			}).Warn("Unexpected fit failure, retrying")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"states":   targetStateCount,
		"attempts": maxAttempts,
	}).Warn("Fit attempt budget exhausted, no model for this configuration")
	return &ConstructResult{Attempts: maxAttempts, Exhausted: true}, nil
}
