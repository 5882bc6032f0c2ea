/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: supervisor_test.go
Description: Unit tests for the Model Construction Supervisor. Uses a
scripted fake fitter to exercise the bounded retry loop, the recoverable vs.
unexpected error discrimination, and the exhausted-budget sentinel.
*/

package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/kleascm/akaylee-surrogate/pkg/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel is a minimal fitted model that records finalization.
type fakeModel struct {
	states    int
	finalized bool
}

func (m *fakeModel) Finalize() error {
	m.finalized = true
	return nil
}

func (m *fakeModel) Decode(seq interfaces.FeatureSequence) (interfaces.StatePath, float64, error) {
	path := make(interfaces.StatePath, len(seq))
	for i := range seq {
		path[i] = i % m.states
	}
	return path, 0, nil
}

func (m *fakeModel) StateCount() int {
	return m.states
}

// scriptedFitter returns the scripted errors in order, then succeeds on
// every further call.
type scriptedFitter struct {
	script []error
	calls  int
	states int
}

func (f *scriptedFitter) Fit(contentStates int, corpus []interfaces.FeatureSequence) (interfaces.Model, error) {
	f.calls++
	f.states = contentStates + model.SentinelStates
	if f.calls <= len(f.script) {
		if err := f.script[f.calls-1]; err != nil {
			return nil, err
		}
	}
	return &fakeModel{states: f.states}, nil
}

// TestConstructFirstAttemptSucceeds checks the happy path: one attempt, a
// finalized model, and the content state count reduced by the two sentinels.
func TestConstructFirstAttemptSucceeds(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fitter := &scriptedFitter{}

	result, err := model.NewSupervisor(fitter, logger).Construct(6, nil, 10)
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	assert.False(t, result.Exhausted)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, fitter.calls)
	assert.Equal(t, 6, fitter.states) // 4 content states requested
	assert.True(t, result.Model.(*fakeModel).finalized)
}

// TestConstructRetriesRecoverableSilently checks that numerical-instability
// failures are retried without any log noise above debug level.
func TestConstructRetriesRecoverableSilently(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	fitter := &scriptedFitter{script: []error{
		model.RecoverableFitError(errors.New("singular covariance")),
		model.RecoverableFitError(errors.New("invalid float dispatch")),
	}}

	result, err := model.NewSupervisor(fitter, logger).Construct(4, nil, 10)
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	assert.Equal(t, 3, result.Attempts)
	for _, entry := range hook.Entries {
		assert.NotEqual(t, logrus.WarnLevel, entry.Level,
			"recoverable failures must not be logged as warnings: %s", entry.Message)
	}
}

// TestConstructLogsUnexpectedAndRetries checks that unexpected failures are
// logged with their detail but never propagate.
func TestConstructLogsUnexpectedAndRetries(t *testing.T) {
	logger, hook := test.NewNullLogger()

	fitter := &scriptedFitter{script: []error{
		fmt.Errorf("fitter library exploded"), // untagged -> unexpected
	}}

	result, err := model.NewSupervisor(fitter, logger).Construct(4, nil, 10)
	require.NoError(t, err)
	require.NotNil(t, result.Model)
	assert.Equal(t, 2, result.Attempts)

	var warned bool
	for _, entry := range hook.Entries {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Contains(t, entry.Data["error"], "exploded")
		}
	}
	assert.True(t, warned, "unexpected failure must be logged")
}

// TestConstructExhaustsBudget checks the sentinel outcome: a permanently
// failing fitter yields Exhausted after exactly maxAttempts attempts, with
// no error.
func TestConstructExhaustsBudget(t *testing.T) {
	logger, _ := test.NewNullLogger()

	script := make([]error, 5)
	for i := range script {
		script[i] = model.RecoverableFitError(errors.New("still singular"))
	}
	fitter := &scriptedFitter{script: script}

	result, err := model.NewSupervisor(fitter, logger).Construct(4, nil, 5)
	require.NoError(t, err)

	assert.True(t, result.Exhausted)
	assert.Nil(t, result.Model)
	assert.Equal(t, 5, result.Attempts)
	assert.Equal(t, 5, fitter.calls)
}

// TestConstructPreconditions checks the usage errors for bad state counts
// and attempt budgets.
func TestConstructPreconditions(t *testing.T) {
	logger, _ := test.NewNullLogger()
	supervisor := model.NewSupervisor(&scriptedFitter{}, logger)

	_, err := supervisor.Construct(1, nil, 10)
	assert.Error(t, err)

	_, err = supervisor.Construct(4, nil, 0)
	assert.Error(t, err)
}

// TestClassifyFitError checks the taxonomy mapping.
func TestClassifyFitError(t *testing.T) {
	assert.Equal(t, model.FitRecoverable,
		model.ClassifyFitError(model.RecoverableFitError(errors.New("lin alg"))))
	assert.Equal(t, model.FitUnexpected,
		model.ClassifyFitError(model.UnexpectedFitError(errors.New("boom"))))
	assert.Equal(t, model.FitUnexpected,
		model.ClassifyFitError(errors.New("untagged")))

	// Wrapped tags still classify.
	wrapped := fmt.Errorf("attempt context: %w", model.RecoverableFitError(errors.New("lin alg")))
	assert.Equal(t, model.FitRecoverable, model.ClassifyFitError(wrapped))
}
