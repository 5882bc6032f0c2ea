/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_test.go
Description: Unit tests for the generic curve-distance metrics.
*/

package analysis_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/kleascm/akaylee-surrogate/pkg/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompareCurvesIdentical checks the zero-distance baseline.
func TestCompareCurvesIdentical(t *testing.T) {
	curve := []float64{0.1, 0.3, 0.5, 0.9}
	metrics, err := analysis.CompareCurves(curve, curve)
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics.RMSE)
	assert.Equal(t, 0.0, metrics.Area)
	assert.InDelta(t, 1.0, metrics.Correlation, 1e-12)
}

// TestCompareCurvesConstantOffset checks RMSE and area against
// hand-computed values for a constant vertical shift.
func TestCompareCurvesConstantOffset(t *testing.T) {
	a := []float64{0.0, 0.2, 0.4, 0.6}
	b := []float64{0.1, 0.3, 0.5, 0.7}
	metrics, err := analysis.CompareCurves(a, b)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, metrics.RMSE, 1e-12)
	// |diff| is 0.1 everywhere over 3 unit-width trapezoids.
	assert.InDelta(t, 0.3, metrics.Area, 1e-12)
	// A constant shift preserves perfect correlation.
	assert.InDelta(t, 1.0, metrics.Correlation, 1e-12)
}

// TestCompareCurvesFlatCurve checks the zero-variance convention: a flat
// curve correlates as 0, never NaN, so embedding reports stay
// JSON-serializable.
func TestCompareCurvesFlatCurve(t *testing.T) {
	metrics, err := analysis.CompareCurves([]float64{0.5, 0.5, 0.5}, []float64{0.1, 0.2, 0.3})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(metrics.Correlation))
	assert.Equal(t, 0.0, metrics.Correlation)

	_, err = json.Marshal(metrics)
	assert.NoError(t, err)

	// Both flat behaves the same way.
	metrics, err = analysis.CompareCurves([]float64{0.2, 0.2}, []float64{0.9, 0.9})
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.Correlation)
}

// TestCompareCurvesPreconditions checks the length contract.
func TestCompareCurvesPreconditions(t *testing.T) {
	_, err := analysis.CompareCurves([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = analysis.CompareCurves([]float64{1}, []float64{1})
	assert.Error(t, err)
}
