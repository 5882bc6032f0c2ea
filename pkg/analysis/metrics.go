/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics.go
Description: Generic curve-distance metrics computed alongside the bespoke
growth-timing score. These treat the two coverage traces as plain curves and
report standard statistics for cross-checking the custom scorer.
*/

package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// CurveMetrics holds standard distance metrics between two equal-length
// coverage traces.
type CurveMetrics struct {
	RMSE        float64 `json:"rmse"`
	Correlation float64 `json:"correlation"`
	Area        float64 `json:"area"` // area between the two curves
}

// CompareCurves computes RMSE, Pearson correlation, and the area enclosed
// between two curves of equal length. These complement the growth-timing
// score: they are sensitive to absolute level, which the bespoke scorer
// deliberately ignores.
func CompareCurves(a, b []float64) (*CurveMetrics, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("curve length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) < 2 {
		return nil, fmt.Errorf("need at least 2 points per curve, got %d", len(a))
	}

	sumSq := 0.0
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
	}
	rmse := math.Sqrt(sumSq / float64(len(a)))

	// Trapezoidal integral of |a-b| over unit-spaced x positions.
	area := 0.0
	for i := 0; i+1 < len(a); i++ {
		d0 := math.Abs(a[i] - b[i])
		d1 := math.Abs(a[i+1] - b[i+1])
		area += (d0 + d1) / 2
	}

	// Pearson correlation is undefined when either curve is flat (zero
	// variance). Report 0 by convention: a flat curve carries no growth
	// signal to correlate with, and NaN would make the containing report
	// unserializable as JSON.
	correlation := stat.Correlation(a, b, nil)
	if math.IsNaN(correlation) {
		correlation = 0
	}

	return &CurveMetrics{
		RMSE:        rmse,
		Correlation: correlation,
		Area:        area,
	}, nil
}
