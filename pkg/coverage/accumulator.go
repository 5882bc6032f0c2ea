/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: accumulator.go
Description: Aggregates per-sequence edge-coverage bitmaps into a cumulative
bitmap and a monotonic coverage-over-time trace. Also provides the single-shot
entry point used as a live per-trial feedback hook during fuzzing.
*/

package coverage

import (
	"errors"
	"fmt"

	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrStateCountMismatch reports a bitmap added to an accumulator (or
// union-ed into a bitmap) built for a different state count.
var ErrStateCountMismatch = errors.New("state count mismatch")

// ErrEmptyBatch reports a single-shot call with no sequences at all.
var ErrEmptyBatch = errors.New("empty decoded batch")

// Trace is a coverage-over-time curve: the cumulative covered fraction of
// all possible edges after each processed sequence, in input order.
// Logical OR is monotone, so a trace never decreases.
type Trace []float64

// Accumulator folds bitmaps into a running cumulative coverage map. One
// accumulator belongs to exactly one evaluation pass; it is not safe for
// concurrent use.
type Accumulator struct {
	cumulative *Bitmap
	trace      Trace
}

// NewAccumulator creates an accumulator for an N-state model with an
// all-zero cumulative map and an empty trace.
func NewAccumulator(states int) *Accumulator {
	return &Accumulator{cumulative: NewBitmap(states)}
}

// Add ORs one more bitmap into the cumulative map and appends the resulting
// covered fraction to the trace. Input order is significant and preserved:
// the accumulator never reorders what the caller feeds it.
func (a *Accumulator) Add(bm *Bitmap) error {
	if err := a.cumulative.Union(bm); err != nil {
		return err
	}
	a.trace = append(a.trace, a.cumulative.Fraction())
	return nil
}

// Bitmap returns the cumulative coverage map accumulated so far.
func (a *Accumulator) Bitmap() *Bitmap {
	return a.cumulative
}

// Trace returns the coverage-over-time trace accumulated so far, one entry
// per Add call.
func (a *Accumulator) Trace() Trace {
	return a.trace
}

// Accumulate folds a whole batch of bitmaps in order and returns the final
// cumulative bitmap together with the full trace (length == len(bitmaps)).
func Accumulate(bitmaps []*Bitmap, states int) (*Bitmap, Trace, error) {
	acc := NewAccumulator(states)
	for i, bm := range bitmaps {
		if err := acc.Add(bm); err != nil {
			return nil, nil, fmt.Errorf("bitmap %d: %w", i, err)
		}
	}
	return acc.Bitmap(), acc.Trace(), nil
}

// SingleShot builds the coverage bitmap for a single decoded sequence, the
// per-trial feedback path. The hook contract is one sequence per trial;
// a longer batch is a usage anomaly that gets a warning while processing
// exactly the first sequence. An empty batch cannot be processed at all.
func SingleShot(batch []interfaces.StatePath, states int, logger *logrus.Logger) (*Bitmap, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(batch) != 1 {
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		logger.WithFields(logrus.Fields{
			"sequences": len(batch),
		}).Warn("Single-shot batch length was not 1, processing first sequence only")
	}
	return BuildBitmap(batch[0], states)
}
