/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: context.go
Description: Evaluation context for the Akaylee Surrogate Evaluator. Holds the
fitted model and its state count as an explicit object passed into the core
entry points, with an explicit not-yet-initialized state instead of global
flags and asserts.
*/

package evaluation

import (
	"errors"
	"fmt"

	"github.com/kleascm/akaylee-surrogate/pkg/coverage"
	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrNotInitialized reports a coverage request against a context that has no
// fitted model yet.
var ErrNotInitialized = errors.New("evaluation context not initialized: no fitted model")

// Context ties a fitted surrogate model to the coverage pipeline. A zero or
// model-less context is valid to hold but fails fast on use.
type Context struct {
	model  interfaces.Model
	logger *logrus.Logger
}

// NewContext creates a context around a fitted model. The model may be nil
// (not yet constructed); coverage calls then return ErrNotInitialized.
func NewContext(model interfaces.Model, logger *logrus.Logger) *Context {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Context{model: model, logger: logger}
}

// Ready reports whether a fitted model is attached.
func (c *Context) Ready() bool {
	return c.model != nil
}

// SetModel attaches a fitted model, e.g. after a successful Construct.
func (c *Context) SetModel(model interfaces.Model) {
	c.model = model
}

// StateCount returns the model's total state count, or 0 when uninitialized.
func (c *Context) StateCount() int {
	if c.model == nil {
		return 0
	}
	return c.model.StateCount()
}

// CoverageForSequence decodes one feature sequence and builds its
// edge-coverage bitmap.
func (c *Context) CoverageForSequence(seq interfaces.FeatureSequence) (*coverage.Bitmap, error) {
	if !c.Ready() {
		return nil, ErrNotInitialized
	}
	path, _, err := c.model.Decode(seq)
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return coverage.BuildBitmap(path, c.model.StateCount())
}

// CoverageForBatch is the live per-trial feedback hook with single-shot
// semantics: a batch longer than one sequence is warned about, and only the
// first sequence is ever decoded. Surplus sequences are never consulted, so
// they cannot fail the call either.
func (c *Context) CoverageForBatch(batch []interfaces.FeatureSequence) (*coverage.Bitmap, error) {
	if !c.Ready() {
		return nil, ErrNotInitialized
	}
	if len(batch) == 0 {
		return nil, coverage.ErrEmptyBatch
	}
	if len(batch) != 1 {
		c.logger.WithFields(logrus.Fields{
			"sequences": len(batch),
		}).Warn("Single-shot batch length was not 1, processing first sequence only")
	}
	path, _, err := c.model.Decode(batch[0])
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return coverage.BuildBitmap(path, c.model.StateCount())
}
