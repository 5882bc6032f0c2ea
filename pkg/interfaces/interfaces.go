/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared types and collaborator contracts for the Akaylee Surrogate
Evaluator. Defines the feature-vector and state-path types exchanged with the
external preprocessing, fitting, and decoding collaborators, keeping the core
packages free of import cycles.
*/

package interfaces

// FeatureVector is one fixed-size numeric vector produced by the
// feature-extraction front end for a single raw packet. The dimension is a
// collaborator contract; the core treats the payload as opaque.
type FeatureVector []float64

// FeatureSequence is the ordered feature vectors for one observed
// communication (one stream, one trial).
type FeatureSequence []FeatureVector

// StatePath is the decoded most-likely state sequence for one
// FeatureSequence. Every index is expected to lie in [0, N) for the state
// count N the model was built with.
type StatePath []int

// Model is the contract of a fitted surrogate model as seen by this core.
// Fitting and decoding internals (EM training, Viterbi) live behind it.
type Model interface {
	// Finalize normalizes the model after a successful fit. Must be called
	// once, before the first Decode.
	Finalize() error

	// Decode returns the most likely state path explaining the sequence,
	// plus the decoder's own score for that path. The auxiliary score is
	// not used by this core.
	Decode(seq FeatureSequence) (StatePath, float64, error)

	// StateCount reports the total number of states, including the two
	// sentinel start/end states the fitting routine adds.
	StateCount() int
}

// Fitter is the contract of the external fitting routine. Fit is randomized:
// two calls with identical arguments may return different models, and it may
// fail with either a recoverable numerical-instability error or an
// unexpected one (see pkg/model for the taxonomy).
type Fitter interface {
	Fit(contentStates int, corpus []FeatureSequence) (Model, error)
}
