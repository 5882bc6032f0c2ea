/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Fit error taxonomy for the Model Construction Supervisor.
Distinguishes recoverable numerical-instability failures from unexpected ones
so the retry loop can stay silent for the former and log the latter.
*/

package model

import (
	"errors"
	"fmt"
)

// FitErrorKind classifies a fitting failure.
type FitErrorKind int

const (
	// FitRecoverable marks numerical-instability failures (singular
	// covariance, invalid floating-point dispatch). Retried silently.
	FitRecoverable FitErrorKind = iota

	// FitUnexpected marks every other fitting failure. Logged with its
	// detail, then retried within the same attempt budget.
	FitUnexpected
)

// String returns a human-readable name for the kind.
func (k FitErrorKind) String() string {
	switch k {
	case FitRecoverable:
		return "recoverable"
	case FitUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("FitErrorKind(%d)", int(k))
	}
}

// FitError tags a fitting failure with its kind. Fitter implementations wrap
// their library-specific failures in one of these; anything untagged is
// treated as unexpected.
type FitError struct {
	Kind FitErrorKind
	Err  error
}

// Error implements the error interface.
func (e *FitError) Error() string {
	return fmt.Sprintf("fit failed (%s): %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying failure for errors.Is/As chains.
func (e *FitError) Unwrap() error {
	return e.Err
}

// RecoverableFitError tags err as a recoverable numerical-instability
// failure.
func RecoverableFitError(err error) *FitError {
	return &FitError{Kind: FitRecoverable, Err: err}
}

// UnexpectedFitError tags err as an unexpected fitting failure.
func UnexpectedFitError(err error) *FitError {
	return &FitError{Kind: FitUnexpected, Err: err}
}

// ClassifyFitError extracts the kind of a fitting failure. Errors that carry
// no FitError tag are classified as unexpected.
func ClassifyFitError(err error) FitErrorKind {
	var fe *FitError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FitUnexpected
}
