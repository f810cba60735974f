// Package: wareflow/builder
//
// errors.go - sentinel errors.
//
// Callers branch with errors.Is; implementations attach context with %w.

package builder

import "errors"

// ErrTooFewFlags indicates a size parameter below the constructor's minimum.
var ErrTooFewFlags = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrDuplicateID indicates the ID scheme produced a name twice.
var ErrDuplicateID = errors.New("builder: duplicate flag id")

// ErrConstructFailed indicates a nil target or constructor.
var ErrConstructFailed = errors.New("builder: construction failed")
