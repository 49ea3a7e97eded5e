// Package timeit times function calls and packages the measurements into a
// validated TimeitResult value.
package timeit

import (
	"fmt"
	"math"

	"github.com/fnbench/fnbench/pkg/timeunit"
)

// TimeitResult holds one completed timing measurement.
// It is either fully constructed with every field valid, or it does not
// exist; NewResult never hands back a partially built value.
type TimeitResult struct {
	// Best is the minimum observed per-loop time in seconds
	Best float64
	// Unit is the display unit, always a member of the recognized set
	Unit timeunit.Unit
	// Number is the loop count per repetition
	Number int
	// Repeat is the number of measurement repetitions
	Repeat int
	// Precision is the digit count used when formatting Best
	Precision int
	// Times holds the total seconds per repetition, len(Times) == Repeat.
	// Owned by the result; released by Release.
	Times []float64

	released bool
}

// NewResult validates every argument before allocating anything and returns
// the assembled result. unit may be empty, in which case a recognized unit is
// derived from the magnitude of best.
func NewResult(best float64, unit string, number, repeat, precision int, times []float64) (*TimeitResult, error) {
	const op = "new_result"

	if math.IsNaN(best) || math.IsInf(best, 0) || best < 0 {
		return nil, newValidationError(op, "best must be finite and non-negative, got %v", best)
	}
	if number < 1 {
		return nil, newValidationError(op, "number must be positive, got %d", number)
	}
	if repeat < 1 {
		return nil, newValidationError(op, "repeat must be positive, got %d", repeat)
	}
	if precision < 0 {
		return nil, newValidationError(op, "precision must be non-negative, got %d", precision)
	}
	if precision > timeunit.MaxPrecision {
		return nil, newValidationError(op, "precision is capped at %d, got %d", timeunit.MaxPrecision, precision)
	}
	if unit != "" && !timeunit.Validate(unit) {
		return nil, newValidationError(op, "unit must be one of %v, got %q", timeunit.Units(), unit)
	}
	if len(times) != repeat {
		return nil, newValidationError(op, "times must have exactly repeat (%d) entries, got %d", repeat, len(times))
	}

	resolved := timeunit.Unit(unit)
	if unit == "" {
		resolved = timeunit.Autounit(best)
	}

	// All checks passed; take ownership of a copy of the samples.
	owned := make([]float64, len(times))
	copy(owned, times)

	return &TimeitResult{
		Best:      best,
		Unit:      resolved,
		Number:    number,
		Repeat:    repeat,
		Precision: precision,
		Times:     owned,
	}, nil
}

// Release tears down the owned samples and marks the result unusable.
// Calling it on a nil or already-released result is a caller defect and
// reports a contract error instead of silently doing nothing.
func (r *TimeitResult) Release() error {
	const op = "release"

	if r == nil {
		return newContractError(op, "release called on nil result")
	}
	if r.released {
		return newContractError(op, "result already released")
	}
	r.Times = nil
	r.released = true
	return nil
}

// Released reports whether the result has been torn down
func (r *TimeitResult) Released() bool {
	return r != nil && r.released
}

// Brief returns the timeit-style one line summary, e.g.
// "10000 loops, best of 5: 12.3 usec per loop".
func (r *TimeitResult) Brief() string {
	scaled := r.Best * timeunit.Scale(r.Unit)
	return fmt.Sprintf("%d loops, best of %d: %.*f %s per loop",
		r.Number, r.Repeat, r.Precision, scaled, r.Unit)
}
