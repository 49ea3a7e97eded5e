package timeit

import (
	"time"

	"github.com/fnbench/fnbench/internal/logging"
	"github.com/fnbench/fnbench/pkg/timeunit"
)

// Timer returns a monotonically increasing reading in seconds
type Timer func() float64

// Options configures the timing operations. The zero value means
// "pick everything automatically".
type Options struct {
	// Number of loops per repetition. 0 means autorange.
	Number int
	// Repeat is the repetition count. 0 means DefaultRepeat.
	Repeat int
	// Unit forces a display unit. Empty means derive from the best time.
	Unit string
	// Precision is the display precision. 0 means DefaultPrecision.
	Precision int
	// Timer overrides the clock, mainly for tests
	Timer Timer
}

const (
	// DefaultRepeat matches the classic timeit repetition count
	DefaultRepeat = 5
	// DefaultPrecision is the digit count used when none is requested
	DefaultPrecision = 1
	// autorangeTarget is the minimum trial duration autorange aims for
	autorangeTarget = 0.2
	// autorangeCeiling stops autorange on pathologically fast clocks
	autorangeCeiling = 1_000_000_000
)

var logger = logging.NewLogger(logging.WARN, false)

var processStart = time.Now()

// defaultTimer reads the monotonic clock as seconds since process start
func defaultTimer() float64 {
	return time.Since(processStart).Seconds()
}

// TimeitOnce times number calls of fn and returns the total elapsed seconds.
func TimeitOnce(fn func(), number int, timer Timer) (float64, error) {
	const op = "timeit_once"

	if fn == nil {
		return 0, newValidationError(op, "func must be callable")
	}
	if number < 1 {
		return 0, newValidationError(op, "number must be positive, got %d", number)
	}
	if timer == nil {
		timer = defaultTimer
	}

	start := timer()
	for i := 0; i < number; i++ {
		fn()
	}
	return timer() - start, nil
}

// Autorange determines how many loops of fn fit a trial of at least 0.2
// seconds, stepping through 1, 2, 5 times increasing powers of ten.
func Autorange(fn func(), timer Timer) (int, error) {
	for base := 1; base <= autorangeCeiling; base *= 10 {
		for _, mult := range []int{1, 2, 5} {
			number := base * mult
			elapsed, err := TimeitOnce(fn, number, timer)
			if err != nil {
				return 0, err
			}
			if elapsed >= autorangeTarget {
				return number, nil
			}
		}
	}
	return autorangeCeiling, nil
}

// TimeitRepeat runs repeat trials of number loops each and returns the total
// seconds per trial, in order.
func TimeitRepeat(fn func(), number, repeat int, timer Timer) ([]float64, error) {
	const op = "timeit_repeat"

	if repeat < 1 {
		return nil, newValidationError(op, "repeat must be positive, got %d", repeat)
	}

	times := make([]float64, repeat)
	for i := range times {
		elapsed, err := TimeitOnce(fn, number, timer)
		if err != nil {
			return nil, err
		}
		times[i] = elapsed
	}
	return times, nil
}

// TimeitPlus runs the full measurement pipeline: autoranges the loop count
// when none is given, repeats the trial, and packages the samples into a
// validated TimeitResult.
func TimeitPlus(fn func(), opts Options) (*TimeitResult, error) {
	const op = "timeit_plus"

	if fn == nil {
		return nil, newValidationError(op, "func must be callable")
	}
	if opts.Unit != "" && !timeunit.Validate(opts.Unit) {
		return nil, newValidationError(op, "unit must be one of %v, got %q", timeunit.Units(), opts.Unit)
	}
	if opts.Precision < 0 {
		return nil, newValidationError(op, "precision must be non-negative, got %d", opts.Precision)
	}
	if opts.Precision > timeunit.MaxPrecision {
		return nil, newValidationError(op, "precision is capped at %d, got %d", timeunit.MaxPrecision, opts.Precision)
	}

	precision := opts.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision >= timeunit.MaxPrecision/2 {
		logger.Warn("precision is rather high", map[string]interface{}{
			"precision": precision,
			"cap":       timeunit.MaxPrecision,
		})
	}

	repeat := opts.Repeat
	if repeat == 0 {
		repeat = DefaultRepeat
	}

	number := opts.Number
	if number == 0 {
		n, err := Autorange(fn, opts.Timer)
		if err != nil {
			return nil, err
		}
		number = n
	}

	times, err := TimeitRepeat(fn, number, repeat, opts.Timer)
	if err != nil {
		return nil, err
	}

	// Best is the fastest repetition divided down to a per-loop time
	best := times[0]
	for _, t := range times[1:] {
		if t < best {
			best = t
		}
	}
	best /= float64(number)

	return NewResult(best, opts.Unit, number, repeat, precision, times)
}
