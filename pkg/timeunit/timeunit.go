// Package timeunit defines the recognized time-unit labels used for
// displaying timing results and the rules for picking one automatically.
package timeunit

// Unit is a display unit for per-loop times
type Unit string

const (
	Nanosecond  Unit = "nsec"
	Microsecond Unit = "usec"
	Millisecond Unit = "msec"
	Second      Unit = "sec"
)

// MaxPrecision caps the number of digits shown after the decimal point.
// float64 carries ~17 significant digits, so anything above this is noise.
const MaxPrecision = 20

// units lists every recognized unit label
var units = []Unit{Nanosecond, Microsecond, Millisecond, Second}

// scales maps each unit to the multiplier that converts seconds into it
var scales = map[Unit]float64{
	Nanosecond:  1e9,
	Microsecond: 1e6,
	Millisecond: 1e3,
	Second:      1,
}

// autoTable maps magnitude thresholds (seconds) to units, coarsest first.
// Boundaries are powers of 1000. Ordered so Autounit is a single scan.
var autoTable = []struct {
	threshold float64
	unit      Unit
}{
	{1, Second},
	{1e-3, Millisecond},
	{1e-6, Microsecond},
}

// Validate reports whether s is a recognized unit label.
// The empty string (no unit supplied) is never valid.
func Validate(s string) bool {
	if s == "" {
		return false
	}
	for _, u := range units {
		if s == string(u) {
			return true
		}
	}
	return false
}

// Autounit picks a display unit from the magnitude of a per-loop time in
// seconds. Smaller magnitudes get finer-grained units. The returned unit is
// always a member of the recognized set.
func Autounit(best float64) Unit {
	for _, row := range autoTable {
		if best >= row.threshold {
			return row.unit
		}
	}
	return Nanosecond
}

// Scale returns the multiplier converting seconds into unit.
// Unrecognized units scale by 1 so callers fail visibly, not numerically.
func Scale(u Unit) float64 {
	if s, ok := scales[u]; ok {
		return s
	}
	return 1
}

// Units returns the recognized unit labels, finest first.
func Units() []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = string(u)
	}
	return out
}
