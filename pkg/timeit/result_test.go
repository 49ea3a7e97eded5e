package timeit

import (
	"math"
	"strings"
	"testing"

	"github.com/fnbench/fnbench/pkg/timeunit"
)

func TestNewResultValid(t *testing.T) {
	times := []float64{0.52, 0.48, 0.50}
	r, err := NewResult(0.0012, "msec", 100, 3, 2, times)
	if err != nil {
		t.Fatalf("NewResult returned unexpected error: %v", err)
	}
	if r.Best != 0.0012 {
		t.Errorf("Best = %v, want 0.0012", r.Best)
	}
	if r.Unit != timeunit.Millisecond {
		t.Errorf("Unit = %q, want msec", r.Unit)
	}
	if r.Number != 100 || r.Repeat != 3 || r.Precision != 2 {
		t.Errorf("Number/Repeat/Precision = %d/%d/%d, want 100/3/2", r.Number, r.Repeat, r.Precision)
	}
	if len(r.Times) != r.Repeat {
		t.Fatalf("len(Times) = %d, want %d", len(r.Times), r.Repeat)
	}
	for i := range times {
		if r.Times[i] != times[i] {
			t.Errorf("Times[%d] = %v, want %v", i, r.Times[i], times[i])
		}
	}
}

func TestNewResultOwnsCopy(t *testing.T) {
	times := []float64{0.5, 0.6}
	r, err := NewResult(0.1, "sec", 1, 2, 1, times)
	if err != nil {
		t.Fatalf("NewResult returned unexpected error: %v", err)
	}
	times[0] = 99
	if r.Times[0] != 0.5 {
		t.Errorf("result shares caller's slice, Times[0] = %v", r.Times[0])
	}
}

func TestNewResultDerivedUnit(t *testing.T) {
	tests := []struct {
		name string
		best float64
		want timeunit.Unit
	}{
		{"seconds scale", 1.5, timeunit.Second},
		{"millisecond scale", 0.002, timeunit.Millisecond},
		{"microsecond scale", 5e-6, timeunit.Microsecond},
		{"nanosecond scale", 3e-8, timeunit.Nanosecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResult(tt.best, "", 1, 1, 1, []float64{tt.best})
			if err != nil {
				t.Fatalf("NewResult returned unexpected error: %v", err)
			}
			if r.Unit != tt.want {
				t.Errorf("derived Unit = %q, want %q", r.Unit, tt.want)
			}
			if !timeunit.Validate(string(r.Unit)) {
				t.Errorf("derived Unit %q is not in the recognized set", r.Unit)
			}
		})
	}
}

func TestNewResultValidation(t *testing.T) {
	good := []float64{0.5}
	tests := []struct {
		name      string
		best      float64
		unit      string
		number    int
		repeat    int
		precision int
		times     []float64
	}{
		{"negative best", -1, "sec", 1, 1, 1, good},
		{"NaN best", math.NaN(), "sec", 1, 1, 1, good},
		{"infinite best", math.Inf(1), "sec", 1, 1, 1, good},
		{"zero number", 0.5, "sec", 0, 1, 1, good},
		{"zero repeat", 0.5, "sec", 1, 0, 1, nil},
		{"negative precision", 0.5, "sec", 1, 1, -1, good},
		{"precision above cap", 0.5, "sec", 1, 1, timeunit.MaxPrecision + 1, good},
		{"bad unit", 0.5, "foobar", 1, 1, 1, good},
		{"times shorter than repeat", 0.5, "sec", 1, 3, 1, good},
		{"times longer than repeat", 0.5, "sec", 1, 1, 1, []float64{0.5, 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResult(tt.best, tt.unit, tt.number, tt.repeat, tt.precision, tt.times)
			if err == nil {
				t.Fatal("NewResult should have failed")
			}
			if r != nil {
				t.Error("NewResult must not return a partially constructed result")
			}
			if !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if IsContract(err) {
				t.Errorf("argument errors must not be contract errors: %v", err)
			}
		})
	}
}

func TestReleaseNil(t *testing.T) {
	var r *TimeitResult
	err := r.Release()
	if err == nil {
		t.Fatal("Release on nil result must not succeed silently")
	}
	if !IsContract(err) {
		t.Errorf("Release on nil result should report a contract error, got %v", err)
	}
	if IsValidation(err) {
		t.Errorf("Release on nil result must not look like a validation error: %v", err)
	}
}

func TestReleaseTwice(t *testing.T) {
	r, err := NewResult(0.5, "sec", 1, 1, 1, []float64{0.5})
	if err != nil {
		t.Fatalf("NewResult returned unexpected error: %v", err)
	}
	if err := r.Release(); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	if r.Times != nil {
		t.Error("Release should drop the owned samples")
	}
	if !r.Released() {
		t.Error("Released() should report true after Release")
	}
	err = r.Release()
	if err == nil || !IsContract(err) {
		t.Errorf("second Release should report a contract error, got %v", err)
	}
}

// Repeated construct/release cycles must neither fail nor accumulate state.
func TestConstructReleaseRoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		r, err := NewResult(1e-5, "", 1000, 5, 3, []float64{0.01, 0.011, 0.012, 0.013, 0.014})
		if err != nil {
			t.Fatalf("cycle %d: NewResult failed: %v", i, err)
		}
		if err := r.Release(); err != nil {
			t.Fatalf("cycle %d: Release failed: %v", i, err)
		}
	}
}

func TestBrief(t *testing.T) {
	r, err := NewResult(1.25e-5, "usec", 10000, 5, 1, []float64{0.125, 0.13, 0.14, 0.15, 0.16})
	if err != nil {
		t.Fatalf("NewResult returned unexpected error: %v", err)
	}
	got := r.Brief()
	want := "10000 loops, best of 5: 12.5 usec per loop"
	if got != want {
		t.Errorf("Brief() = %q, want %q", got, want)
	}
}

func TestErrorMessageNamesOperation(t *testing.T) {
	_, err := NewResult(0.5, "bloops", 1, 1, 1, []float64{0.5})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "new_result") {
		t.Errorf("error should identify the operation, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "unit must be one of") {
		t.Errorf("error should describe the violated expectation, got %q", err.Error())
	}
}
