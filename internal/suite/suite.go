// Package suite is a small fixture-scoped test harness: named groups of
// checks sharing a setup/teardown policy and a per-test timeout ceiling.
package suite

import (
	"fmt"
	"time"
)

// TestFunc is a single check. A nil return is a pass; an error carries the
// failure message, which should name the function under test and the
// expectation that was violated.
type TestFunc func() error

// Test is a named check inside a group
type Test struct {
	Name string
	Fn   TestFunc
}

// Group is a collection of tests sharing one fixture and one timeout.
// Setup and Teardown run once per group, not once per test.
type Group struct {
	Name     string
	Timeout  time.Duration
	Setup    func() error
	Teardown func() error

	tests []Test
}

// NewGroup creates a group with the given per-test timeout ceiling
func NewGroup(name string, timeout time.Duration) *Group {
	return &Group{Name: name, Timeout: timeout}
}

// SetFixture attaches the group-scoped setup and teardown hooks
func (g *Group) SetFixture(setup, teardown func() error) {
	g.Setup = setup
	g.Teardown = teardown
}

// Add registers a test with the group
func (g *Group) Add(name string, fn TestFunc) {
	g.tests = append(g.tests, Test{Name: name, Fn: fn})
}

// Tests returns the registered tests in order
func (g *Group) Tests() []Test {
	return g.tests
}

// Suite is an ordered set of groups
type Suite struct {
	Name   string
	groups []*Group
}

// New creates an empty suite
func New(name string) *Suite {
	return &Suite{Name: name}
}

// AddGroup appends a group to the suite
func (s *Suite) AddGroup(g *Group) {
	s.groups = append(s.groups, g)
}

// Groups returns the suite's groups in order
func (s *Suite) Groups() []*Group {
	return s.groups
}

// CheckResult is the outcome of one test
type CheckResult struct {
	Group   string        `json:"group"`
	Name    string        `json:"name"`
	Pass    bool          `json:"pass"`
	Message string        `json:"message,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Result is the outcome of running a whole suite
type Result struct {
	Pass   bool          `json:"pass"`
	Checks []CheckResult `json:"checks"`
	Errors []string      `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records a suite-level error and marks the result failed
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCheck records one test outcome
func (r *Result) AddCheck(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Pass {
		r.Pass = false
	}
}

// Failed returns the failing checks
func (r *Result) Failed() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// Summary returns a one-line pass/fail count
func (r *Result) Summary() string {
	failed := len(r.Failed())
	return fmt.Sprintf("%d checks, %d failed, %d suite errors",
		len(r.Checks), failed, len(r.Errors))
}
