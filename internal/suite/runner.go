package suite

import (
	"fmt"
	"time"
)

// Run executes every group in order and returns the aggregate result.
//
// Per group: Setup once, each test under the group's timeout ceiling,
// Teardown once. A failed Setup skips the group's tests (each is recorded as
// failed) but Teardown still does not run, since the fixture never came up.
func (s *Suite) Run() *Result {
	result := NewResult()
	for _, g := range s.groups {
		runGroup(g, result)
	}
	return result
}

func runGroup(g *Group, result *Result) {
	if g.Setup != nil {
		if err := g.Setup(); err != nil {
			result.AddError(fmt.Sprintf("group %s: setup failed: %v", g.Name, err))
			for _, tc := range g.tests {
				result.AddCheck(CheckResult{
					Group:   g.Name,
					Name:    tc.Name,
					Pass:    false,
					Message: fmt.Sprintf("skipped: group fixture setup failed: %v", err),
				})
			}
			return
		}
	}

	for _, tc := range g.tests {
		result.AddCheck(runTest(g, tc))
	}

	if g.Teardown != nil {
		if err := g.Teardown(); err != nil {
			result.AddError(fmt.Sprintf("group %s: teardown failed: %v", g.Name, err))
		}
	}
}

// runTest executes one test body, enforcing the group timeout. The body runs
// in its own goroutine; on overrun the goroutine is abandoned and the test
// recorded as failed.
func runTest(g *Group, tc Test) CheckResult {
	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- tc.Fn()
	}()

	var err error
	if g.Timeout > 0 {
		select {
		case err = <-done:
		case <-time.After(g.Timeout):
			err = fmt.Errorf("%s: exceeded %s test timeout", tc.Name, g.Timeout)
		}
	} else {
		err = <-done
	}

	check := CheckResult{
		Group:   g.Name,
		Name:    tc.Name,
		Pass:    err == nil,
		Elapsed: time.Since(start),
	}
	if err != nil {
		check.Message = err.Error()
	}
	return check
}
