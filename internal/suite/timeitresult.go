package suite

import (
	"fmt"
	"time"

	"github.com/fnbench/fnbench/internal/embed"
	"github.com/fnbench/fnbench/pkg/timeit"
	"github.com/fnbench/fnbench/pkg/timeunit"
)

// NewTimeitResultSuite assembles the conformance suite for the
// timing-result type. timeout is the per-test ceiling in seconds and applies
// uniformly to every check; a non-positive value is a configuration defect
// and produces no suite.
//
// The suite holds exactly two groups: embed_core, whose fixture brings a
// fake host runtime up and down once for the whole group, and pure_core,
// which needs no runtime at all.
func NewTimeitResultSuite(timeout float64) (*Suite, error) {
	if timeout <= 0 {
		return nil, timeit.NewContractError("make_suite", fmt.Sprintf("timeout must be positive, got %v", timeout))
	}

	ceiling := time.Duration(timeout * float64(time.Second))
	s := New("timeitresult")

	rt := embed.NewFakeRuntime()

	embedCore := NewGroup("embed_core", ceiling)
	embedCore.SetFixture(
		func() error {
			rt.Initialize()
			return nil
		},
		func() error {
			return rt.Finalize()
		},
	)
	embedCore.Add("release_nil_result", checkReleaseNilResult)
	embedCore.Add("new_object_nil_type", func() error { return checkNewObjectNilType(rt) })
	embedCore.Add("new_object_nil_args", func() error { return checkNewObjectNilArgs(rt) })
	embedCore.Add("construct_release_no_leak", func() error { return checkConstructReleaseNoLeak(rt) })

	pureCore := NewGroup("pure_core", ceiling)
	pureCore.Add("validate_unit", checkValidateUnit)

	s.AddGroup(embedCore)
	s.AddGroup(pureCore)
	return s, nil
}

func conformanceArgs() *embed.CallArgs {
	return &embed.CallArgs{
		Best:      2.5e-6,
		Unit:      "usec",
		Number:    10000,
		Repeat:    5,
		Precision: 3,
		Times:     []float64{0.025, 0.026, 0.027, 0.028, 0.029},
	}
}

func checkReleaseNilResult() error {
	var r *timeit.TimeitResult
	err := r.Release()
	if err == nil {
		return fmt.Errorf("TimeitResult.Release: should fail when called on a nil result")
	}
	if !timeit.IsContract(err) {
		return fmt.Errorf("TimeitResult.Release: should report a contract error on nil result, got %v", err)
	}
	return nil
}

func checkNewObjectNilType(rt embed.Runtime) error {
	obj, err := embed.NewObject(rt, nil, conformanceArgs())
	if err == nil {
		return fmt.Errorf("embed.NewObject: should fail when the type handle is nil")
	}
	if !timeit.IsContract(err) {
		return fmt.Errorf("embed.NewObject: should report a contract error on nil type handle, got %v", err)
	}
	if obj != nil {
		return fmt.Errorf("embed.NewObject: must not return an object on nil type handle")
	}
	return nil
}

func checkNewObjectNilArgs(rt embed.Runtime) error {
	obj, err := embed.NewObject(rt, embed.ResultType, nil)
	if err == nil {
		return fmt.Errorf("embed.NewObject: should fail when the argument container is nil")
	}
	if !timeit.IsContract(err) {
		return fmt.Errorf("embed.NewObject: should report a contract error on nil argument container, got %v", err)
	}
	if obj != nil {
		return fmt.Errorf("embed.NewObject: must not return an object on nil argument container")
	}
	return nil
}

func checkConstructReleaseNoLeak(rt embed.Runtime) error {
	before := rt.Live()
	for i := 0; i < 50; i++ {
		obj, err := embed.NewObject(rt, embed.ResultType, conformanceArgs())
		if err != nil {
			return fmt.Errorf("embed.NewObject: cycle %d should succeed with valid arguments, got %v", i, err)
		}
		if err := obj.Release(); err != nil {
			return fmt.Errorf("embed.Object.Release: cycle %d should succeed, got %v", i, err)
		}
	}
	if after := rt.Live(); after != before {
		return fmt.Errorf("embed: construct/release cycles leaked %d header(s)", after-before)
	}
	return nil
}

func checkValidateUnit() error {
	if timeunit.Validate("") {
		return fmt.Errorf("timeunit.Validate: should return false for an absent unit")
	}
	if timeunit.Validate("foobar") {
		return fmt.Errorf("timeunit.Validate: should not validate invalid unit %q", "foobar")
	}
	for _, u := range timeunit.Units() {
		if !timeunit.Validate(u) {
			return fmt.Errorf("timeunit.Validate: should validate recognized unit %q", u)
		}
	}
	return nil
}
