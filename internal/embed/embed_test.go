package embed

import (
	"testing"

	"github.com/fnbench/fnbench/pkg/timeit"
)

func validArgs() *CallArgs {
	return &CallArgs{
		Best:      1.2e-5,
		Unit:      "usec",
		Number:    1000,
		Repeat:    3,
		Precision: 2,
		Times:     []float64{0.012, 0.013, 0.014},
	}
}

func TestNewObjectContractChecks(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()
	defer rt.Finalize()

	tests := []struct {
		name string
		rt   Runtime
		typ  *TypeHandle
		args *CallArgs
	}{
		{"nil runtime", nil, ResultType, validArgs()},
		{"nil type handle", rt, nil, validArgs()},
		{"nil argument container", rt, ResultType, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := NewObject(tt.rt, tt.typ, tt.args)
			if err == nil {
				t.Fatal("NewObject should have failed")
			}
			if obj != nil {
				t.Error("failed NewObject must not return an object")
			}
			if !timeit.IsContract(err) {
				t.Errorf("misconfigured embedding must report a contract error, got %v", err)
			}
			if timeit.IsValidation(err) {
				t.Errorf("embedding defects must be distinguishable from bad input: %v", err)
			}
		})
	}

	if rt.Live() != 0 {
		t.Errorf("failed constructions leaked %d header(s)", rt.Live())
	}
}

func TestNewObjectValidationErrors(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()
	defer rt.Finalize()

	args := validArgs()
	args.Unit = "foobar"
	obj, err := NewObject(rt, ResultType, args)
	if err == nil {
		t.Fatal("NewObject should reject an invalid unit")
	}
	if obj != nil {
		t.Error("failed NewObject must not return an object")
	}
	if !timeit.IsValidation(err) {
		t.Errorf("bad arguments must report a validation error, got %v", err)
	}
	if rt.Live() != 0 {
		t.Errorf("failed construction leaked %d header(s)", rt.Live())
	}
}

func TestObjectLifecycle(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()

	obj, err := NewObject(rt, ResultType, validArgs())
	if err != nil {
		t.Fatalf("NewObject returned unexpected error: %v", err)
	}
	if rt.Live() != 1 {
		t.Errorf("expected 1 live header after construction, got %d", rt.Live())
	}
	if obj.Result() == nil || obj.Result().Unit != "usec" {
		t.Errorf("object should wrap the validated result, got %+v", obj.Result())
	}

	if err := obj.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if rt.Live() != 0 {
		t.Errorf("expected 0 live headers after release, got %d", rt.Live())
	}
	if !obj.Result().Released() {
		t.Error("release should tear down the wrapped result")
	}

	if err := rt.Finalize(); err != nil {
		t.Errorf("Finalize should succeed with no live objects: %v", err)
	}
}

func TestReleaseNilObject(t *testing.T) {
	var obj *Object
	err := obj.Release()
	if err == nil {
		t.Fatal("Release on nil object must not succeed silently")
	}
	if !timeit.IsContract(err) {
		t.Errorf("Release on nil object should report a contract error, got %v", err)
	}
}

func TestReleaseTwice(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()
	defer rt.Finalize()

	obj, err := NewObject(rt, ResultType, validArgs())
	if err != nil {
		t.Fatalf("NewObject returned unexpected error: %v", err)
	}
	if err := obj.Release(); err != nil {
		t.Fatalf("first Release failed: %v", err)
	}
	err = obj.Release()
	if err == nil || !timeit.IsContract(err) {
		t.Errorf("second Release should report a contract error, got %v", err)
	}
}

// Construct/release cycles must leave the runtime's live count at zero.
func TestNoLeakAcrossCycles(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()

	for i := 0; i < 100; i++ {
		obj, err := NewObject(rt, ResultType, validArgs())
		if err != nil {
			t.Fatalf("cycle %d: NewObject failed: %v", i, err)
		}
		if err := obj.Release(); err != nil {
			t.Fatalf("cycle %d: Release failed: %v", i, err)
		}
	}

	if rt.Live() != 0 {
		t.Errorf("%d header(s) leaked across cycles", rt.Live())
	}
	if err := rt.Finalize(); err != nil {
		t.Errorf("Finalize should succeed after balanced cycles: %v", err)
	}
}

func TestFinalizeReportsLeaks(t *testing.T) {
	rt := NewFakeRuntime()
	rt.Initialize()

	if _, err := NewObject(rt, ResultType, validArgs()); err != nil {
		t.Fatalf("NewObject returned unexpected error: %v", err)
	}
	if err := rt.Finalize(); err == nil {
		t.Error("Finalize should fail while an object is still live")
	}
}
