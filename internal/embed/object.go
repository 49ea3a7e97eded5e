package embed

import (
	"github.com/fnbench/fnbench/pkg/timeit"
)

// TypeHandle identifies a native extension type registered with the runtime.
// A nil handle on a constructor call means the embedding layer itself is
// misconfigured, which is a contract error, not bad user input.
type TypeHandle struct {
	Name string
}

// ResultType is the registered handle for the timing-result type
var ResultType = &TypeHandle{Name: "TimeitResult"}

// CallArgs is the packed argument container a constructor call arrives with
type CallArgs struct {
	Best      float64
	Unit      string
	Number    int
	Repeat    int
	Precision int
	Times     []float64
}

// Object is a timing result living behind the embedding boundary: the
// validated value plus its runtime-allocated header.
type Object struct {
	header *Header
	result *timeit.TimeitResult
	rt     Runtime
}

// Result returns the wrapped timing result
func (o *Object) Result() *timeit.TimeitResult {
	return o.result
}

// NewObject constructs a timing-result object through the embedding
// boundary. Missing runtime, type handle, or argument container are defects
// in the embedding layer and report contract errors; everything else is
// validated exactly like a direct NewResult call and reports validation
// errors. No header is allocated unless construction fully succeeds.
func NewObject(rt Runtime, typ *TypeHandle, args *CallArgs) (*Object, error) {
	const op = "new_object"

	if rt == nil {
		return nil, timeit.NewContractError(op, "runtime is nil")
	}
	if typ == nil {
		return nil, timeit.NewContractError(op, "type handle is nil")
	}
	if args == nil {
		return nil, timeit.NewContractError(op, "argument container is nil")
	}

	result, err := timeit.NewResult(args.Best, args.Unit, args.Number, args.Repeat, args.Precision, args.Times)
	if err != nil {
		return nil, err
	}

	return &Object{
		header: rt.AllocHeader(),
		result: result,
		rt:     rt,
	}, nil
}

// Release frees the runtime header and the owned samples. A nil or
// already-released object is a caller defect and reports a contract error.
func (o *Object) Release() error {
	const op = "release_object"

	if o == nil {
		return timeit.NewContractError(op, "release called on nil object")
	}
	if o.header == nil {
		return timeit.NewContractError(op, "object already released")
	}
	o.rt.FreeHeader(o.header)
	o.header = nil
	return o.result.Release()
}
