package timeit

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes errors for handling strategy
type ErrorKind int

const (
	KindUnknown    ErrorKind = iota
	KindValidation           // Bad argument, recoverable by the caller
	KindContract             // Caller defect (nil handles, use after release)
)

// Error wraps failures with the operation that produced them and a kind.
// Validation errors mean the input was bad; contract errors mean the calling
// code itself is broken and must not be treated as ordinary input failures.
type Error struct {
	Kind    ErrorKind
	Op      string // "new_result", "release", "timeit_once", etc.
	Message string
	Err     error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap implements error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

func newValidationError(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func newContractError(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindContract, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewContractError builds a contract-kind error for callers outside the
// package that guard the same boundary (the embedding layer).
func NewContractError(op, message string) *Error {
	return newContractError(op, "%s", message)
}

// IsValidation reports whether err is a validation-kind error
func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

// IsContract reports whether err is a contract-kind error
func IsContract(err error) bool {
	return kindOf(err) == KindContract
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
