// Package result provides a value that is either a success or a failure.
//
// Failures are carried as values instead of being returned next to a zero value,
// so a caller has to inspect the Result explicitly before using its content.
package result

import (
	"errors"

	"github.com/distribution-auth/tokenlife/pkg/option"
)

// ErrNilError is the failure stored when Err is called with a nil error.
var ErrNilError = errors.New("result: failure without error")

// Result holds either a value of type T (success) or an error (failure).
//
// The zero value is a success holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err returns a failed Result holding err.
// A nil err is replaced with ErrNilError.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = ErrNilError
	}

	return Result[T]{err: err}
}

// IsOk reports whether r is a success.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether r is a failure.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the value held by a success or the zero value of T for a failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error held by a failure or nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the content of r the Go way.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Ok returns the success value as an Option.
func (r Result[T]) Ok() option.Option[T] {
	if r.err != nil {
		return option.None[T]()
	}

	return option.Some(r.value)
}

// Match calls ok with the value of a success or fail with the error of a failure.
// Either callback may be nil.
func (r Result[T]) Match(ok func(T), fail func(error)) {
	if r.err != nil {
		if fail != nil {
			fail(r.err)
		}

		return
	}

	if ok != nil {
		ok(r.value)
	}
}

// And returns r if it is a failure, otherwise other.
//
// When both results are failures the failure of r wins.
func (r Result[T]) And(other Result[T]) Result[T] {
	if r.err != nil {
		return r
	}

	return other
}

// Or returns r if it is a success, otherwise other.
func (r Result[T]) Or(other Result[T]) Result[T] {
	if r.err == nil {
		return r
	}

	return other
}

// Map transforms the value of a success with fn. Failures pass through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}

	return Ok(fn(r.value))
}

// FlatMap chains a computation that may fail itself onto a success.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}

	return fn(r.value)
}
