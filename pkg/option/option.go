package option

// Option represents an optional value.
// It either contains a value or it does not.
//
// This interface is modeled after github.com/sagikazarmark/go-option.Option
type Option[T any] interface {
	// HasValue returns true if the Option contains a value.
	HasValue() bool

	// Value returns the value (or its default) stored in the Option.
	Value() T
}

type option[T any] struct {
	value    T
	hasValue bool
}

func (o option[T]) HasValue() bool {
	return o.hasValue
}

func (o option[T]) Value() T {
	return o.value
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return option[T]{value: v, hasValue: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return option[T]{}
}
