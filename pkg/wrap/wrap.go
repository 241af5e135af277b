// Package wrap provides the wrapper types generated builders classify
// fields by. Dot-import it so the single-segment names Optional and Vec are
// what the struct declarations mention:
//
//	import . "github.com/goliatone/go-buildergen/pkg/wrap"
//
//	type Order struct {
//		ID    string
//		Note  Optional[string]
//		Items Vec[string]
//	}
package wrap

import (
	"encoding/json"
)

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// MarshalJSON encodes an absent Optional as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}

// Vec is an ordered sequence. Generated builders append to it element by
// element and copy it on assembly.
type Vec[T any] []T

// Len returns the number of elements.
func (v Vec[T]) Len() int {
	return len(v)
}
