package option

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImportPath is where generated code imports this package from.
const ImportPath = "github.com/goliatone/go-buildergen/pkg/option"

// Option holds either a value of type T or nothing. The zero value is absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present Option wrapping value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is absent.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// IsZero lets encoders honour the `omitzero` tag option for absent values.
func (o Option[T]) IsZero() bool {
	return !o.ok
}

// Get returns the wrapped value and whether it was present. When absent the
// zero value of T is returned.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// MustGet returns the wrapped value and panics when it is absent.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("option: MustGet called on an absent value")
	}
	return o.value
}

// OrElse returns the wrapped value, or fallback when absent.
func (o Option[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

// Take returns the current state and leaves the receiver absent.
func (o *Option[T]) Take() Option[T] {
	if o == nil {
		return Option[T]{}
	}
	taken := *o
	*o = Option[T]{}
	return taken
}

// String renders "Some(v)" or "None".
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// MarshalJSON encodes an absent Option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent and anything else as a present value.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Option[T]{}
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
