// Package omit models stat fields that the provider may leave out of a record.
//
// An omitted field is not zero. Older seasons in the stats API silently drop
// columns that did not exist yet, and summing those as zero produces career
// totals that look complete but are not.
package omit

import (
	"bytes"
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Number is the set of primitive types Combine can add.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Value is either a present T or omitted. The zero Value is omitted.
type Value[T any] struct {
	value   T
	present bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

func Omitted[T any]() Value[T] {
	return Value[T]{}
}

// Wrap maps a nil pointer to omitted and anything else to its pointee.
func Wrap[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.present
}

func (v Value[T]) Present() bool {
	return v.present
}

func (v Value[T]) IsOmitted() bool {
	return !v.present
}

// Or returns the value, or fallback when omitted.
func (v Value[T]) Or(fallback T) T {
	if !v.present {
		return fallback
	}
	return v.value
}

// Ptr returns nil when omitted.
func (v Value[T]) Ptr() *T {
	if !v.present {
		return nil
	}
	out := v.value
	return &out
}

func (v Value[T]) String() string {
	if !v.present {
		return "-"
	}
	return fmt.Sprint(v.value)
}

// Combine adds two values. Omission is absorbing: if either side is omitted
// the result is omitted.
func Combine[T Number](a, b Value[T]) Value[T] {
	if !a.present || !b.present {
		return Value[T]{}
	}
	return Of(a.value + b.value)
}

// CombineFunc is Combine for types that add through a function.
func CombineFunc[T any](a, b Value[T], add func(T, T) T) Value[T] {
	if !a.present || !b.present {
		return Value[T]{}
	}
	return Of(add(a.value, b.value))
}

// Map applies fn to a present value and keeps omission.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.present {
		return Value[U]{}
	}
	return Of(fn(v.value))
}

// Equal reports whether a and b are both omitted or both present and equal.
func Equal[T comparable](a, b Value[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

func EqualFunc[T any](a, b Value[T], eq func(T, T) bool) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	return eq(a.value, b.value)
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value[T]{}
		return nil
	}

	var decoded T
	if err := sonic.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*v = Of(decoded)
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return sonic.Marshal(v.value)
}
