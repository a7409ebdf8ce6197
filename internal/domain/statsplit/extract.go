package statsplit

import (
	"reflect"

	sonic "github.com/bytedance/sonic"
)

// Aggregate is satisfied by a pointer to an aggregate type A that knows how to
// build itself from splits of type S. Reduce must be a pure function of its
// input.
type Aggregate[S, A any] interface {
	*A
	Reduce(splits []S) error
}

// Extract removes the record matching typeName (case-insensitive) and group
// from the pool, decodes its splits into S and reduces them into A.
//
// A missing record, or a record with no splits, yields the zero A. A decode
// failure or a structural violation from Reduce is returned as an error.
func Extract[S, A any, P Aggregate[S, A]](pool *Pool, typeName string, group Group) (A, error) {
	var out A
	record, ok := pool.take(typeName, group)
	if !ok {
		return out, nil
	}

	splits := make([]S, 0, len(record.Values))
	for i, raw := range record.Values {
		var split S
		if err := sonic.Unmarshal(raw, &split); err != nil {
			return out, &DecodeError{
				Type:  record.Type,
				Group: record.Group,
				Split: reflect.TypeFor[S]().String(),
				Index: i,
				Err:   err,
			}
		}
		splits = append(splits, split)
	}
	if len(splits) == 0 {
		return out, nil
	}

	if err := P(&out).Reduce(splits); err != nil {
		var zero A
		return zero, &ReduceError{Type: record.Type, Group: record.Group, Err: err}
	}
	return out, nil
}
