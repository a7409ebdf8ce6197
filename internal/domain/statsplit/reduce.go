package statsplit

import (
	"cmp"
	"fmt"
	"slices"

	crerr "github.com/cockroachdb/errors"
)

// Sequence keeps every split in API order.
type Sequence[S any] []S

func (s *Sequence[S]) Reduce(splits []S) error {
	*s = append(Sequence[S](nil), splits...)
	return nil
}

// Single holds the only split of a stat, if any.
type Single[S any] struct {
	Split S    `json:"split"`
	Found bool `json:"found"`
}

func (s *Single[S]) Reduce(splits []S) error {
	switch len(splits) {
	case 0:
		*s = Single[S]{}
	case 1:
		*s = Single[S]{Split: splits[0], Found: true}
	default:
		return crerr.Wrapf(ErrTooManyEntries, "got %d splits", len(splits))
	}
	return nil
}

func (s Single[S]) Get() (S, bool) {
	return s.Split, s.Found
}

// Keyed splits expose the key they are stored under in a Map.
type Keyed[K comparable] interface {
	Key() K
}

// Map indexes splits by their key. A repeated key is a DuplicateEntryError.
type Map[K comparable, S Keyed[K]] map[K]S

func (m *Map[K, S]) Reduce(splits []S) error {
	out := make(Map[K, S], len(splits))
	for _, split := range splits {
		key := split.Key()
		if _, exists := out[key]; exists {
			return &DuplicateEntryError{Key: fmt.Sprint(key)}
		}
		out[key] = split
	}
	*m = out
	return nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, S Keyed[K]](m Map[K, S]) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// NestedKeyed splits are stored under two independent keys.
type NestedKeyed[K1, K2 comparable] interface {
	OuterKey() K1
	InnerKey() K2
}

// NestedMap groups splits by outer key, then indexes each bucket by inner
// key. Duplicates are detected per bucket.
type NestedMap[K1, K2 comparable, S NestedKeyed[K1, K2]] map[K1]map[K2]S

func (m *NestedMap[K1, K2, S]) Reduce(splits []S) error {
	out := make(NestedMap[K1, K2, S])
	for _, split := range splits {
		outer, inner := split.OuterKey(), split.InnerKey()
		bucket, ok := out[outer]
		if !ok {
			bucket = make(map[K2]S)
			out[outer] = bucket
		}
		if _, exists := bucket[inner]; exists {
			return &DuplicateEntryError{Key: fmt.Sprintf("%v/%v", outer, inner)}
		}
		bucket[inner] = split
	}
	*m = out
	return nil
}

// Get looks up one split without allocating missing buckets.
func (m NestedMap[K1, K2, S]) Get(outer K1, inner K2) (S, bool) {
	split, ok := m[outer][inner]
	return split, ok
}

type HomeFlagged interface {
	IsHome() bool
}

type WinFlagged interface {
	IsWin() bool
}

// HomeAway is the home/away pair of a stat.
type HomeAway[S HomeFlagged] struct {
	Home S `json:"home"`
	Away S `json:"away"`
}

func (p *HomeAway[S]) Reduce(splits []S) error {
	home, away, err := partition(splits, func(s S) bool { return s.IsHome() }, ErrDuplicateHome, ErrDuplicateAway)
	if err != nil {
		return err
	}
	*p = HomeAway[S]{Home: home, Away: away}
	return nil
}

// WinLoss is the win/loss pair of a stat.
type WinLoss[S WinFlagged] struct {
	Win  S `json:"win"`
	Loss S `json:"loss"`
}

func (p *WinLoss[S]) Reduce(splits []S) error {
	win, loss, err := partition(splits, func(s S) bool { return s.IsWin() }, ErrDuplicateWin, ErrDuplicateLoss)
	if err != nil {
		return err
	}
	*p = WinLoss[S]{Win: win, Loss: loss}
	return nil
}

// partition assigns exactly two splits to the true and false slots of flag,
// whatever order they arrive in.
func partition[S any](splits []S, flag func(S) bool, bothTrue, bothFalse error) (S, S, error) {
	var zero S
	if len(splits) != 2 {
		return zero, zero, crerr.Wrapf(ErrNotLen2, "got %d splits", len(splits))
	}

	first, second := splits[0], splits[1]
	switch a, b := flag(first), flag(second); {
	case a && b:
		return zero, zero, bothTrue
	case !a && !b:
		return zero, zero, bothFalse
	case a:
		return first, second, nil
	default:
		return second, first, nil
	}
}
