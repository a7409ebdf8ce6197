package statsplit

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrMalformedStats = crerr.New("malformed stats payload")

	ErrTooManyEntries = crerr.New("expected at most one split")
	ErrDuplicateEntry = crerr.New("duplicate split key")
	ErrNotLen2        = crerr.New("expected exactly two splits")
	ErrDuplicateHome  = crerr.New("both splits are home splits")
	ErrDuplicateAway  = crerr.New("both splits are away splits")
	ErrDuplicateWin   = crerr.New("both splits are win splits")
	ErrDuplicateLoss  = crerr.New("both splits are loss splits")
)

// DuplicateEntryError names the key that appeared twice in a keyed reduction.
type DuplicateEntryError struct {
	Key string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate split for key %s", e.Key)
}

func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

// DecodeError reports a split whose raw JSON did not fit the split type.
type DecodeError struct {
	Type  string
	Group Group
	Split string
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s split #%d of %s/%s: %v", e.Split, e.Index, e.Type, e.Group, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReduceError wraps a structural violation reported by an aggregate.
type ReduceError struct {
	Type  string
	Group Group
	Err   error
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("reduce %s/%s: %v", e.Type, e.Group, e.Err)
}

func (e *ReduceError) Unwrap() error {
	return e.Err
}

// CompositeError is what a composite record reports when any of its fields
// failed. The message stays generic; the cause is reachable via errors.As.
type CompositeError struct {
	Name string
	Err  error
}

func (e *CompositeError) Error() string {
	return fmt.Sprintf("failed to assemble %s stats", e.Name)
}

func (e *CompositeError) Unwrap() error {
	return e.Err
}
