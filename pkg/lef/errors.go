package lef

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned by accessors called with an index outside
	// [0, count) of the addressed collection.
	ErrInvalidIndex = errors.New("lef: invalid index")

	// ErrResourceExhausted is returned when a collection would grow past its
	// element limit. The record that returned it must be Reset before reuse.
	ErrResourceExhausted = errors.New("lef: resource exhausted")

	// ErrMisorderedCall is returned when an "add to current entry" call is
	// made before the entry it extends has been opened.
	ErrMisorderedCall = errors.New("lef: misordered call")

	// ErrItemType is returned by typed geometry accessors when the item at
	// the index is of another kind.
	ErrItemType = errors.New("lef: wrong geometry item type")
)

// IndexError describes an out of range access.
type IndexError struct {
	What  string // collection name, e.g. "property"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("lef: %s index %d is invalid, %s list is empty", e.What, e.Index, e.What)
	}
	return fmt.Sprintf("lef: %s index %d is invalid, valid index is from 0 to %d", e.What, e.Index, e.Len-1)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

func indexErr(what string, index, n int) error {
	return &IndexError{What: what, Index: index, Len: n}
}

func misordered(call, needs string) error {
	return fmt.Errorf("%w: %s called before %s", ErrMisorderedCall, call, needs)
}
