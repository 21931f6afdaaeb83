package lef

import (
	"fmt"
	"iter"
)

// DefaultSeqLimit is the element limit of a Seq whose limit was never set.
const DefaultSeqLimit = 1 << 24

const seqMinCapacity = 2

// Seq is a growable, ordered collection. Capacity doubles (starting at 2)
// whenever an append finds the backing array full, so existing elements
// are copied once per doubling and never dropped or reordered.
//
// The zero value is an empty sequence ready to use.
type Seq[T any] struct {
	items []T
	limit int
	what  string
}

// NewSeq returns an empty sequence named what, used in index errors.
func NewSeq[T any](what string) Seq[T] {
	return Seq[T]{what: what}
}

// limitedSeq returns an empty sequence named what holding at most limit
// elements; limit <= 0 means DefaultSeqLimit.
func limitedSeq[T any](what string, limit int) Seq[T] {
	return Seq[T]{what: what, limit: limit}
}

// room fails with ErrResourceExhausted when a plain slice list of what
// holding n entries cannot take add more under limit.
func room(what string, n, add, limit int) error {
	if limit <= 0 {
		limit = DefaultSeqLimit
	}
	if n+add > limit {
		return fmt.Errorf("%w: %s list holds %d entries", ErrResourceExhausted, what, n)
	}
	return nil
}

// SetLimit caps the number of elements. n <= 0 restores DefaultSeqLimit.
func (s *Seq[T]) SetLimit(n int) {
	s.limit = n
}

func (s *Seq[T]) maxLen() int {
	if s.limit <= 0 {
		return DefaultSeqLimit
	}
	return s.limit
}

func (s *Seq[T]) name() string {
	if s.what == "" {
		return "item"
	}
	return s.what
}

// Append adds v at the end.
func (s *Seq[T]) Append(v T) error {
	n := len(s.items)
	if n >= s.maxLen() {
		return fmt.Errorf("%w: %s list holds %d entries", ErrResourceExhausted, s.name(), n)
	}
	if n == cap(s.items) {
		newCap := cap(s.items) * 2
		if newCap < seqMinCapacity {
			newCap = seqMinCapacity
		}
		if newCap > s.maxLen() {
			newCap = s.maxLen()
		}
		grown := make([]T, n, newCap)
		copy(grown, s.items)
		s.items = grown
	}
	s.items = append(s.items, v)
	return nil
}

// Len returns the number of elements.
func (s *Seq[T]) Len() int { return len(s.items) }

// Cap returns the allocated capacity.
func (s *Seq[T]) Cap() int { return cap(s.items) }

// At returns the element at i.
func (s *Seq[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, indexErr(s.name(), i, len(s.items))
	}
	return s.items[i], nil
}

// Ptr returns a pointer to the element at i. The pointer is invalidated by
// the next Append that grows the sequence.
func (s *Seq[T]) Ptr(i int) (*T, error) {
	if i < 0 || i >= len(s.items) {
		return nil, indexErr(s.name(), i, len(s.items))
	}
	return &s.items[i], nil
}

// Last returns a pointer to the most recently appended element.
func (s *Seq[T]) Last() (*T, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return &s.items[len(s.items)-1], true
}

// Reset empties the sequence, keeping its backing array.
func (s *Seq[T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}

// All iterates over index, element pairs in insertion order.
func (s *Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns a copy of the elements.
func (s *Seq[T]) Values() []T {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// clone returns a sequence with its own backing array. Elements are copied
// shallowly.
func (s *Seq[T]) clone() Seq[T] {
	return Seq[T]{items: s.Values(), limit: s.limit, what: s.what}
}
