package data

import (
	"fmt"
	"iter"
	"slices"
)

// List is an ordered container. A List is not safe for concurrent mutation.
type List struct {
	handle uint64
	vals   []any
}

func NewList() *List {
	return NewListSize(0)
}

func NewListSize(n int) *List {
	return &List{handle: nextHandle(), vals: make([]any, 0, n)}
}

// ListOf builds a list from vs. It panics if a value is not storable.
func ListOf(vs ...any) *List {
	l := NewListSize(len(vs))
	if err := l.Append(vs...); err != nil {
		panic(err)
	}
	return l
}

func (l *List) Handle() uint64 {
	return l.handle
}

func (l *List) Len() int {
	return len(l.vals)
}

func (l *List) checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.vals))
	}
	return nil
}

func (l *List) Get(i int) (any, error) {
	if err := l.checkIndex(i, len(l.vals)); err != nil {
		return nil, err
	}
	return l.vals[i], nil
}

// Set replaces the value at i and returns the previous one.
func (l *List) Set(i int, v any) (any, error) {
	if err := l.checkIndex(i, len(l.vals)); err != nil {
		return nil, err
	}
	if err := checkStorable(l, v); err != nil {
		return nil, err
	}
	old := l.vals[i]
	l.vals[i] = v
	return old, nil
}

func (l *List) Append(vs ...any) error {
	for _, v := range vs {
		if err := checkStorable(l, v); err != nil {
			return err
		}
	}
	l.vals = append(l.vals, vs...)
	return nil
}

// Insert places v at i, shifting later values. i may equal Len.
func (l *List) Insert(i int, v any) error {
	if err := l.checkIndex(i, len(l.vals)+1); err != nil {
		return err
	}
	if err := checkStorable(l, v); err != nil {
		return err
	}
	l.vals = slices.Insert(l.vals, i, v)
	return nil
}

// Remove deletes the value at i and returns it.
func (l *List) Remove(i int) (any, error) {
	if err := l.checkIndex(i, len(l.vals)); err != nil {
		return nil, err
	}
	v := l.vals[i]
	l.vals = slices.Delete(l.vals, i, i+1)
	return v, nil
}

// RemoveRange deletes the values in [from, to).
func (l *List) RemoveRange(from, to int) error {
	if from < 0 || to > len(l.vals) || from > to {
		return fmt.Errorf("%w: [%d, %d) (len %d)", ErrIndexOutOfRange, from, to, len(l.vals))
	}
	l.vals = slices.Delete(l.vals, from, to)
	return nil
}

func (l *List) Clear() {
	clear(l.vals)
	l.vals = l.vals[:0]
}

// IndexOf returns the index of the first value Equal to v, or -1.
func (l *List) IndexOf(v any) int {
	for i, x := range l.vals {
		if Equal(x, v) {
			return i
		}
	}
	return -1
}

func (l *List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range l.vals {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns a new list with the same values. Nested containers are
// shared.
func (l *List) Clone() *List {
	return &List{handle: nextHandle(), vals: slices.Clone(l.vals)}
}

// Copy returns a deep copy of l.
func (l *List) Copy() *List {
	res := l.Clone()
	for i, v := range res.vals {
		res.vals[i] = copyValue(v)
	}
	return res
}

func (l *List) Hash() uint64 {
	return Hash(l)
}

func (l *List) String() string {
	d, err := Marshal(l)
	if err != nil {
		return fmt.Sprintf("<list %d: %v>", l.handle, err)
	}
	return string(d)
}
