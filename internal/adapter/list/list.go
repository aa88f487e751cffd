// Package list contains the hybrid persistent list at the core of mmlist.
//
// A list combines a shared, immutable backed snapshot (element bytes living
// in big memory, indexed by an offset table) with two version-specific
// overlays: a persistent sequence of elements appended past the snapshot
// boundary and a persistent map of backed indices that have been overwritten.
// Every mutation returns a new list value; overlays use structural sharing so
// branching versions never copy unrelated data.
package list

import (
	"context"
	"iter"

	"github.com/benbjohnson/immutable"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/codec"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// List is a persistent list whose backed region lives in big memory. The zero
// value is not usable; construct with [Empty] or [Load].
type List[T any] struct {
	shared      *snapshot[T]
	unbacked    *immutable.List[T]
	overwritten *immutable.Map[int, T]
}

// Empty returns an empty list. A nil options codec defaults to the JSON
// codec.
func Empty[T any](opts domain.ListOptions[T]) *List[T] {
	c := opts.Codec
	if c == nil {
		c = codec.NewJSON[T]()
	}
	return newList(emptySnapshot(c))
}

func newList[T any](shared *snapshot[T]) *List[T] {
	return &List[T]{
		shared:      shared,
		unbacked:    immutable.NewList[T](),
		overwritten: immutable.NewMap[int, T](nil),
	}
}

func (l *List[T]) derive(unbacked *immutable.List[T], overwritten *immutable.Map[int, T]) *List[T] {
	return &List[T]{shared: l.shared, unbacked: unbacked, overwritten: overwritten}
}

// Count returns the number of elements in the list.
func (l *List[T]) Count() int {
	return l.shared.count + l.unbacked.Len()
}

// Add returns a new list with v appended.
func (l *List[T]) Add(v T) *List[T] {
	return l.derive(l.unbacked.Append(v), l.overwritten)
}

// AddRange returns a new list with all values appended in order.
func (l *List[T]) AddRange(values ...T) *List[T] {
	unb := l.unbacked
	for _, v := range values {
		unb = unb.Append(v)
	}
	return l.derive(unb, l.overwritten)
}

// Clear returns an empty list reusing the same codec. The backed snapshot is
// not carried over.
func (l *List[T]) Clear() *List[T] {
	return newList(emptySnapshot(l.shared.codec))
}

// SetItem returns a new list with the element at index i replaced by v.
// Backed elements are overwritten logically, without touching the snapshot; a
// new version is produced even if v equals the current value.
func (l *List[T]) SetItem(i int, v T) (*List[T], error) {
	if i < 0 || i >= l.Count() {
		return nil, domain.ErrIndexOutOfRange{Index: i, Count: l.Count()}
	}
	if i >= l.shared.count {
		return l.derive(l.unbacked.Set(i-l.shared.count, v), l.overwritten), nil
	}
	return l.derive(l.unbacked, l.overwritten.Set(i, v)), nil
}

// RemoveLast returns a new list with the last n elements removed. Removing
// below the backed boundary derives a snapshot that shares the same offset
// table and payload while reporting a smaller count, so truncation never
// performs I/O and never invalidates sibling versions.
func (l *List[T]) RemoveLast(n int) (*List[T], error) {
	count := l.Count()
	if n < 0 || n > count {
		return nil, domain.ErrIndexOutOfRange{Index: n, Count: count}
	}
	newCount := count - n
	switch {
	case n == 0:
		return l, nil
	case newCount == 0:
		return l.Clear(), nil
	case newCount >= l.shared.count:
		return l.derive(l.unbacked.Slice(0, newCount-l.shared.count), l.overwritten), nil
	}
	snap, err := l.shared.truncated(newCount)
	if err != nil {
		return nil, err
	}
	ow := l.overwritten
	itr := l.overwritten.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		if k >= newCount {
			ow = ow.Delete(k)
		}
	}
	next := newList(snap)
	next.overwritten = ow
	return next, nil
}

// Get returns the effective element at index i. Unbacked elements resolve
// first, then overwritten ones, then the snapshot bytes are decoded. Backed
// slots with an empty byte range yield the zero value of T without a codec
// call.
func (l *List[T]) Get(ctx context.Context, i int) (T, error) {
	if i < 0 || i >= l.Count() {
		var zero T
		return zero, domain.ErrIndexOutOfRange{Index: i, Count: l.Count()}
	}
	if i >= l.shared.count {
		return l.unbacked.Get(i - l.shared.count), nil
	}
	if v, ok := l.overwritten.Get(i); ok {
		return v, nil
	}
	return l.shared.decode(ctx, i)
}

// Values returns a lazy, restartable iterator over the effective elements in
// index order. Elements are decoded on demand; after yielding a non-nil
// error the sequence stops.
func (l *List[T]) Values(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := range l.Count() {
			v, err := l.Get(ctx, i)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
