// Package refcnt provides an atomic reference count for resources shared by
// multiple handles, such as a memory mapping referenced by several snapshots.
package refcnt

import "sync/atomic"

// RefCount is an atomic reference count. The zero value has zero references;
// call Init before handing out the first handle.
type RefCount struct {
	val atomic.Int32
}

// Init sets the reference count to the specified value.
func (v *RefCount) Init(val int32) {
	v.val.Store(val)
}

// Refs returns the current number of references.
func (v *RefCount) Refs() int32 {
	return v.val.Load()
}

// Acquire adds a reference.
func (v *RefCount) Acquire() {
	v.val.Add(1)
}

// Release removes a reference and reports whether it was the last one.
func (v *RefCount) Release() bool {
	n := v.val.Add(-1)
	if n < 0 {
		panic("refcnt: released more references than acquired")
	}
	return n == 0
}
