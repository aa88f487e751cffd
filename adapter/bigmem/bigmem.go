// Package bigmem contains the default [domain.BigMemory] and
// [domain.MemoryMapper] implementations.
//
// A big-memory value is a bounds-checked view over a shared byte resource.
// The resource, either heap bytes or a memory-mapped file region, is
// reference counted and released only when the last handle derived from it is
// closed.
package bigmem

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"github.com/vinicius-lino-figueiredo/mmlist/pkg/refcnt"
)

// resource is the shared backing of one or more Memory handles.
type resource struct {
	data    []byte
	refs    refcnt.RefCount
	release func([]byte) error
}

func (r *resource) unref() error {
	if r.refs.Release() && r.release != nil {
		return r.release(r.data)
	}
	return nil
}

// Memory is a handle on a byte range of a shared resource. It implements
// [domain.BigMemory].
type Memory struct {
	res    *resource
	off    uint64
	length uint64
	closed atomic.Bool
}

// NewBytes returns a big-memory view over heap bytes. The caller must not
// modify b after handing it over.
func NewBytes(b []byte) *Memory {
	return newResource(b, nil)
}

func newResource(data []byte, release func([]byte) error) *Memory {
	res := &resource{data: data, release: release}
	res.refs.Init(1)
	return &Memory{res: res, off: 0, length: uint64(len(data))}
}

// Len implements domain.BigMemory.
func (m *Memory) Len() uint64 { return m.length }

func (m *Memory) check(off, length uint64) error {
	if off > m.length || length > m.length-off {
		return domain.ErrRange{Offset: off, Length: length, Size: m.length}
	}
	return nil
}

// Range implements domain.BigMemory.
func (m *Memory) Range(off, length uint64) ([]byte, error) {
	if err := m.check(off, length); err != nil {
		return nil, err
	}
	base := m.res.data[m.off+off:]
	return base[:length:length], nil
}

// Slice implements domain.BigMemory. The returned handle holds its own
// reference on the shared resource.
func (m *Memory) Slice(off, length uint64) (domain.BigMemory, error) {
	if err := m.check(off, length); err != nil {
		return nil, err
	}
	m.res.refs.Acquire()
	return &Memory{res: m.res, off: m.off + off, length: length}, nil
}

// Close implements domain.BigMemory. Closing a handle twice is a no-op.
func (m *Memory) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	return m.res.unref()
}

// HeapMapper is a [domain.MemoryMapper] that reads the declared region into
// heap memory. It works for any reader and is the default mapper.
type HeapMapper struct{}

// NewHeapMapper returns a new implementation of domain.MemoryMapper.
func NewHeapMapper() domain.MemoryMapper {
	return HeapMapper{}
}

// Map implements domain.MemoryMapper.
func (HeapMapper) Map(r io.Reader, length uint64) (domain.BigMemory, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "reading snapshot payload")
	}
	return NewBytes(buf), nil
}
