// Package domain contains domain-specific interfaces and option types for
// mmlist.
//
// This package defines the capability interfaces that must be implemented by
// adapters (the element codec, the big-memory provider and the low-level
// storage) as well as functional options for configuring lists and stores.
package domain

import (
	"context"
	"io"
	"os"
)

// Codec converts a single list element to bytes and back. The codec instance
// is shared by every version of a list and by every snapshot derived from it,
// so implementations must be safe for concurrent use and deterministic: the
// same value must always encode to the same bytes.
//
// A zero-length encoding is reserved: a backed slot whose byte range is empty
// decodes to the zero value of T without the codec being called. A codec that
// legitimately produces zero bytes for a non-zero value will therefore see
// that value come back as the zero value after a save/load cycle.
type Codec[T any] interface {
	// Encode converts one element to bytes for persistence.
	Encode(context.Context, T) ([]byte, error)
	// Decode converts previously encoded bytes back to an element.
	Decode(context.Context, []byte) (T, error)
}

// BigMemory exposes a byte range of a possibly huge, already materialized
// resource, typically a memory-mapped file region. The underlying resource is
// reference counted: Slice returns a new handle sharing the same resource,
// and the resource is released only when the last handle is closed.
type BigMemory interface {
	// Len returns the total byte length of this view.
	Len() uint64
	// Range returns the bytes in [off, off+length). The returned slice
	// aliases the underlying resource and must not be retained past the
	// life of the handle, nor written to. Returns [ErrRange] if the range
	// falls outside the view.
	Range(off, length uint64) ([]byte, error)
	// Slice returns a sub-view as a new handle on the same resource.
	// Returns [ErrRange] if the range falls outside this view.
	Slice(off, length uint64) (BigMemory, error)
	// Close releases this handle. The resource itself is released when
	// every handle derived from it has been closed.
	Close() error
}

// MemoryMapper turns the next length bytes of a stream into a [BigMemory]
// view, leaving the stream positioned exactly past the consumed bytes.
// Implementations may memory-map the region when the stream is a real file,
// or fall back to reading it into heap memory.
type MemoryMapper interface {
	Map(r io.Reader, length uint64) (BigMemory, error)
}

// Storage provides low-level file operations with crash-safety guarantees.
type Storage interface {
	// Exists checks if a file exists.
	Exists(string) (bool, error)
	// EnsureParentDirectoryExists creates parent directories if needed.
	EnsureParentDirectoryExists(string, os.FileMode) error
	// CrashSafeWriteFile writes a file atomically: the write callback
	// receives a temporary file, which is synced and renamed over the
	// target only after the callback succeeds.
	CrashSafeWriteFile(string, os.FileMode, func(io.WriteSeeker) error) error
	// ReadFileStream opens a file for streaming reads.
	ReadFileStream(string, os.FileMode) (io.ReadCloser, error)
	// Remove deletes a file.
	Remove(string) error
}
