package domain

import "fmt"

// ErrIndexOutOfRange is returned when an index or count argument falls outside
// the valid range of a list.
type ErrIndexOutOfRange struct {
	Index int
	Count int
}

func (e ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for list of %d elements", e.Index, e.Count)
}

// ErrRange is returned by [BigMemory] implementations when a requested byte
// range falls outside the mapped resource. It indicates a corrupt or
// mismatched snapshot and is never retried.
type ErrRange struct {
	Offset uint64
	Length uint64
	Size   uint64
}

func (e ErrRange) Error() string {
	return fmt.Sprintf("byte range [%d, %d) out of bounds for %d mapped bytes", e.Offset, e.Offset+e.Length, e.Size)
}

// ErrNotSeekable is returned by Save when the destination stream does not
// support random repositioning, which is required to patch the payload length
// field after the payload has been written.
type ErrNotSeekable struct{}

func (e ErrNotSeekable) Error() string {
	return "destination stream does not implement io.Seeker"
}

// ErrCodec wraps an element encode or decode failure with the index of the
// element that failed. The codec's own error is available through Unwrap.
type ErrCodec struct {
	Index int
	Err   error
}

func (e ErrCodec) Error() string {
	return fmt.Sprintf("codec failed on element %d: %v", e.Index, e.Err)
}

func (e ErrCodec) Unwrap() error { return e.Err }
