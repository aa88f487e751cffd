// Package mmlist provides a persistent, append-optimized list whose bulk
// contents can live in a memory-mapped, read-only byte region instead of heap
// memory.
//
// A list is a value: every mutation ([List.Add], [List.AddRange],
// [List.SetItem], [List.RemoveLast], [List.Clear]) returns a new list and
// leaves the receiver untouched, so many versions of a collection coexist
// cheaply by sharing the unmodified tail. Elements written by an earlier
// [List.Save] stay serialized until first access; saving again copies their
// bytes verbatim instead of re-encoding them, so snapshot cost follows the
// number of changed or new elements, not the list size.
//
// The basic usage starts with [Empty], which can be configured with:
//
// - [WithCodec]: sets the codec serializing single elements.
//
// - [WithMapper]: sets the mapper turning a stream region into big memory on
// [Load].
//
// Snapshots written by [List.Save] are reopened with [Load], or through the
// file-oriented adapter/store package, which writes crash-safe snapshot files
// and memory-maps them on open.
package mmlist

import (
	"context"
	"io"

	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"github.com/vinicius-lino-figueiredo/mmlist/internal/adapter/list"
)

// List is a persistent list of elements of type T. See [Empty] and [Load].
type List[T any] = list.List[T]

// Codec converts a single list element to bytes and back.
type Codec[T any] = domain.Codec[T]

// BigMemory exposes a byte range of a possibly huge mapped resource.
type BigMemory = domain.BigMemory

// MemoryMapper turns a stream region into a [BigMemory] view.
type MemoryMapper = domain.MemoryMapper

// Option configures list construction through the functional options pattern.
type Option[T any] = domain.ListOption[T]

// ErrIndexOutOfRange is returned when an index or count argument falls
// outside the valid range of a list.
type ErrIndexOutOfRange = domain.ErrIndexOutOfRange

// ErrRange is returned when a requested byte range falls outside the mapped
// resource backing a snapshot.
type ErrRange = domain.ErrRange

// ErrNotSeekable is returned by [List.Save] when the destination stream does
// not support random repositioning.
type ErrNotSeekable = domain.ErrNotSeekable

// ErrCodec wraps an element encode or decode failure with the index of the
// element that failed.
type ErrCodec = domain.ErrCodec

// WithCodec sets the codec serializing single elements. The default is the
// JSON codec.
func WithCodec[T any](c Codec[T]) Option[T] {
	return func(o *domain.ListOptions[T]) {
		o.Codec = c
	}
}

// WithMapper sets the mapper used by [Load] to turn the payload region into
// big memory. The default reads the region into heap memory.
func WithMapper[T any](m MemoryMapper) Option[T] {
	return func(o *domain.ListOptions[T]) {
		o.Mapper = m
	}
}

func resolve[T any](options []Option[T]) domain.ListOptions[T] {
	var opts domain.ListOptions[T]
	for _, o := range options {
		o(&opts)
	}
	return opts
}

// Empty returns an empty list.
func Empty[T any](options ...Option[T]) *List[T] {
	return list.Empty(resolve(options))
}

// Load reads a snapshot region previously written by [List.Save] from r. Only
// the header and offset table are read eagerly; element bytes are decoded
// lazily on first access. On return the stream is positioned exactly past the
// consumed region.
func Load[T any](ctx context.Context, r io.Reader, options ...Option[T]) (*List[T], error) {
	return list.Load(ctx, r, resolve(options))
}
