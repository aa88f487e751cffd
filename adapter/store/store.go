// Package store persists list snapshots to named files.
//
// Save writes a snapshot crash-safely: the region goes to a temporary file
// which is fsynced and renamed over the target, so readers observe either the
// previous snapshot or the new one. Open memory-maps the snapshot file by
// default, keeping element bytes out of the heap until first access.
package store

import (
	"context"
	"io"
	"os"

	"github.com/vinicius-lino-figueiredo/mmlist/adapter/bigmem"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"github.com/vinicius-lino-figueiredo/mmlist/internal/adapter/list"
	"github.com/vinicius-lino-figueiredo/mmlist/internal/adapter/storage"
)

// WithFileMode sets the permission for created snapshot files.
func WithFileMode(mode os.FileMode) domain.StoreOption {
	return func(o *domain.StoreOptions) {
		o.FileMode = mode
	}
}

// WithDirMode sets the permission for created parent directories.
func WithDirMode(mode os.FileMode) domain.StoreOption {
	return func(o *domain.StoreOptions) {
		o.DirMode = mode
	}
}

// WithStorage sets the low-level file operations implementation.
func WithStorage(s domain.Storage) domain.StoreOption {
	return func(o *domain.StoreOptions) {
		o.Storage = s
	}
}

// WithMapper sets the mapper used to open snapshot payloads.
func WithMapper(m domain.MemoryMapper) domain.StoreOption {
	return func(o *domain.StoreOptions) {
		o.Mapper = m
	}
}

func resolve(options []domain.StoreOption) domain.StoreOptions {
	opts := domain.StoreOptions{
		FileMode: domain.DefaultFileMode,
		DirMode:  domain.DefaultDirMode,
	}
	for _, o := range options {
		o(&opts)
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewStorage()
	}
	if opts.Mapper == nil {
		opts.Mapper = bigmem.NewFileMapper()
	}
	return opts
}

// Save writes a snapshot of l to path, creating parent directories as needed.
func Save[T any](ctx context.Context, path string, l *list.List[T], options ...domain.StoreOption) error {
	opts := resolve(options)
	if err := opts.Storage.EnsureParentDirectoryExists(path, opts.DirMode); err != nil {
		return err
	}
	return opts.Storage.CrashSafeWriteFile(path, opts.FileMode, func(ws io.WriteSeeker) error {
		return l.Save(ctx, ws)
	})
}

// Open loads the snapshot at path. A nil codec defaults to the JSON codec.
// The file handle is closed before returning; a memory mapping taken by the
// mapper stays valid independently of it.
func Open[T any](ctx context.Context, path string, codec domain.Codec[T], options ...domain.StoreOption) (*list.List[T], error) {
	opts := resolve(options)
	rc, err := opts.Storage.ReadFileStream(path, opts.FileMode)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return list.Load(ctx, rc, domain.ListOptions[T]{Codec: codec, Mapper: opts.Mapper})
}

// Remove deletes the snapshot file at path.
func Remove(path string, options ...domain.StoreOption) error {
	opts := resolve(options)
	return opts.Storage.Remove(path)
}
