package domain

import "os"

const (
	// DefaultDirMode is the permission applied to directories created for
	// snapshot files when no explicit mode is configured.
	DefaultDirMode os.FileMode = 0o755
	// DefaultFileMode is the permission applied to snapshot files when no
	// explicit mode is configured.
	DefaultFileMode os.FileMode = 0o644
)

// ListOptions contains the collaborators shared by every version of a list.
type ListOptions[T any] struct {
	// Codec serializes and deserializes single elements.
	Codec Codec[T]
	// Mapper converts the payload region of a stream into big memory
	// during Load.
	Mapper MemoryMapper
}

// ListOption configures list construction through the functional options
// pattern.
type ListOption[T any] func(*ListOptions[T])

// StoreOptions contains parameters for snapshot files managed by a store.
type StoreOptions struct {
	// FileMode is the permission for created snapshot files.
	FileMode os.FileMode
	// DirMode is the permission for created parent directories.
	DirMode os.FileMode
	// Storage performs the low-level file operations.
	Storage Storage
	// Mapper converts an opened snapshot file into big memory.
	Mapper MemoryMapper
}

// StoreOption configures store behavior through the functional options
// pattern.
type StoreOption func(*StoreOptions)
