// Package storage contains the default [domain.Storage] implementation.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// Storage implements domain.Storage.
type Storage struct{}

// NewStorage returns a new implementation of domain.Storage.
func NewStorage() domain.Storage {
	return &Storage{}
}

// CrashSafeWriteFile implements domain.Storage. The write callback receives a
// temporary file next to the target; the file is synced and renamed over the
// target only after the callback succeeds, so a crash leaves either the old
// file or the new one, never a torn mix.
func (d *Storage) CrashSafeWriteFile(filename string, mode os.FileMode, write func(io.WriteSeeker) error) error {
	tempFilename := filename + "." + uuid.NewString() + "~"

	f, err := os.OpenFile(tempFilename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return errors.Wrap(err, "creating temporary snapshot file")
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFilename)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFilename)
		return errors.Wrap(err, "syncing temporary snapshot file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempFilename)
		return errors.Wrap(err, "closing temporary snapshot file")
	}
	if err := os.Rename(tempFilename, filename); err != nil {
		_ = os.Remove(tempFilename)
		return errors.Wrap(err, "renaming snapshot file into place")
	}
	return d.flushToStorage(filepath.Dir(filename), true)
}

// EnsureParentDirectoryExists implements domain.Storage.
func (d *Storage) EnsureParentDirectoryExists(filename string, mode os.FileMode) error {
	dir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, mode)
}

// Exists implements domain.Storage.
func (d *Storage) Exists(filename string) (bool, error) {
	_, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *Storage) flushToStorage(filename string, isDir bool) error {
	flags := os.O_RDWR
	if isDir {
		flags = os.O_RDONLY
	}
	fileHandle, err := os.OpenFile(filename, flags, 0)
	if err != nil {
		return errors.Wrap(err, "opening for fsync")
	}
	if err := fileHandle.Sync(); err != nil {
		_ = fileHandle.Close()
		return errors.Wrap(err, "fsync")
	}
	return fileHandle.Close()
}

// ReadFileStream implements domain.Storage.
func (d *Storage) ReadFileStream(filename string, mode os.FileMode) (io.ReadCloser, error) {
	return os.OpenFile(filename, os.O_RDONLY, mode)
}

// Remove implements domain.Storage.
func (d *Storage) Remove(filename string) error {
	return os.Remove(filename)
}
