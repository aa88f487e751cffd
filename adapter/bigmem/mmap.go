//go:build unix

package bigmem

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"golang.org/x/sys/unix"
)

// FileMapper is a [domain.MemoryMapper] that memory-maps the declared region
// when the stream is a regular file, so element bytes never enter the Go
// heap. Any other stream falls back to [HeapMapper]. The mapping is read-only
// and released when the last handle on it is closed.
type FileMapper struct {
	fallback HeapMapper
}

// NewFileMapper returns a new implementation of domain.MemoryMapper.
func NewFileMapper() domain.MemoryMapper {
	return &FileMapper{}
}

// Map implements domain.MemoryMapper.
func (fm *FileMapper) Map(r io.Reader, length uint64) (domain.BigMemory, error) {
	f, ok := r.(*os.File)
	if !ok || length == 0 {
		return fm.fallback.Map(r, length)
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fm.fallback.Map(r, length)
	}

	// The mapping offset must be page-aligned; map from the containing
	// page and offset the view by the remainder.
	pageSize := int64(unix.Getpagesize())
	aligned := pos &^ (pageSize - 1)
	delta := uint64(pos - aligned)

	data, err := unix.Mmap(int(f.Fd()), aligned, int(delta+length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %d bytes of %s", length, f.Name())
	}
	if _, err := f.Seek(int64(length), io.SeekCurrent); err != nil {
		_ = unix.Munmap(data)
		return nil, errors.Wrap(err, "advancing past mapped region")
	}

	m := newResource(data, unix.Munmap)
	view, err := m.Slice(delta, length)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	// The alignment handle served only to build the view.
	_ = m.Close()
	return view, nil
}
