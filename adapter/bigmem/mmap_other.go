//go:build !unix

package bigmem

import (
	"io"

	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// FileMapper degrades to heap reads on platforms without unix mmap support.
type FileMapper struct {
	fallback HeapMapper
}

// NewFileMapper returns a new implementation of domain.MemoryMapper.
func NewFileMapper() domain.MemoryMapper {
	return &FileMapper{}
}

// Map implements domain.MemoryMapper.
func (fm *FileMapper) Map(r io.Reader, length uint64) (domain.BigMemory, error) {
	return fm.fallback.Map(r, length)
}
