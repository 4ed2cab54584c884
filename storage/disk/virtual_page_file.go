package disk

import (
	"fmt"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/errors"
)

// VirtualPageFile keeps its pages in memory. It backs tests and
// throwaway tables that never need to survive the process.
type VirtualPageFile struct {
	file      *memfile.File
	path      string
	size      int64
	fileMutex *sync.Mutex
}

func NewVirtualPageFile(path string) *VirtualPageFile {
	return &VirtualPageFile{memfile.New(make([]byte, 0)), path, 0, new(sync.Mutex)}
}

func (v *VirtualPageFile) ReadPageAt(pageNum int32, data []byte) error {
	v.fileMutex.Lock()
	defer v.fileMutex.Unlock()

	offset := int64(pageNum) * common.PageSize
	if offset+int64(len(data)) > v.size {
		return fmt.Errorf("%w: short read at page %d of %s", errors.ErrStorageIO, pageNum, v.path)
	}

	if _, err := v.file.ReadAt(data, offset); err != nil {
		return fmt.Errorf("%w: read of page %d of %s: %v", errors.ErrStorageIO, pageNum, v.path, err)
	}
	return nil
}

func (v *VirtualPageFile) WritePageAt(pageNum int32, data []byte) error {
	v.fileMutex.Lock()
	defer v.fileMutex.Unlock()

	offset := int64(pageNum) * common.PageSize
	v.file.WriteAt(data, offset)

	if offset+int64(len(data)) > v.size {
		v.size = offset + int64(len(data))
	}
	return nil
}

func (v *VirtualPageFile) Size() int64 {
	v.fileMutex.Lock()
	defer v.fileMutex.Unlock()
	return v.size
}

func (v *VirtualPageFile) Path() string {
	return v.path
}

func (v *VirtualPageFile) Close() error {
	return nil
}
