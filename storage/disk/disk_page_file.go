package disk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/errors"
)

// DiskPageFile is the OS-file implementation of PageFile.
type DiskPageFile struct {
	file *os.File
	path string
	size int64
}

// NewDiskPageFile opens (or creates) the page file at path. The path
// is canonicalized so that the same file always reports the same
// Path().
func NewDiskPageFile(path string) (*DiskPageFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrStorageIO, path, err)
	}

	file, err := os.OpenFile(absPath, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: can't open page file %s: %v", errors.ErrStorageIO, absPath, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: file info error: %v", errors.ErrStorageIO, err)
	}

	return &DiskPageFile{file, absPath, fileInfo.Size()}, nil
}

func (d *DiskPageFile) ReadPageAt(pageNum int32, data []byte) error {
	offset := int64(pageNum) * common.PageSize
	if offset+int64(len(data)) > d.size {
		return fmt.Errorf("%w: short read at page %d of %s", errors.ErrStorageIO, pageNum, d.path)
	}

	if _, err := d.file.ReadAt(data, offset); err != nil {
		return fmt.Errorf("%w: read of page %d of %s: %v", errors.ErrStorageIO, pageNum, d.path, err)
	}
	return nil
}

func (d *DiskPageFile) WritePageAt(pageNum int32, data []byte) error {
	offset := int64(pageNum) * common.PageSize
	bytesWritten, err := d.file.WriteAt(data, offset)
	if err != nil {
		return fmt.Errorf("%w: write of page %d of %s: %v", errors.ErrStorageIO, pageNum, d.path, err)
	}
	if bytesWritten != common.PageSize {
		return fmt.Errorf("%w: bytes written not equals page size", errors.ErrStorageIO)
	}

	if offset+int64(bytesWritten) > d.size {
		d.size = offset + int64(bytesWritten)
	}

	d.file.Sync()
	return nil
}

func (d *DiskPageFile) Size() int64 {
	return d.size
}

func (d *DiskPageFile) Path() string {
	return d.path
}

func (d *DiskPageFile) Close() error {
	return d.file.Close()
}
