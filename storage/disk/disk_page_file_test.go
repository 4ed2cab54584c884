package disk

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/skawamoto/MedakaDB/common"
	testingpkg "github.com/skawamoto/MedakaDB/testing/testing_assert"
)

func pageOf(b byte) []byte {
	data := make([]byte, common.PageSize)
	for i := range data {
		data[i] = b
	}
	return data
}

func testPageFileContract(t *testing.T, pf PageFile) {
	testingpkg.Equals(t, int64(0), pf.Size())

	// reading past the end is an error, not zeros
	buf := make([]byte, common.PageSize)
	testingpkg.SimpleAssert(t, pf.ReadPageAt(0, buf) != nil)

	testingpkg.Ok(t, pf.WritePageAt(0, pageOf(0xaa)))
	testingpkg.Equals(t, int64(common.PageSize), pf.Size())

	testingpkg.Ok(t, pf.WritePageAt(2, pageOf(0xcc)))
	testingpkg.Equals(t, int64(3*common.PageSize), pf.Size())

	testingpkg.Ok(t, pf.ReadPageAt(0, buf))
	testingpkg.SimpleAssert(t, bytes.Equal(pageOf(0xaa), buf))

	testingpkg.Ok(t, pf.ReadPageAt(2, buf))
	testingpkg.SimpleAssert(t, bytes.Equal(pageOf(0xcc), buf))

	// overwrite in place keeps the size
	testingpkg.Ok(t, pf.WritePageAt(0, pageOf(0xab)))
	testingpkg.Equals(t, int64(3*common.PageSize), pf.Size())

	testingpkg.SimpleAssert(t, pf.ReadPageAt(3, buf) != nil)
	testingpkg.Ok(t, pf.Close())
}

func TestDiskPageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.dat")
	pf, err := NewDiskPageFile(path)
	testingpkg.Ok(t, err)
	testPageFileContract(t, pf)
}

func TestDiskPageFileReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.dat")

	pf, err := NewDiskPageFile(path)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, pf.WritePageAt(0, pageOf(0x5d)))
	testingpkg.Ok(t, pf.Close())

	pf, err = NewDiskPageFile(path)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int64(common.PageSize), pf.Size())

	buf := make([]byte, common.PageSize)
	testingpkg.Ok(t, pf.ReadPageAt(0, buf))
	testingpkg.SimpleAssert(t, bytes.Equal(pageOf(0x5d), buf))
	testingpkg.Ok(t, pf.Close())
}

func TestDiskPageFilePathIsCanonical(t *testing.T) {
	dir := t.TempDir()
	pf, err := NewDiskPageFile(filepath.Join(dir, "t.dat"))
	testingpkg.Ok(t, err)
	defer pf.Close()
	testingpkg.SimpleAssert(t, filepath.IsAbs(pf.Path()))
}

func TestVirtualPageFile(t *testing.T) {
	testPageFileContract(t, NewVirtualPageFile("virt.dat"))
}
