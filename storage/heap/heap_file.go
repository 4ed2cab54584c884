package heap

import (
	"fmt"

	"github.com/spaolacci/murmur3"
	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/disk"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	"github.com/skawamoto/MedakaDB/storage/tuple"
)

// HeapFile stores one table's rows in no particular order, as a
// flat concatenation of fixed-size pages. Reads of whole pages go
// through the shared page cache; the heap file itself only performs
// raw page I/O on its backing file.
//
// A heap file gets its table id when it is registered with a
// catalog; pages cannot be addressed before that.
type HeapFile struct {
	pageFile disk.PageFile
	schema_  *schema.Schema
	pool     access.PageFetcher
	tableID  uint32
	pathHash uint32
}

// NewHeapFile opens the page file at path and binds it to schema_.
// Page fetches of the returned file go through pool.
func NewHeapFile(path string, schema_ *schema.Schema, pool access.PageFetcher) (*HeapFile, error) {
	pageFile, err := disk.NewDiskPageFile(path)
	if err != nil {
		return nil, err
	}
	return &HeapFile{
		pageFile: pageFile,
		schema_:  schema_,
		pool:     pool,
		pathHash: murmur3.Sum32([]byte(pageFile.Path())),
	}, nil
}

// NewVirtualHeapFile builds a heap file over an in-memory page file.
func NewVirtualHeapFile(path string, schema_ *schema.Schema, pool access.PageFetcher) *HeapFile {
	pageFile := disk.NewVirtualPageFile(path)
	return &HeapFile{
		pageFile: pageFile,
		schema_:  schema_,
		pool:     pool,
		pathHash: murmur3.Sum32([]byte(pageFile.Path())),
	}
}

// ID returns the catalog-assigned table id.
func (f *HeapFile) ID() uint32 {
	return f.tableID
}

// AssignTableID is called by the catalog when the file is
// registered.
func (f *HeapFile) AssignTableID(tableID uint32) {
	f.tableID = tableID
}

// PathHash is the murmur hash of the canonical backing path. The
// catalog keeps it as a lookup aid so that re-registering the same
// file resolves to the same table id. Distinct paths are not
// guaranteed distinct hashes.
func (f *HeapFile) PathHash() uint32 {
	return f.pathHash
}

func (f *HeapFile) GetSchema() *schema.Schema {
	return f.schema_
}

func (f *HeapFile) Path() string {
	return f.pageFile.Path()
}

// PageCount is floor(fileSize / PageSize). A trailing partial page
// is not addressable.
func (f *HeapFile) PageCount() int32 {
	return int32(f.pageFile.Size() / common.PageSize)
}

// ReadPage reads exactly one page from the backing file and parses
// it. Any I/O failure, a short read included, is fatal to the call.
func (f *HeapFile) ReadPage(pageID page.PageID) (*access.HeapPage, error) {
	data := make([]byte, common.PageSize)
	if err := f.pageFile.ReadPageAt(pageID.GetPageNum(), data); err != nil {
		return nil, err
	}
	return access.NewHeapPage(pageID, data, f.schema_)
}

// WritePage persists one page: it serializes the page and writes it
// back to the page's slot in the backing file, synced. The buffer
// pool calls this for dirty frames; nothing else persists pages.
func (f *HeapFile) WritePage(hp *access.HeapPage) error {
	return f.pageFile.WritePageAt(hp.ID().GetPageNum(), hp.Serialize())
}

// InsertTuple places t on the first page with a free slot, fetching
// pages through the cache with write intent. When every page is
// full, a fresh empty page is appended to the file first. The pages
// this dirtied are returned; the cache owns their write-back.
func (f *HeapFile) InsertTuple(txn *access.Transaction, t *tuple.Tuple) ([]*access.HeapPage, error) {
	for pageNum := int32(0); pageNum < f.PageCount(); pageNum++ {
		pageID := page.NewPageID(f.tableID, pageNum)
		hp, err := f.pool.FetchPage(txn, pageID, access.ReadWrite)
		if err != nil {
			return nil, err
		}
		if hp.NumEmptySlots() == 0 {
			f.pool.UnpinPage(pageID, false)
			continue
		}
		if _, err := hp.InsertTuple(t); err != nil {
			f.pool.UnpinPage(pageID, false)
			return nil, err
		}
		f.pool.UnpinPage(pageID, true)
		return []*access.HeapPage{hp}, nil
	}

	// all pages full, extend the file by one empty page
	pageID := page.NewPageID(f.tableID, f.PageCount())
	common.ShPrintf(common.DEBUG_INFO, "HeapFile::InsertTuple extending %s to page %d\n", f.Path(), pageID.GetPageNum())
	if err := f.WritePage(access.NewEmptyHeapPage(pageID, f.schema_)); err != nil {
		return nil, err
	}
	hp, err := f.pool.FetchPage(txn, pageID, access.ReadWrite)
	if err != nil {
		return nil, err
	}
	if _, err := hp.InsertTuple(t); err != nil {
		f.pool.UnpinPage(pageID, false)
		return nil, err
	}
	f.pool.UnpinPage(pageID, true)
	return []*access.HeapPage{hp}, nil
}

// DeleteTuple frees the slot t's RID points at. The dirtied page is
// returned; the cache owns its write-back.
func (f *HeapFile) DeleteTuple(txn *access.Transaction, t *tuple.Tuple) (*access.HeapPage, error) {
	rid := t.GetRID()
	if rid == nil {
		return nil, fmt.Errorf("%w: tuple has no storage location", access.ErrTupleNotFound)
	}

	hp, err := f.pool.FetchPage(txn, rid.GetPageID(), access.ReadWrite)
	if err != nil {
		return nil, err
	}
	if err := hp.DeleteTuple(rid); err != nil {
		f.pool.UnpinPage(rid.GetPageID(), false)
		return nil, err
	}
	f.pool.UnpinPage(rid.GetPageID(), true)
	return hp, nil
}

// Iterator makes a lazy row iterator over every page of the file in
// page-index order, then slot order within a page. No page access
// happens before Open.
func (f *HeapFile) Iterator(txn *access.Transaction) *HeapFileIterator {
	return &HeapFileIterator{file: f, txn: txn, state: iteratorClosed}
}

// Close releases the backing page file.
func (f *HeapFile) Close() error {
	return f.pageFile.Close()
}
