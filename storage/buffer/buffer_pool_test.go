package buffer_test

import (
	stderrors "errors"
	"testing"

	"github.com/skawamoto/MedakaDB/catalog"
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/buffer"
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	testingpkg "github.com/skawamoto/MedakaDB/testing/testing_assert"
	"github.com/skawamoto/MedakaDB/storage/tuple"
	"github.com/skawamoto/MedakaDB/types"
)

// setupPool registers one virtual table backed by pageCount empty
// pages and returns the pool, the file and its table id.
func setupPool(t *testing.T, poolSize uint32, pageCount int32) (*buffer.BufferPool, *heap.HeapFile, uint32) {
	pool := buffer.NewBufferPool(poolSize)
	c := catalog.NewCatalog(pool)
	pool.SetResolver(c)

	schema_, err := schema.NewSchema([]*column.Column{column.NewColumn("v", types.Integer)})
	testingpkg.Ok(t, err)

	file := heap.NewVirtualHeapFile("pool.dat", schema_, pool)
	oid, err := c.AddTableNoKey(file, "pool")
	testingpkg.Ok(t, err)

	for n := int32(0); n < pageCount; n++ {
		testingpkg.Ok(t, file.WritePage(access.NewEmptyHeapPage(page.NewPageID(oid, n), schema_)))
	}
	return pool, file, oid
}

func TestFetchHitSharesFrame(t *testing.T) {
	pool, _, oid := setupPool(t, 4, 1)
	txn := access.NewTransaction(types.TxnID(1))
	pageID := page.NewPageID(oid, 0)

	first, err := pool.FetchPage(txn, pageID, access.ReadOnly)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(1), first.PinCount())

	second, err := pool.FetchPage(txn, pageID, access.ReadOnly)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, first, second)
	testingpkg.Equals(t, int32(2), second.PinCount())

	testingpkg.Ok(t, pool.UnpinPage(pageID, false))
	testingpkg.Ok(t, pool.UnpinPage(pageID, false))
	testingpkg.Equals(t, int32(0), first.PinCount())
}

func TestFetchRecordsPageOnTxn(t *testing.T) {
	pool, _, oid := setupPool(t, 4, 1)
	txn := access.NewTransaction(types.TxnID(1))
	pageID := page.NewPageID(oid, 0)

	_, err := pool.FetchPage(txn, pageID, access.ReadOnly)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, txn.FetchedPages().Contains(pageID))
}

func TestEvictionWritesDirtyPageBack(t *testing.T) {
	pool, file, oid := setupPool(t, 1, 2)
	txn := access.NewTransaction(types.TxnID(1))
	schema_ := file.GetSchema()

	hp, err := pool.FetchPage(txn, page.NewPageID(oid, 0), access.ReadWrite)
	testingpkg.Ok(t, err)
	row := tuple.NewTuple(schema_)
	row.SetField(0, types.NewInteger(7))
	_, err = hp.InsertTuple(row)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, pool.UnpinPage(page.NewPageID(oid, 0), true))

	// the single frame gets victimized for page 1
	_, err = pool.FetchPage(txn, page.NewPageID(oid, 1), access.ReadOnly)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, pool.UnpinPage(page.NewPageID(oid, 1), false))

	reread, err := file.ReadPage(page.NewPageID(oid, 0))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, reread.NumSlots()-1, reread.NumEmptySlots())
}

func TestAllFramesPinned(t *testing.T) {
	pool, _, oid := setupPool(t, 2, 3)
	txn := access.NewTransaction(types.TxnID(1))

	_, err := pool.FetchPage(txn, page.NewPageID(oid, 0), access.ReadOnly)
	testingpkg.Ok(t, err)
	_, err = pool.FetchPage(txn, page.NewPageID(oid, 1), access.ReadOnly)
	testingpkg.Ok(t, err)

	_, err = pool.FetchPage(txn, page.NewPageID(oid, 2), access.ReadOnly)
	testingpkg.Equals(t, buffer.ErrNoAvailableFrame, err)

	// releasing one frame unblocks the fetch
	testingpkg.Ok(t, pool.UnpinPage(page.NewPageID(oid, 0), false))
	_, err = pool.FetchPage(txn, page.NewPageID(oid, 2), access.ReadOnly)
	testingpkg.Ok(t, err)
}

func TestFetchUnknownTable(t *testing.T) {
	pool, _, _ := setupPool(t, 2, 1)
	txn := access.NewTransaction(types.TxnID(1))

	_, err := pool.FetchPage(txn, page.NewPageID(999, 0), access.ReadOnly)
	testingpkg.SimpleAssert(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestFetchUnderAbortedTxn(t *testing.T) {
	pool, _, oid := setupPool(t, 2, 1)
	txn := access.NewTransaction(types.TxnID(1))
	txn.SetState(access.ABORTED)

	_, err := pool.FetchPage(txn, page.NewPageID(oid, 0), access.ReadOnly)
	testingpkg.SimpleAssert(t, stderrors.Is(err, errors.ErrTxnAborted))
}

func TestUnpinUnknownPage(t *testing.T) {
	pool, _, oid := setupPool(t, 2, 1)
	err := pool.UnpinPage(page.NewPageID(oid, 5), false)
	testingpkg.SimpleAssert(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestReleaseTablePages(t *testing.T) {
	pool, file, oid := setupPool(t, 2, 2)
	txn := access.NewTransaction(types.TxnID(1))
	pageID := page.NewPageID(oid, 0)

	hp, err := pool.FetchPage(txn, pageID, access.ReadWrite)
	testingpkg.Ok(t, err)
	row := tuple.NewTuple(file.GetSchema())
	row.SetField(0, types.NewInteger(9))
	_, err = hp.InsertTuple(row)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, pool.UnpinPage(pageID, true))

	testingpkg.Ok(t, pool.ReleaseTablePages(oid, file))

	// the dirty frame was written back before being dropped
	reread, err := file.ReadPage(pageID)
	testingpkg.Ok(t, err)
	_, err = reread.GetTuple(row.GetRID())
	testingpkg.Ok(t, err)

	// both frames are free again: two fresh fetches need no victim
	_, err = pool.FetchPage(txn, page.NewPageID(oid, 0), access.ReadOnly)
	testingpkg.Ok(t, err)
	_, err = pool.FetchPage(txn, page.NewPageID(oid, 1), access.ReadOnly)
	testingpkg.Ok(t, err)
}

func TestFlushAllPages(t *testing.T) {
	pool, file, oid := setupPool(t, 4, 1)
	txn := access.NewTransaction(types.TxnID(1))
	pageID := page.NewPageID(oid, 0)

	hp, err := pool.FetchPage(txn, pageID, access.ReadWrite)
	testingpkg.Ok(t, err)
	row := tuple.NewTuple(file.GetSchema())
	row.SetField(0, types.NewInteger(42))
	_, err = hp.InsertTuple(row)
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, pool.UnpinPage(pageID, true))

	testingpkg.Ok(t, pool.FlushAllPages())
	testingpkg.SimpleAssert(t, !hp.IsDirty())

	reread, err := file.ReadPage(pageID)
	testingpkg.Ok(t, err)
	got, err := reread.GetTuple(row.GetRID())
	testingpkg.Ok(t, err)
	field, _ := got.GetField(0)
	testingpkg.Equals(t, int32(42), field.ToInteger())
}
