package heap

import (
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/storage/tuple"
)

type iteratorState int32

const (
	iteratorClosed iteratorState = iota
	iteratorOpen
	iteratorExhausted
)

// HeapFileIterator walks every row of a heap file lazily, in
// page-index order then slot order. It holds at most one buffered
// look-ahead row, so HasNext never advances the page cursor twice.
// Page fetches go through the shared cache with read-only intent and
// are the only points that may block; an abort raised there
// propagates unchanged.
type HeapFileIterator struct {
	file      *HeapFile
	txn       *access.Transaction
	state     iteratorState
	pageNum   int32
	pinned    page.PageID
	pageIter  *access.HeapPageIterator
	lookahead *tuple.Tuple
}

// Open resets the page cursor to the first page. No page is fetched
// until the first row is asked for.
func (it *HeapFileIterator) Open() error {
	it.state = iteratorOpen
	it.pageNum = 0
	it.pageIter = nil
	it.lookahead = nil
	return nil
}

// HasNext reports whether another row remains. Repeated calls do not
// advance the iterator. A closed iterator reports false.
func (it *HeapFileIterator) HasNext() (bool, error) {
	if it.state == iteratorClosed {
		return false, nil
	}
	if it.lookahead != nil {
		return true, nil
	}

	t, err := it.readNext()
	if err != nil {
		return false, err
	}
	it.lookahead = t
	return t != nil, nil
}

// Next yields the next row. Calling it on a closed iterator or past
// exhaustion fails.
func (it *HeapFileIterator) Next() (*tuple.Tuple, error) {
	if it.state == iteratorClosed {
		return nil, errors.ErrIteratorClosed
	}

	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrEndOfIterator
	}

	t := it.lookahead
	it.lookahead = nil
	return t, nil
}

// Close releases the row cursor and the pinned page. The iterator
// can be reopened afterwards.
func (it *HeapFileIterator) Close() {
	it.releasePage()
	it.lookahead = nil
	it.state = iteratorClosed
}

// Rewind restarts iteration from the first page, re-fetching pages
// through the cache.
func (it *HeapFileIterator) Rewind() error {
	it.Close()
	return it.Open()
}

func (it *HeapFileIterator) releasePage() {
	if it.pageIter != nil {
		it.file.pool.UnpinPage(it.pinned, false)
		it.pageIter = nil
	}
}

// readNext advances to the next row, crossing page boundaries as
// needed. It returns nil with no error once every page is exhausted.
func (it *HeapFileIterator) readNext() (*tuple.Tuple, error) {
	for {
		if it.pageIter != nil && it.pageIter.HasNext() {
			return it.pageIter.Next()
		}
		it.releasePage()

		if it.pageNum >= it.file.PageCount() {
			it.state = iteratorExhausted
			return nil, nil
		}

		pageID := page.NewPageID(it.file.ID(), it.pageNum)
		it.pageNum++
		hp, err := it.file.pool.FetchPage(it.txn, pageID, access.ReadOnly)
		if err != nil {
			return nil, err
		}
		it.pinned = pageID
		it.pageIter = hp.Iterator()
	}
}
