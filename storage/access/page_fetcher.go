package access

import (
	"github.com/skawamoto/MedakaDB/storage/page"
)

// PageFetcher is the contract the storage layer requires from the
// shared page cache: fetch a page by id under a transaction and
// permission level. Fetches are the only blocking points of an
// iterator; the cache may block on lock acquisition for the
// transaction, and an abort raised there passes through unchanged.
//
// FetchPage pins the returned page; the caller unpins it when done.
type PageFetcher interface {
	FetchPage(txn *Transaction, pageID page.PageID, perm Permission) (*HeapPage, error)
	UnpinPage(pageID page.PageID, isDirty bool) error
}
