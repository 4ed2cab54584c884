package access

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/types"
)

type TransactionState int32

const (
	GROWING TransactionState = iota
	COMMITTED
	ABORTED
)

// Transaction tracks the identity and state a scan runs under. The
// storage core performs no concurrency control of its own; the
// transaction id travels with every page fetch so the external cache
// and lock manager can act on it.
type Transaction struct {
	txnID   types.TxnID
	state   TransactionState
	pageSet mapset.Set[page.PageID]
}

func NewTransaction(txnID types.TxnID) *Transaction {
	return &Transaction{
		txnID:   txnID,
		state:   GROWING,
		pageSet: mapset.NewSet[page.PageID](),
	}
}

func (t *Transaction) GetTransactionID() types.TxnID {
	return t.txnID
}

func (t *Transaction) GetState() TransactionState {
	return t.state
}

func (t *Transaction) SetState(state TransactionState) {
	t.state = state
}

// RecordFetchedPage remembers a page this transaction touched.
func (t *Transaction) RecordFetchedPage(pageID page.PageID) {
	t.pageSet.Add(pageID)
}

// FetchedPages returns the set of pages fetched under this
// transaction so far.
func (t *Transaction) FetchedPages() mapset.Set[page.PageID] {
	return t.pageSet
}
