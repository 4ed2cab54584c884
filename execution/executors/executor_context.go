package executors

import (
	"github.com/skawamoto/MedakaDB/catalog"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/buffer"
)

// ExecutorContext stores all the context necessary to run an
// executor: the catalog and page cache handles are passed in
// explicitly rather than reached through a process-wide registry.
type ExecutorContext struct {
	catalog_ *catalog.Catalog
	bpm      *buffer.BufferPool
	txn      *access.Transaction
}

func NewExecutorContext(catalog_ *catalog.Catalog, bpm *buffer.BufferPool, txn *access.Transaction) *ExecutorContext {
	return &ExecutorContext{catalog_, bpm, txn}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog_
}

func (e *ExecutorContext) GetBufferPool() *buffer.BufferPool {
	return e.bpm
}

func (e *ExecutorContext) GetTransaction() *access.Transaction {
	return e.txn
}
