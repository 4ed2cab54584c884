package medaka

import (
	"sync/atomic"

	"github.com/skawamoto/MedakaDB/catalog"
	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/buffer"
	"github.com/skawamoto/MedakaDB/types"
)

// Instance bundles one database's buffer pool and catalog. Everything
// reaches its collaborators through the instance it was created from;
// there is no process-wide registry, so tests can run several
// instances side by side.
type Instance struct {
	pool      *buffer.BufferPool
	catalog_  *catalog.Catalog
	nextTxnID int32
}

// NewInstance wires an empty catalog to a fresh buffer pool of
// poolSize frames.
func NewInstance(poolSize uint32) *Instance {
	pool := buffer.NewBufferPool(poolSize)
	catalog_ := catalog.NewCatalog(pool)
	pool.SetResolver(catalog_)
	return &Instance{pool: pool, catalog_: catalog_}
}

// NewDefaultInstance uses the default pool size.
func NewDefaultInstance() *Instance {
	return NewInstance(common.BufferPoolSize)
}

func (i *Instance) GetBufferPool() *buffer.BufferPool {
	return i.pool
}

func (i *Instance) GetCatalog() *catalog.Catalog {
	return i.catalog_
}

// NewTxn starts a transaction with the next id.
func (i *Instance) NewTxn() *access.Transaction {
	return access.NewTransaction(types.TxnID(atomic.AddInt32(&i.nextTxnID, 1)))
}

// Shutdown flushes every dirty cached page back to disk.
func (i *Instance) Shutdown() error {
	return i.pool.FlushAllPages()
}
