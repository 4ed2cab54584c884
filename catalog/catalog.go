package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
)

// Catalog keeps track of every table: name to id, id to metadata.
// The two maps stay consistent; one registry lock guards them, so a
// replace-by-name runs as a single critical section.
//
// Table ids are assigned monotonically. The murmur hash of a file's
// canonical path is kept only as an internal lookup aid: adding the
// same underlying file again resolves to its existing id.
type Catalog struct {
	mutex       deadlock.RWMutex
	tableIDs    map[uint32]*TableMetadata
	tableNames  map[string]uint32
	fileHashes  map[uint32]uint32
	nextTableID uint32
	pool        access.PageFetcher
}

// NewCatalog makes an empty catalog. Heap files registered later
// fetch their pages through pool.
func NewCatalog(pool access.PageFetcher) *Catalog {
	return &Catalog{
		tableIDs:    make(map[uint32]*TableMetadata),
		tableNames:  make(map[string]uint32),
		fileHashes:  make(map[uint32]uint32),
		nextTableID: 1,
		pool:        pool,
	}
}

// pageReleaser is the page cache ability the catalog relies on when
// it makes a table id unresolvable: the table's cached frames must be
// flushed and dropped first, or dirty pages would be stranded in the
// cache with no way to write them back.
type pageReleaser interface {
	ReleaseTablePages(tableID uint32, file *heap.HeapFile) error
}

func (c *Catalog) releaseTablePages(table *TableMetadata) error {
	releaser, ok := c.pool.(pageReleaser)
	if !ok {
		return nil
	}
	return releaser.ReleaseTablePages(table.oid, table.file)
}

// releaseTablePagesByName must not be called with the registry lock
// held: the pool locks itself before resolving ids through this
// catalog, so lock order stays pool then catalog.
func (c *Catalog) releaseTablePagesByName(name string) error {
	c.mutex.RLock()
	var table *TableMetadata
	if oid, ok := c.tableNames[name]; ok {
		table = c.tableIDs[oid]
	}
	c.mutex.RUnlock()

	if table == nil {
		return nil
	}
	return c.releaseTablePages(table)
}

// AddTable registers file under name with the given primary key
// field and returns the assigned table id. When name is already
// bound, the old binding's cached pages are flushed and dropped and
// the binding is evicted from both maps; a replaced id becomes
// unresolvable unless the incoming file is the same one (same path
// hash), which keeps its id.
func (c *Catalog) AddTable(file *heap.HeapFile, name string, pkeyField string) (uint32, error) {
	if err := c.releaseTablePagesByName(name); err != nil {
		return 0, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	var evicted *TableMetadata
	if oldOID, ok := c.tableNames[name]; ok {
		if old, ok := c.tableIDs[oldOID]; ok {
			evicted = old
			delete(c.fileHashes, old.file.PathHash())
			delete(c.tableIDs, oldOID)
		}
		delete(c.tableNames, name)
	}

	oid, ok := c.fileHashes[file.PathHash()]
	if !ok {
		if evicted != nil && evicted.file.PathHash() == file.PathHash() {
			oid = evicted.oid
		} else {
			oid = c.nextTableID
			c.nextTableID++
		}
	}
	file.AssignTableID(oid)

	c.tableNames[name] = oid
	c.tableIDs[oid] = &TableMetadata{file, name, pkeyField, oid}
	c.fileHashes[file.PathHash()] = oid
	return oid, nil
}

// AddTableNoKey registers a table without a primary key.
func (c *Catalog) AddTableNoKey(file *heap.HeapFile, name string) (uint32, error) {
	return c.AddTable(file, name, "")
}

// AddTableWithGeneratedName registers a table under a fresh unique
// logical name.
func (c *Catalog) AddTableWithGeneratedName(file *heap.HeapFile) (uint32, error) {
	return c.AddTableNoKey(file, uuid.NewString())
}

// TableID returns the id name is bound to.
func (c *Catalog) TableID(name string) (uint32, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	oid, ok := c.tableNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: table %s", errors.ErrNotFound, name)
	}
	return oid, nil
}

func (c *Catalog) getTable(tableID uint32) (*TableMetadata, error) {
	table, ok := c.tableIDs[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: table id %d", errors.ErrNotFound, tableID)
	}
	return table, nil
}

func (c *Catalog) TableName(tableID uint32) (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	table, err := c.getTable(tableID)
	if err != nil {
		return "", err
	}
	return table.name, nil
}

func (c *Catalog) Schema(tableID uint32) (*schema.Schema, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	table, err := c.getTable(tableID)
	if err != nil {
		return nil, err
	}
	return table.Schema(), nil
}

// DatabaseFile returns the heap file holding the table's rows. The
// buffer pool resolves page addresses through this.
func (c *Catalog) DatabaseFile(tableID uint32) (*heap.HeapFile, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	table, err := c.getTable(tableID)
	if err != nil {
		return nil, err
	}
	return table.file, nil
}

func (c *Catalog) PrimaryKey(tableID uint32) (string, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	table, err := c.getTable(tableID)
	if err != nil {
		return "", err
	}
	return table.primaryKey, nil
}

// TableIDs returns a snapshot of every registered table id.
func (c *Catalog) TableIDs() []uint32 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	ids := make([]uint32, 0, len(c.tableIDs))
	for oid := range c.tableIDs {
		ids = append(ids, oid)
	}
	return ids
}

// Clear removes every table from the catalog. Each table's cached
// pages are flushed and dropped first, so no frame outlives its
// binding.
func (c *Catalog) Clear() error {
	c.mutex.RLock()
	tables := make([]*TableMetadata, 0, len(c.tableIDs))
	for _, table := range c.tableIDs {
		tables = append(tables, table)
	}
	c.mutex.RUnlock()

	for _, table := range tables {
		if err := c.releaseTablePages(table); err != nil {
			return err
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.tableIDs = make(map[uint32]*TableMetadata)
	c.tableNames = make(map[string]uint32)
	c.fileHashes = make(map[uint32]uint32)
	return nil
}
