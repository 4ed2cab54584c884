package catalog

import (
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
)

// TableMetadata is one catalog entry: the heap file a table lives
// in, its logical name and its primary key field name (empty when
// the table has none).
type TableMetadata struct {
	file       *heap.HeapFile
	name       string
	primaryKey string
	oid        uint32
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.file.GetSchema()
}

func (t *TableMetadata) Name() string {
	return t.name
}

func (t *TableMetadata) PrimaryKey() string {
	return t.primaryKey
}

func (t *TableMetadata) OID() uint32 {
	return t.oid
}

func (t *TableMetadata) File() *heap.HeapFile {
	return t.file
}
