package executors

import (
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	"github.com/skawamoto/MedakaDB/storage/tuple"
)

// SeqScanExecutor reads each row of a table in no particular order,
// as laid out on disk. It is a thin facade over the heap file's
// iterator; the only work of its own is qualifying column names with
// the table alias.
type SeqScanExecutor struct {
	context *ExecutorContext
	tableID uint32
	alias   *string
	it      *heap.HeapFileIterator
}

// NewSeqScanExecutor binds the context's transaction and the given
// table to a fresh heap file iterator. alias may be nil; the
// rendered column prefix is then the literal "null".
func NewSeqScanExecutor(context *ExecutorContext, tableID uint32, alias *string) (*SeqScanExecutor, error) {
	file, err := context.GetCatalog().DatabaseFile(tableID)
	if err != nil {
		return nil, err
	}
	it := file.Iterator(context.GetTransaction())
	return &SeqScanExecutor{context, tableID, alias, it}, nil
}

// NewSeqScanExecutorWithDefaultAlias aliases the scan with the
// table's own catalog name.
func NewSeqScanExecutorWithDefaultAlias(context *ExecutorContext, tableID uint32) (*SeqScanExecutor, error) {
	name, err := context.GetCatalog().TableName(tableID)
	if err != nil {
		return nil, err
	}
	return NewSeqScanExecutor(context, tableID, &name)
}

// GetTableName returns the scanned table's actual catalog name.
func (e *SeqScanExecutor) GetTableName() (string, error) {
	return e.context.GetCatalog().TableName(e.tableID)
}

func (e *SeqScanExecutor) GetAlias() *string {
	return e.alias
}

// Schema returns the table's schema with every column renamed to
// "<alias>.<name>". An unset alias or column name renders as the
// literal string "null", so "null.f1", "t1.null" and "null.null"
// are all possible outputs.
func (e *SeqScanExecutor) Schema() (*schema.Schema, error) {
	tableSchema, err := e.context.GetCatalog().Schema(e.tableID)
	if err != nil {
		return nil, err
	}

	columns := make([]*column.Column, 0, tableSchema.ColumnCount())
	for _, col := range tableSchema.GetColumns() {
		qualified := column.NameOrNull(e.alias) + "." + column.NameOrNull(col.GetColumnName())
		columns = append(columns, column.NewColumn(qualified, col.GetType()))
	}
	return schema.NewSchema(columns)
}

// Reset swaps the bound table and alias. The iterator keeps running
// against the table it was opened on; only Schema and GetTableName
// observe the new binding until the scan is reconstructed.
func (e *SeqScanExecutor) Reset(tableID uint32, alias *string) {
	e.tableID = tableID
	e.alias = alias
}

func (e *SeqScanExecutor) Open() error {
	return e.it.Open()
}

func (e *SeqScanExecutor) HasNext() (bool, error) {
	return e.it.HasNext()
}

func (e *SeqScanExecutor) Next() (*tuple.Tuple, error) {
	return e.it.Next()
}

func (e *SeqScanExecutor) Close() {
	e.it.Close()
}

func (e *SeqScanExecutor) Rewind() error {
	return e.it.Rewind()
}
