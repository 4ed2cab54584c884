package medaka

import (
	"testing"

	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	testingpkg "github.com/skawamoto/MedakaDB/testing/testing_assert"
	"github.com/skawamoto/MedakaDB/storage/tuple"
	"github.com/skawamoto/MedakaDB/types"
)

func TestTxnIDsAreDistinct(t *testing.T) {
	instance := NewDefaultInstance()

	first := instance.NewTxn()
	second := instance.NewTxn()
	testingpkg.SimpleAssert(t, first.GetTransactionID() != second.GetTransactionID())
}

func TestInstancesAreIsolated(t *testing.T) {
	schema_, err := schema.NewSchema([]*column.Column{column.NewColumn("v", types.Integer)})
	testingpkg.Ok(t, err)

	a := NewInstance(4)
	b := NewInstance(4)

	file := heap.NewVirtualHeapFile("iso.dat", schema_, a.GetBufferPool())
	_, err = a.GetCatalog().AddTableNoKey(file, "iso")
	testingpkg.Ok(t, err)

	_, err = a.GetCatalog().TableID("iso")
	testingpkg.Ok(t, err)
	_, err = b.GetCatalog().TableID("iso")
	testingpkg.SimpleAssert(t, err != nil)
}

func TestReplaceBindingThenShutdown(t *testing.T) {
	instance := NewInstance(4)
	schema_, err := schema.NewSchema([]*column.Column{column.NewColumn("v", types.Integer)})
	testingpkg.Ok(t, err)

	fileA := heap.NewVirtualHeapFile("replaced.dat", schema_, instance.GetBufferPool())
	_, err = instance.GetCatalog().AddTableNoKey(fileA, "t")
	testingpkg.Ok(t, err)

	txn := instance.NewTxn()
	row := tuple.NewTuple(schema_)
	row.SetField(0, types.NewInteger(7))
	_, err = fileA.InsertTuple(txn, row)
	testingpkg.Ok(t, err)

	// rebinding the name must not strand fileA's dirty cached page
	fileB := heap.NewVirtualHeapFile("replacement.dat", schema_, instance.GetBufferPool())
	_, err = instance.GetCatalog().AddTableNoKey(fileB, "t")
	testingpkg.Ok(t, err)

	testingpkg.Ok(t, instance.Shutdown())

	reread, err := fileA.ReadPage(row.GetRID().GetPageID())
	testingpkg.Ok(t, err)
	got, err := reread.GetTuple(row.GetRID())
	testingpkg.Ok(t, err)
	field, _ := got.GetField(0)
	testingpkg.Equals(t, int32(7), field.ToInteger())
}

func TestShutdownFlushes(t *testing.T) {
	instance := NewInstance(4)
	schema_, err := schema.NewSchema([]*column.Column{column.NewColumn("v", types.Integer)})
	testingpkg.Ok(t, err)

	file := heap.NewVirtualHeapFile("flush.dat", schema_, instance.GetBufferPool())
	_, err = instance.GetCatalog().AddTableNoKey(file, "flush")
	testingpkg.Ok(t, err)

	txn := instance.NewTxn()
	row := tuple.NewTuple(schema_)
	row.SetField(0, types.NewInteger(1))
	_, err = file.InsertTuple(txn, row)
	testingpkg.Ok(t, err)

	testingpkg.Ok(t, instance.Shutdown())

	reread, err := file.ReadPage(row.GetRID().GetPageID())
	testingpkg.Ok(t, err)
	_, err = reread.GetTuple(row.GetRID())
	testingpkg.Ok(t, err)
}
