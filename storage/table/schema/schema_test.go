package schema

import (
	"testing"

	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	testingpkg "github.com/skawamoto/MedakaDB/testing/testing_assert"
	"github.com/skawamoto/MedakaDB/types"
)

func TestEmptySchemaRejected(t *testing.T) {
	_, err := NewSchema(nil)
	testingpkg.Equals(t, ErrEmptySchema, err)
}

func TestSizeIsSumOfColumnWidths(t *testing.T) {
	s, err := NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer),
		column.NewColumn("b", types.Varchar),
	})
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, types.Integer.Size()+types.Varchar.Size(), s.Size())
	testingpkg.Equals(t, uint32(2), s.ColumnCount())
}

func TestFromSlices(t *testing.T) {
	name := "a"
	s, err := NewSchemaFromSlices(
		[]types.TypeID{types.Integer, types.Varchar},
		[]*string{&name, nil},
	)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(2), s.ColumnCount())

	colName, err := s.GetColumnName(1)
	testingpkg.Ok(t, err)
	testingpkg.SimpleAssert(t, colName == nil)

	_, err = NewSchemaFromSlices([]types.TypeID{types.Integer}, nil)
	testingpkg.Equals(t, ErrColumnCountMismatch, err)
}

func TestMergeIsAdditive(t *testing.T) {
	a, _ := NewSchema([]*column.Column{
		column.NewColumn("x", types.Integer),
		column.NewColumn("y", types.Integer),
	})
	b, _ := NewSchema([]*column.Column{
		column.NewColumn("z", types.Varchar),
	})

	merged := Merge(a, b)
	testingpkg.Equals(t, a.ColumnCount()+b.ColumnCount(), merged.ColumnCount())
	testingpkg.Equals(t, a.Size()+b.Size(), merged.Size())

	name, err := merged.GetColumnName(2)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "z", *name)
}

func TestStructuralEquality(t *testing.T) {
	name := "a"
	a, _ := NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})
	b, _ := NewSchemaFromSlices([]types.TypeID{types.Integer}, []*string{&name})
	c, _ := NewSchema([]*column.Column{column.NewColumn("b", types.Integer)})
	d, _ := NewSchema([]*column.Column{column.NewColumn("a", types.Varchar)})

	testingpkg.SimpleAssert(t, a.Equals(b))
	testingpkg.SimpleAssert(t, b.Equals(a))
	testingpkg.Equals(t, a.Hash(), b.Hash())
	testingpkg.SimpleAssert(t, !a.Equals(c))
	testingpkg.SimpleAssert(t, !a.Equals(d))
	testingpkg.SimpleAssert(t, !a.Equals(nil))
}

func TestDuplicateNamesResolveToFirst(t *testing.T) {
	s, _ := NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer),
		column.NewColumn("a", types.Varchar),
	})

	index, err := s.ColumnIndexByName("a")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(0), index)
}

func TestNilNameLookup(t *testing.T) {
	s, _ := NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer),
		column.NewUnnamedColumn(types.Integer),
	})

	index, err := s.ColumnIndex(nil)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(1), index)

	_, err = s.ColumnIndexByName("missing")
	testingpkg.Equals(t, errors.ErrNotFound, err)
}

func TestIndexOutOfRange(t *testing.T) {
	s, _ := NewSchema([]*column.Column{column.NewColumn("a", types.Integer)})

	_, err := s.GetColumn(1)
	testingpkg.Equals(t, errors.ErrIndexOutOfRange, err)
	_, err = s.GetColumnType(5)
	testingpkg.Equals(t, errors.ErrIndexOutOfRange, err)
}

func TestString(t *testing.T) {
	s, _ := NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer),
		column.NewUnnamedColumn(types.Varchar),
	})
	testingpkg.Equals(t, "a(int),null(string)", s.String())
}
