package column

import (
	"github.com/skawamoto/MedakaDB/types"
)

// Column is one (type, optional name) entry of a schema. The name is
// optional; an unnamed column carries a nil name and two unnamed
// columns compare as equal on the name part.
type Column struct {
	columnName *string
	columnType types.TypeID
}

func NewColumn(name string, columnType types.TypeID) *Column {
	return &Column{&name, columnType}
}

func NewUnnamedColumn(columnType types.TypeID) *Column {
	return &Column{nil, columnType}
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

// GetColumnName returns the column name, nil when the column is
// unnamed.
func (c *Column) GetColumnName() *string {
	return c.columnName
}

// FixedLength returns the number of bytes a field of this column
// occupies on a page.
func (c *Column) FixedLength() uint32 {
	return c.columnType.Size()
}

// Equals compares type and name by value. Nil names match nil names.
func (c *Column) Equals(other *Column) bool {
	if c.columnType != other.columnType {
		return false
	}
	if c.columnName == nil || other.columnName == nil {
		return c.columnName == nil && other.columnName == nil
	}
	return *c.columnName == *other.columnName
}

// String renders the column as name(type); an absent name renders as
// the literal "null".
func (c *Column) String() string {
	return NameOrNull(c.columnName) + "(" + c.columnType.String() + ")"
}

// NameOrNull renders an optional name, using the literal string
// "null" when it is absent.
func NameOrNull(name *string) string {
	if name == nil {
		return "null"
	}
	return *name
}
