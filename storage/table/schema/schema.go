package schema

import (
	"strings"

	"github.com/spaolacci/murmur3"
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/table/column"
	"github.com/skawamoto/MedakaDB/types"
)

const ErrEmptySchema = errors.Error("schema must have at least one column")
const ErrColumnCountMismatch = errors.Error("types and names differ in length")

// Schema is an immutable ordered column list. The total byte size of
// a row is computed once at construction.
type Schema struct {
	columns []*column.Column
	size    uint32
}

func NewSchema(columns []*column.Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySchema
	}

	schema := &Schema{columns: columns}
	for _, col := range columns {
		schema.size += col.FixedLength()
	}
	return schema, nil
}

// NewSchemaFromSlices builds a schema from parallel type and optional
// name slices. A nil entry in names makes that column unnamed.
func NewSchemaFromSlices(typeIDs []types.TypeID, names []*string) (*Schema, error) {
	if len(typeIDs) != len(names) {
		return nil, ErrColumnCountMismatch
	}

	columns := make([]*column.Column, 0, len(typeIDs))
	for i, typeID := range typeIDs {
		if names[i] == nil {
			columns = append(columns, column.NewUnnamedColumn(typeID))
		} else {
			columns = append(columns, column.NewColumn(*names[i], typeID))
		}
	}
	return NewSchema(columns)
}

func (s *Schema) ColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) GetColumn(colIndex uint32) (*column.Column, error) {
	if colIndex >= s.ColumnCount() {
		return nil, errors.ErrIndexOutOfRange
	}
	return s.columns[colIndex], nil
}

func (s *Schema) GetColumnType(colIndex uint32) (types.TypeID, error) {
	col, err := s.GetColumn(colIndex)
	if err != nil {
		return types.Invalid, err
	}
	return col.GetType(), nil
}

func (s *Schema) GetColumnName(colIndex uint32) (*string, error) {
	col, err := s.GetColumn(colIndex)
	if err != nil {
		return nil, err
	}
	return col.GetColumnName(), nil
}

// ColumnIndex scans for the first column whose name equals the given
// one. A nil probe matches the first unnamed column. Duplicated names
// resolve to the lowest index.
func (s *Schema) ColumnIndex(name *string) (uint32, error) {
	for i, col := range s.columns {
		colName := col.GetColumnName()
		if name == nil || colName == nil {
			if name == nil && colName == nil {
				return uint32(i), nil
			}
			continue
		}
		if *name == *colName {
			return uint32(i), nil
		}
	}
	return 0, errors.ErrNotFound
}

func (s *Schema) ColumnIndexByName(name string) (uint32, error) {
	return s.ColumnIndex(&name)
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

// Size returns the number of bytes one row of this schema occupies.
func (s *Schema) Size() uint32 {
	return s.size
}

// Merge concatenates a's columns followed by b's. Sizes are additive.
func Merge(a *Schema, b *Schema) *Schema {
	columns := make([]*column.Column, 0, len(a.columns)+len(b.columns))
	columns = append(columns, a.columns...)
	columns = append(columns, b.columns...)
	return &Schema{columns: columns, size: a.size + b.size}
}

// Equals holds iff both column sequences match elementwise in type
// and name, regardless of how either schema was constructed.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil || len(s.columns) != len(other.columns) {
		return false
	}
	for i, col := range s.columns {
		if !col.Equals(other.columns[i]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equals.
func (s *Schema) Hash() uint32 {
	h := murmur3.New32()
	for _, col := range s.columns {
		h.Write([]byte{byte(col.GetType())})
		if name := col.GetColumnName(); name != nil {
			h.Write([]byte(*name))
		}
		h.Write([]byte{0})
	}
	return h.Sum32()
}

func (s *Schema) String() string {
	rendered := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		rendered = append(rendered, col.String())
	}
	return strings.Join(rendered, ",")
}
