package tuple

import (
	"strings"

	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	"github.com/skawamoto/MedakaDB/types"
)

// Tuple is one row: a field array sized exactly to the bound
// schema's column count. Fields are null until set explicitly.
type Tuple struct {
	schema_ *schema.Schema
	fields  []types.Value
	rid     *page.RID
}

// NewTuple creates a tuple with all fields null.
func NewTuple(schema_ *schema.Schema) *Tuple {
	fields := make([]types.Value, schema_.ColumnCount())
	for i := range fields {
		typeID, _ := schema_.GetColumnType(uint32(i))
		fields[i] = types.NewNull(typeID)
	}
	return &Tuple{schema_: schema_, fields: fields}
}

// NewTupleFromBytes reads one fixed-width row of exactly
// schema_.Size() bytes, field by field in column order.
func NewTupleFromBytes(data []byte, schema_ *schema.Schema) *Tuple {
	t := NewTuple(schema_)
	offset := uint32(0)
	for i, col := range schema_.GetColumns() {
		width := col.FixedLength()
		t.fields[i] = types.NewValueFromBytes(data[offset:offset+width], col.GetType())
		offset += width
	}
	return t
}

func (t *Tuple) SetField(colIndex uint32, value types.Value) error {
	if colIndex >= uint32(len(t.fields)) {
		return errors.ErrIndexOutOfRange
	}
	t.fields[colIndex] = value
	return nil
}

func (t *Tuple) GetField(colIndex uint32) (types.Value, error) {
	if colIndex >= uint32(len(t.fields)) {
		return types.Value{}, errors.ErrIndexOutOfRange
	}
	return t.fields[colIndex], nil
}

func (t *Tuple) GetSchema() *schema.Schema {
	return t.schema_
}

// ResetSchema swaps only the schema reference. The field array is
// untouched; the caller keeps the two consistent.
func (t *Tuple) ResetSchema(schema_ *schema.Schema) {
	t.schema_ = schema_
}

// GetRID returns where the tuple was materialized from, nil for a
// tuple constructed in memory.
func (t *Tuple) GetRID() *page.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *page.RID) {
	t.rid = rid
}

// Serialize writes the row in its fixed width of schema_.Size()
// bytes. Null fields serialize as zero bytes and deserialize as zero
// values, not null; persisting a row erases null-ness.
func (t *Tuple) Serialize() []byte {
	data := make([]byte, 0, t.schema_.Size())
	for _, field := range t.fields {
		data = append(data, field.Serialize()...)
	}
	return data
}

// Size returns the on-page byte width of the row.
func (t *Tuple) Size() uint32 {
	return t.schema_.Size()
}

// String renders field values tab-separated; null fields render as
// the literal "null".
func (t *Tuple) String() string {
	rendered := make([]string, 0, len(t.fields))
	for _, field := range t.fields {
		rendered = append(rendered, field.ToString())
	}
	return strings.Join(rendered, "\t")
}

// Fields returns a fresh forward cursor over the field values. Every
// call restarts at the first field.
func (t *Tuple) Fields() *FieldIterator {
	return &FieldIterator{tuple: t}
}

// FieldIterator walks a tuple's field values front to back.
type FieldIterator struct {
	tuple *Tuple
	pos   uint32
}

func (it *FieldIterator) HasNext() bool {
	return it.pos < uint32(len(it.tuple.fields))
}

func (it *FieldIterator) Next() (types.Value, error) {
	if !it.HasNext() {
		return types.Value{}, errors.ErrEndOfIterator
	}
	value := it.tuple.fields[it.pos]
	it.pos++
	return value, nil
}
