package types

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/skawamoto/MedakaDB/common"
)

// Value is one field value. A Value whose data pointers are nil is
// null; a freshly constructed tuple holds null values until its
// fields are set explicitly.
type Value struct {
	integer   *int32
	varchar   *string
	valueType TypeID
}

func NewInteger(value int32) Value {
	return Value{&value, nil, Integer}
}

// NewVarchar truncates value to the fixed on-disk payload length.
func NewVarchar(value string) Value {
	if len(value) > common.StringMaxLength {
		value = value[:common.StringMaxLength]
	}
	return Value{nil, &value, Varchar}
}

// NewNull makes an unset value of the given type.
func NewNull(valueType TypeID) Value {
	return Value{nil, nil, valueType}
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) IsNull() bool {
	return v.integer == nil && v.varchar == nil
}

func (v Value) ToInteger() int32 {
	return *v.integer
}

func (v Value) ToVarchar() string {
	return *v.varchar
}

func (v Value) CompareEquals(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	if v.IsNull() || right.IsNull() {
		return v.IsNull() && right.IsNull()
	}
	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Varchar:
		return *v.varchar == *right.varchar
	}
	return false
}

// ToString renders the value; a null value renders as the literal
// string "null".
func (v Value) ToString() string {
	if v.IsNull() {
		return "null"
	}
	switch v.valueType {
	case Integer:
		return strconv.FormatInt(int64(*v.integer), 10)
	case Varchar:
		return *v.varchar
	}
	return "null"
}

// Serialize writes the value in its fixed on-disk width. A null
// value serializes as zero bytes of that width.
func (v Value) Serialize() []byte {
	data := make([]byte, v.valueType.Size())
	if v.IsNull() {
		return data
	}
	switch v.valueType {
	case Integer:
		binary.LittleEndian.PutUint32(data, uint32(*v.integer))
	case Varchar:
		binary.LittleEndian.PutUint32(data, uint32(len(*v.varchar)))
		copy(data[4:], *v.varchar)
	}
	return data
}

// NewValueFromBytes reads one fixed-width value of the given type.
// The encoding cannot represent null: a field that was serialized as
// null reads back as the type's zero value (integer 0, empty string),
// never as null.
func NewValueFromBytes(data []byte, valueType TypeID) Value {
	switch valueType {
	case Integer:
		var v int32
		binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &v)
		return NewInteger(v)
	case Varchar:
		length := binary.LittleEndian.Uint32(data)
		if length > common.StringMaxLength {
			length = common.StringMaxLength
		}
		return NewVarchar(string(data[4 : 4+length]))
	}
	return NewNull(valueType)
}
