package types

import (
	"strings"

	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/errors"
)

type TypeID int

const (
	Invalid TypeID = iota
	Integer
	Varchar
)

const ErrUnknownType = errors.Error("unknown type token")

// Size returns the fixed number of bytes a field of this type
// occupies on a page. Varchar fields are stored as a 4 byte length
// word followed by a fixed payload.
func (t TypeID) Size() uint32 {
	switch t {
	case Integer:
		return 4
	case Varchar:
		return 4 + common.StringMaxLength
	}
	return 0
}

func (t TypeID) String() string {
	switch t {
	case Integer:
		return "int"
	case Varchar:
		return "string"
	}
	return "invalid"
}

// NewTypeIDFromToken parses a catalog bootstrap type token,
// case-insensitively.
func NewTypeIDFromToken(token string) (TypeID, error) {
	switch strings.ToLower(token) {
	case "int":
		return Integer, nil
	case "string":
		return Varchar, nil
	}
	return Invalid, ErrUnknownType
}
