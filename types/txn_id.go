package types

import (
	"bytes"
	"encoding/binary"
)

// TxnID is the type of the transaction identifier
type TxnID int32

// Serialize casts it to []byte
func (id TxnID) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, id)
	return buf.Bytes()
}

// NewTxnIDFromBytes creates a transaction id from []byte
func NewTxnIDFromBytes(data []byte) (ret TxnID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}
