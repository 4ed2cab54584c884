package errors

// Error is a constant string error, comparable with errors.Is after
// wrapping via fmt.Errorf("%w: ...").
type Error string

func (e Error) Error() string {
	return string(e)
}

// Storage error taxonomy.
//
// Index and not-found errors are recoverable by the caller. Storage
// I/O and schema-load errors are fatal to the operation in progress
// and must never be swallowed. A transaction abort passes through
// every layer unchanged.
const (
	ErrIndexOutOfRange = Error("index out of range")
	ErrNotFound        = Error("no such element")
	ErrEndOfIterator   = Error("iterator is exhausted")
	ErrIteratorClosed  = Error("iterator is not open")
	ErrStorageIO       = Error("storage I/O failure")
	ErrSchemaLoad      = Error("schema load failed")
	ErrTxnAborted      = Error("transaction aborted")
)
