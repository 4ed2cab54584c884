package common

var EnableDebug bool = false

const (
	// size of a data page in bytes, shared with the buffer pool
	PageSize = 4096
	// fixed payload length of a string field on disk
	StringMaxLength = 128
	// number of frames the buffer pool holds by default
	BufferPoolSize = 32
	// invalid transaction id
	InvalidTxnID = -1
)
