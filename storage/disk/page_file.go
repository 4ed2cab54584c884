package disk

// PageFile is one table's backing store: a flat sequence of
// fixed-size pages with no header or footer. Page k occupies the
// byte range [k*PageSize, (k+1)*PageSize).
type PageFile interface {
	// ReadPageAt fills data with exactly one page. A short read or
	// unreadable file fails with a storage I/O error, immediately
	// and without retry.
	ReadPageAt(pageNum int32, data []byte) error
	// WritePageAt persists exactly one page and syncs it out.
	WritePageAt(pageNum int32, data []byte) error
	Size() int64
	Path() string
	Close() error
}
