package access

// Permission is the intent a page is fetched under. The storage core
// itself performs no locking; the permission is part of the page
// cache contract so an external lock manager can block the fetch.
type Permission int32

const (
	ReadOnly Permission = iota
	ReadWrite
)
