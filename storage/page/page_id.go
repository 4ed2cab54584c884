package page

import "fmt"

// PageID addresses one page: the id of the table file it belongs to
// plus the page index inside that file. Page k occupies the byte
// range [k*PageSize, (k+1)*PageSize) of its file.
type PageID struct {
	fileID  uint32
	pageNum int32
}

// InvalidPageID represents an invalid page address
var InvalidPageID = PageID{0, -1}

func NewPageID(fileID uint32, pageNum int32) PageID {
	return PageID{fileID, pageNum}
}

func (id PageID) GetFileID() uint32 {
	return id.fileID
}

func (id PageID) GetPageNum() int32 {
	return id.pageNum
}

// IsValid checks if id is valid
func (id PageID) IsValid() bool {
	return id.pageNum >= 0
}

func (id PageID) String() string {
	return fmt.Sprintf("%d:%d", id.fileID, id.pageNum)
}
