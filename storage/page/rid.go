package page

// RID is the record identifier for the given page identifier and
// slot number. A tuple carries its RID as a weak back-reference to
// where it was materialized from, never as an ownership relation.
type RID struct {
	pageID  PageID
	slotNum uint32
}

// Set sets the record identifier
func (r *RID) Set(pageID PageID, slot uint32) {
	r.pageID = pageID
	r.slotNum = slot
}

// GetPageID gets the page id
func (r *RID) GetPageID() PageID {
	return r.pageID
}

// GetSlotNum gets the slot number
func (r *RID) GetSlotNum() uint32 {
	return r.slotNum
}
