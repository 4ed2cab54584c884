package access

import (
	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/page"
	"github.com/skawamoto/MedakaDB/storage/table/schema"
	"github.com/skawamoto/MedakaDB/storage/tuple"
)

const ErrPageFull = errors.Error("no empty slot on page")
const ErrTupleNotFound = errors.Error("tuple does not exist on page")
const ErrWrongPage = errors.Error("rid points at a different page")
const ErrInvalidPageData = errors.Error("page data length differs from page size")

// Heap page format, for rows of one fixed size:
//
//	-----------------------------------------------
//	| SLOT BITMAP | SLOT 0 | SLOT 1 | ... | (pad) |
//	-----------------------------------------------
//
// numSlots = floor(PageSize*8 / (rowSize*8 + 1)), one bitmap bit and
// rowSize bytes per slot. Trailing bytes that cannot fit another
// slot are unused.
type HeapPage struct {
	*page.Page
	schema_ *schema.Schema
	header  []byte
	tuples  []*tuple.Tuple
}

func numSlots(rowSize uint32) uint32 {
	return (common.PageSize * 8) / (rowSize*8 + 1)
}

func headerBytes(slots uint32) uint32 {
	return (slots + 7) / 8
}

// NewHeapPage parses exactly PageSize bytes into a page of rows.
// Tuples in used slots get their RID set to this page.
func NewHeapPage(pageID page.PageID, data []byte, schema_ *schema.Schema) (*HeapPage, error) {
	if len(data) != common.PageSize {
		return nil, ErrInvalidPageData
	}

	rowSize := schema_.Size()
	slots := numSlots(rowSize)
	hdrLen := headerBytes(slots)

	hp := &HeapPage{
		Page:    page.NewEmpty(pageID),
		schema_: schema_,
		header:  make([]byte, hdrLen),
		tuples:  make([]*tuple.Tuple, slots),
	}
	copy(hp.header, data[:hdrLen])
	copy(hp.Data()[:], data)

	for slot := uint32(0); slot < slots; slot++ {
		if !hp.isSlotUsed(slot) {
			continue
		}
		offset := hdrLen + slot*rowSize
		t := tuple.NewTupleFromBytes(data[offset:offset+rowSize], schema_)
		rid := &page.RID{}
		rid.Set(pageID, slot)
		t.SetRID(rid)
		hp.tuples[slot] = t
	}
	return hp, nil
}

// NewEmptyHeapPage makes a page with every slot free.
func NewEmptyHeapPage(pageID page.PageID, schema_ *schema.Schema) *HeapPage {
	slots := numSlots(schema_.Size())
	return &HeapPage{
		Page:    page.NewEmpty(pageID),
		schema_: schema_,
		header:  make([]byte, headerBytes(slots)),
		tuples:  make([]*tuple.Tuple, slots),
	}
}

func (hp *HeapPage) GetSchema() *schema.Schema {
	return hp.schema_
}

func (hp *HeapPage) NumSlots() uint32 {
	return uint32(len(hp.tuples))
}

func (hp *HeapPage) NumEmptySlots() uint32 {
	empty := uint32(0)
	for slot := uint32(0); slot < hp.NumSlots(); slot++ {
		if !hp.isSlotUsed(slot) {
			empty++
		}
	}
	return empty
}

func (hp *HeapPage) isSlotUsed(slot uint32) bool {
	return hp.header[slot/8]&(1<<(slot%8)) != 0
}

func (hp *HeapPage) markSlot(slot uint32, used bool) {
	if used {
		hp.header[slot/8] |= 1 << (slot % 8)
	} else {
		hp.header[slot/8] &^= 1 << (slot % 8)
	}
}

// InsertTuple places t into the first free slot and stamps its RID.
// The caller owns marking the page dirty at the cache.
func (hp *HeapPage) InsertTuple(t *tuple.Tuple) (*page.RID, error) {
	for slot := uint32(0); slot < hp.NumSlots(); slot++ {
		if hp.isSlotUsed(slot) {
			continue
		}
		hp.markSlot(slot, true)
		hp.tuples[slot] = t
		rid := &page.RID{}
		rid.Set(hp.ID(), slot)
		t.SetRID(rid)
		return rid, nil
	}
	return nil, ErrPageFull
}

// DeleteTuple frees the slot rid points at.
func (hp *HeapPage) DeleteTuple(rid *page.RID) error {
	if rid.GetPageID() != hp.ID() {
		return ErrWrongPage
	}
	slot := rid.GetSlotNum()
	if slot >= hp.NumSlots() || !hp.isSlotUsed(slot) {
		return ErrTupleNotFound
	}
	hp.markSlot(slot, false)
	hp.tuples[slot] = nil
	return nil
}

// GetTuple returns the tuple in the used slot rid points at.
func (hp *HeapPage) GetTuple(rid *page.RID) (*tuple.Tuple, error) {
	if rid.GetPageID() != hp.ID() {
		return nil, ErrWrongPage
	}
	slot := rid.GetSlotNum()
	if slot >= hp.NumSlots() || !hp.isSlotUsed(slot) {
		return nil, ErrTupleNotFound
	}
	return hp.tuples[slot], nil
}

// Serialize renders the page back into exactly PageSize bytes and
// refreshes the underlying frame data. Free slots serialize as zero
// bytes.
func (hp *HeapPage) Serialize() []byte {
	data := make([]byte, common.PageSize)
	copy(data, hp.header)

	rowSize := hp.schema_.Size()
	hdrLen := headerBytes(hp.NumSlots())
	for slot := uint32(0); slot < hp.NumSlots(); slot++ {
		if !hp.isSlotUsed(slot) {
			continue
		}
		copy(data[hdrLen+slot*rowSize:], hp.tuples[slot].Serialize())
	}
	copy(hp.Data()[:], data)
	return data
}

// Iterator walks the used slots in slot order.
func (hp *HeapPage) Iterator() *HeapPageIterator {
	return &HeapPageIterator{page: hp}
}

type HeapPageIterator struct {
	page *HeapPage
	slot uint32
}

func (it *HeapPageIterator) HasNext() bool {
	for it.slot < it.page.NumSlots() {
		if it.page.isSlotUsed(it.slot) {
			return true
		}
		it.slot++
	}
	return false
}

func (it *HeapPageIterator) Next() (*tuple.Tuple, error) {
	if !it.HasNext() {
		return nil, errors.ErrEndOfIterator
	}
	t := it.page.tuples[it.slot]
	it.slot++
	return t, nil
}
