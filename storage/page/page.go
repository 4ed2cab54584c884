package page

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/skawamoto/MedakaDB/common"
)

// Page is one raw page frame held by the buffer pool.
type Page struct {
	id       PageID
	pinCount int32
	isDirty  bool
	data     *[common.PageSize]byte
	rwlatch  deadlock.RWMutex
}

func New(id PageID, pinCount int32, data *[common.PageSize]byte) *Page {
	return &Page{id: id, pinCount: pinCount, data: data}
}

func NewEmpty(id PageID) *Page {
	return &Page{id: id, pinCount: 1, data: &[common.PageSize]byte{}}
}

// IncPinCount increments pin count
func (p *Page) IncPinCount() {
	p.pinCount++
}

// DecPinCount decrements pin count
func (p *Page) DecPinCount() {
	if p.pinCount > 0 {
		p.pinCount--
	}
}

// PinCount returns the pin count
func (p *Page) PinCount() int32 {
	return p.pinCount
}

// ID returns the page id
func (p *Page) ID() PageID {
	return p.id
}

func (p *Page) Data() *[common.PageSize]byte {
	return p.data
}

func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *Page) IsDirty() bool {
	return p.isDirty
}

func (p *Page) RLatch() {
	p.rwlatch.RLock()
}

func (p *Page) RUnlatch() {
	p.rwlatch.RUnlock()
}

func (p *Page) WLatch() {
	p.rwlatch.Lock()
}

func (p *Page) WUnlatch() {
	p.rwlatch.Unlock()
}
