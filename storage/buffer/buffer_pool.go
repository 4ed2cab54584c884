package buffer

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
	"github.com/skawamoto/MedakaDB/common"
	"github.com/skawamoto/MedakaDB/errors"
	"github.com/skawamoto/MedakaDB/storage/access"
	"github.com/skawamoto/MedakaDB/storage/heap"
	"github.com/skawamoto/MedakaDB/storage/page"
)

const ErrNoAvailableFrame = errors.Error("no available frame in buffer pool")

// TableResolver maps a page's file id to the heap file that owns it.
// The catalog implements this.
type TableResolver interface {
	DatabaseFile(tableID uint32) (*heap.HeapFile, error)
}

// BufferPool is the shared page cache. It caches heap pages across
// table files, pins pages while in use and writes dirty frames back
// through the owning heap file on eviction and flush.
type BufferPool struct {
	resolver  TableResolver
	frames    []*access.HeapPage
	replacer  *ClockReplacer
	freeList  []FrameID
	pageTable map[page.PageID]FrameID
	mutex     deadlock.Mutex
}

// NewBufferPool builds a pool with poolSize frames. SetResolver must
// be called before the first fetch.
func NewBufferPool(poolSize uint32) *BufferPool {
	freeList := make([]FrameID, poolSize)
	frames := make([]*access.HeapPage, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList[i] = FrameID(i)
	}
	return &BufferPool{
		frames:    frames,
		replacer:  NewClockReplacer(poolSize),
		freeList:  freeList,
		pageTable: make(map[page.PageID]FrameID),
	}
}

func (b *BufferPool) SetResolver(resolver TableResolver) {
	b.resolver = resolver
}

// FetchPage returns the requested page pinned, reading it from its
// heap file on a miss. The permission expresses the caller's intent
// for an external lock manager; the pool itself does not block on
// locks. A fetch under an aborted transaction fails immediately.
func (b *BufferPool) FetchPage(txn *access.Transaction, pageID page.PageID, perm access.Permission) (*access.HeapPage, error) {
	if txn != nil && txn.GetState() == access.ABORTED {
		return nil, fmt.Errorf("%w: txn %d", errors.ErrTxnAborted, txn.GetTransactionID())
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	common.SH_Assert(b.resolver != nil, "BufferPool::FetchPage resolver is not set")

	if frameID, ok := b.pageTable[pageID]; ok {
		hp := b.frames[frameID]
		hp.IncPinCount()
		b.replacer.Pin(frameID)
		if txn != nil {
			txn.RecordFetchedPage(pageID)
		}
		return hp, nil
	}

	frameID, err := b.getFrameID()
	if err != nil {
		return nil, err
	}

	file, err := b.resolver.DatabaseFile(pageID.GetFileID())
	if err != nil {
		b.freeList = append(b.freeList, *frameID)
		return nil, err
	}
	hp, err := file.ReadPage(pageID)
	if err != nil {
		b.freeList = append(b.freeList, *frameID)
		return nil, err
	}

	b.pageTable[pageID] = *frameID
	b.frames[*frameID] = hp
	if txn != nil {
		txn.RecordFetchedPage(pageID)
	}
	return hp, nil
}

// getFrameID takes a frame from the free list or victimizes one,
// writing it back first when dirty.
func (b *BufferPool) getFrameID() (*FrameID, error) {
	if len(b.freeList) > 0 {
		frameID := b.freeList[0]
		b.freeList = b.freeList[1:]
		return &frameID, nil
	}

	frameID := b.replacer.Victim()
	if frameID == nil {
		return nil, ErrNoAvailableFrame
	}

	victim := b.frames[*frameID]
	if victim != nil {
		common.ShPrintf(common.DEBUG_INFO, "BufferPool::getFrameID victimizing page %s dirty=%v\n", victim.ID(), victim.IsDirty())
		if victim.IsDirty() {
			file, err := b.resolver.DatabaseFile(victim.ID().GetFileID())
			if err != nil {
				return nil, err
			}
			if err := file.WritePage(victim); err != nil {
				return nil, err
			}
		}
		delete(b.pageTable, victim.ID())
	}
	return frameID, nil
}

// UnpinPage unpins the target page, recording whether the caller
// dirtied it.
func (b *BufferPool) UnpinPage(pageID page.PageID, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, ok := b.pageTable[pageID]
	if !ok {
		return fmt.Errorf("%w: page %s is not cached", errors.ErrNotFound, pageID)
	}

	hp := b.frames[frameID]
	hp.DecPinCount()
	if hp.PinCount() <= 0 {
		b.replacer.Unpin(frameID)
	}
	if isDirty {
		hp.SetIsDirty(true)
	}
	return nil
}

// ReleaseTablePages drops every cached frame of the given table,
// writing dirty ones back through file first. The catalog calls this
// before it makes a table id unresolvable; file is passed in directly
// because the caller is mid-rebind and the id must not be resolved
// again. Frames are dropped regardless of pin count.
func (b *BufferPool) ReleaseTablePages(tableID uint32, file *heap.HeapFile) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for pageID, frameID := range b.pageTable {
		if pageID.GetFileID() != tableID {
			continue
		}
		hp := b.frames[frameID]
		if hp.IsDirty() && file != nil {
			if err := file.WritePage(hp); err != nil {
				return err
			}
		}
		b.replacer.Pin(frameID)
		delete(b.pageTable, pageID)
		b.frames[frameID] = nil
		b.freeList = append(b.freeList, frameID)
	}
	return nil
}

// FlushPage writes the target page back to its heap file and clears
// the dirty bit.
func (b *BufferPool) FlushPage(pageID page.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.flushPage(pageID)
}

func (b *BufferPool) flushPage(pageID page.PageID) error {
	frameID, ok := b.pageTable[pageID]
	if !ok {
		return fmt.Errorf("%w: page %s is not cached", errors.ErrNotFound, pageID)
	}

	hp := b.frames[frameID]
	file, err := b.resolver.DatabaseFile(pageID.GetFileID())
	if err != nil {
		return err
	}
	if err := file.WritePage(hp); err != nil {
		return err
	}
	hp.SetIsDirty(false)
	return nil
}

// FlushAllPages writes every cached dirty page back.
func (b *BufferPool) FlushAllPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for pageID, frameID := range b.pageTable {
		if b.frames[frameID].IsDirty() {
			if err := b.flushPage(pageID); err != nil {
				return err
			}
		}
	}
	return nil
}
