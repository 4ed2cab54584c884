package buffer

// ClockReplacer picks eviction victims with the clock algorithm.
// Which frame gets victimized is a policy internal to the pool, not
// part of the storage contract.
type ClockReplacer struct {
	cList     *circularList
	clockHand **frameNode
}

// NewClockReplacer instantiates a new clock replacer
func NewClockReplacer(poolSize uint32) *ClockReplacer {
	cList := newCircularList(poolSize)
	return &ClockReplacer{cList, &cList.head}
}

// Victim removes the victim frame as defined by the replacement policy
func (c *ClockReplacer) Victim() *FrameID {
	if c.cList.size == 0 {
		return nil
	}

	currentNode := *c.clockHand
	for {
		if currentNode.referenced {
			currentNode.referenced = false
			c.clockHand = &currentNode.next
			currentNode = *c.clockHand
		} else {
			frameID := currentNode.key
			c.clockHand = &currentNode.next
			c.cList.remove(currentNode.key)
			return &frameID
		}
	}
}

// Unpin puts a frame back into the sweep, making it a candidate
// victim.
func (c *ClockReplacer) Unpin(id FrameID) {
	if !c.cList.hasKey(id) {
		c.cList.insert(id, true)
		if c.cList.size == 1 {
			c.clockHand = &c.cList.head
		}
	}
}

// Pin takes a frame out of the sweep; it cannot be victimized until
// unpinned again.
func (c *ClockReplacer) Pin(id FrameID) {
	node := c.cList.find(id)
	if node == nil {
		return
	}

	if *c.clockHand == node {
		c.clockHand = &(*c.clockHand).next
	}
	c.cList.remove(id)
}

// Size returns the number of candidate frames in the sweep.
func (c *ClockReplacer) Size() uint32 {
	return c.cList.size
}
