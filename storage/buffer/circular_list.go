package buffer

// FrameID is the type for frame id
type FrameID uint32

type frameNode struct {
	key        FrameID
	referenced bool
	next       *frameNode
	prev       *frameNode
}

// circularList is the ring of unpinned frames the clock hand sweeps.
type circularList struct {
	head       *frameNode
	tail       *frameNode
	size       uint32
	capacity   uint32
	supportMap map[FrameID]*frameNode
}

func newCircularList(capacity uint32) *circularList {
	return &circularList{capacity: capacity, supportMap: make(map[FrameID]*frameNode)}
}

func (c *circularList) hasKey(key FrameID) bool {
	_, ok := c.supportMap[key]
	return ok
}

func (c *circularList) find(key FrameID) *frameNode {
	return c.supportMap[key]
}

func (c *circularList) insert(key FrameID, referenced bool) {
	if node, ok := c.supportMap[key]; ok {
		node.referenced = referenced
		return
	}
	if c.size == c.capacity {
		panic("circularList::insert capacity is full")
	}

	newNode := &frameNode{key: key, referenced: referenced}
	if c.size == 0 {
		newNode.next = newNode
		newNode.prev = newNode
		c.head = newNode
		c.tail = newNode
	} else {
		newNode.next = c.head
		newNode.prev = c.tail
		c.tail.next = newNode
		c.head.prev = newNode
		c.tail = newNode
	}

	c.size++
	c.supportMap[key] = newNode
}

func (c *circularList) remove(key FrameID) {
	node, ok := c.supportMap[key]
	if !ok {
		return
	}

	if c.size == 1 {
		c.head = nil
		c.tail = nil
	} else {
		node.prev.next = node.next
		node.next.prev = node.prev
		if node == c.head {
			c.head = node.next
		}
		if node == c.tail {
			c.tail = node.prev
		}
	}

	c.size--
	delete(c.supportMap, key)
}
