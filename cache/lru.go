package cache

// lruList is a doubly linked recency list. The front holds the most
// recently used entry. Not safe for concurrent use; callers hold the
// shard lock.
type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

type lruNode struct {
	ent  entry
	prev *lruNode
	next *lruNode
}

func (l *lruList) PushFront(ent entry) *lruNode {
	n := &lruNode{ent: ent}
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
	return n
}

func (l *lruList) MoveToFront(n *lruNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// RemoveOldest unlinks and returns the least recently used node, or
// nil when the list is empty.
func (l *lruList) RemoveOldest() *lruNode {
	n := l.tail
	if n == nil {
		return nil
	}
	l.unlink(n)
	return n
}

func (l *lruList) Remove(n *lruNode) {
	l.unlink(n)
}

func (l *lruList) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	l.size--
}

func (l *lruList) Clear() {
	l.head = nil
	l.tail = nil
	l.size = 0
}

func (l *lruList) Len() int { return l.size }
