package cache

// Node is an element of a List. It stores its key so the owner can map a
// node back to its entry in O(1).
type Node[K comparable] struct {
	Key  K
	prev *Node[K]
	next *Node[K]
	list *List[K]
}

// List is a doubly-linked recency list.
// The list is not thread-safe; callers must handle synchronization.
//
// The head is the most recently used, tail is least recently used.
type List[K comparable] struct {
	head *Node[K]
	tail *Node[K]
	len  int
}

// NewList creates an empty recency list.
func NewList[K comparable]() *List[K] {
	return &List[K]{}
}

// Len returns the number of nodes in the list.
func (l *List[K]) Len() int {
	return l.len
}

// PushFront adds a new node at the front (most recently used).
// Returns the created node for later access.
func (l *List[K]) PushFront(key K) *Node[K] {
	node := &Node[K]{Key: key, list: l}
	l.linkFront(node)
	return node
}

// MoveToFront marks an existing node as most recently used.
// Nodes that belong to another list, or were removed, are ignored.
func (l *List[K]) MoveToFront(node *Node[K]) {
	if node == nil || node.list != l || node == l.head {
		return
	}
	l.unlink(node)
	l.linkFront(node)
}

// Remove removes a node from the list. Removing a node twice is a no-op.
func (l *List[K]) Remove(node *Node[K]) {
	if node == nil || node.list != l {
		return
	}
	l.unlink(node)
	node.list = nil
}

// Back returns the key of the least recently used node without removing it.
// Returns zero value and false if list is empty.
func (l *List[K]) Back() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	return l.tail.Key, true
}

// Keys returns the keys ordered from least to most recently used.
func (l *List[K]) Keys() []K {
	keys := make([]K, 0, l.len)
	for n := l.tail; n != nil; n = n.prev {
		keys = append(keys, n.Key)
	}
	return keys
}

// Clear removes all nodes from the list.
func (l *List[K]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev, n.next, n.list = nil, nil, nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *List[K]) linkFront(node *Node[K]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// unlink detaches a node from its neighbours. The node keeps its list tag so
// MoveToFront can relink it.
func (l *List[K]) unlink(node *Node[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}
