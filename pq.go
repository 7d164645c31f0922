package astar

// PriorityQueueItem is one frontier entry. IndexInQueue is maintained by the
// queue so the orchestrator can heap.Fix an entry after a decrease-key.
type PriorityQueueItem[NodeType comparable] struct {
	Node         NodeType
	GScore       int
	FCost        int
	IndexInQueue int
	sequence     int
}

// PriorityQueue orders items by ascending FCost. Ties go to the node ordering
// when one is set, otherwise to the item pushed first.
type PriorityQueue[NodeType comparable] struct {
	items    []*PriorityQueueItem[NodeType]
	less     func(a, b NodeType) bool
	sequence int
}

func newPriorityQueue[NodeType comparable](less func(a, b NodeType) bool) *PriorityQueue[NodeType] {
	return &PriorityQueue[NodeType]{less: less}
}

func (queue *PriorityQueue[NodeType]) Len() int { return len(queue.items) }

func (queue *PriorityQueue[NodeType]) Less(i, j int) bool {
	a, b := queue.items[i], queue.items[j]
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	if queue.less != nil && a.Node != b.Node {
		return queue.less(a.Node, b.Node)
	}
	return a.sequence < b.sequence
}

func (queue *PriorityQueue[NodeType]) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	queue.items[i].IndexInQueue = i
	queue.items[j].IndexInQueue = j
}

func (queue *PriorityQueue[NodeType]) Push(x any) {
	item := x.(*PriorityQueueItem[NodeType])
	item.IndexInQueue = len(queue.items)
	item.sequence = queue.sequence
	queue.sequence++
	queue.items = append(queue.items, item)
}

func (queue *PriorityQueue[NodeType]) Pop() any {
	n := len(queue.items)
	item := queue.items[n-1]
	queue.items[n-1] = nil
	item.IndexInQueue = -1
	queue.items = queue.items[:n-1]
	return item
}
