package datastructure

import "errors"

var (
	ErrEmptyQueue   = errors.New("priority queue is empty")
	ErrItemNotFound = errors.New("item not in priority queue")
)

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
	seq  uint64
}

func NewPriorityQueueNode[T comparable](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{Rank: rank, Item: item}
}

/*
MinHeap binary heap priority queue with decrease key.

ties on Rank are broken by insertion order (first inserted first out), so extraction order is
deterministic for a deterministic sequence of Insert/DecreaseKey calls. DecreaseKey keeps the
original insertion order of the item.
*/
type MinHeap[T comparable] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
	seq  uint64
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].Rank != h.heap[j].Rank {
		return h.heap[i].Rank < h.heap[j].Rank
	}
	return h.heap[i].seq < h.heap[j].seq
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp move the item at index up while it is smaller than its parent. O(logN)
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 {
		parent := (index - 1) / 2
		if !h.less(index, parent) {
			break
		}
		h.swap(index, parent)
		index = parent
	}
}

// heapifyDown move the item at index down while one of its children is smaller. O(logN)
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := 2*index + 1
		right := 2*index + 2

		if left < len(h.heap) && h.less(left, smallest) {
			smallest = left
		}
		if right < len(h.heap) && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Insert new item. inserting an item that is already in the queue updates its rank instead.
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	if idx, ok := h.pos[key.Item]; ok {
		h.update(idx, key.Rank)
		return
	}
	key.seq = h.seq
	h.seq++
	h.heap = append(h.heap, key)
	index := len(h.heap) - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
}

// ExtractMin pop the item with the lowest rank. O(logN)
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.pos, root.Item)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey update the rank of an item already in the queue.
func (h *MinHeap[T]) DecreaseKey(key PriorityQueueNode[T]) error {
	idx, ok := h.pos[key.Item]
	if !ok {
		return ErrItemNotFound
	}
	h.update(idx, key.Rank)
	return nil
}

func (h *MinHeap[T]) update(idx int, rank float64) {
	old := h.heap[idx].Rank
	h.heap[idx].Rank = rank
	if rank < old {
		h.heapifyUp(idx)
	} else {
		h.heapifyDown(idx)
	}
}

// Items returns the queued items in heap order, used for rendering the frontier.
func (h *MinHeap[T]) Items() []T {
	items := make([]T, 0, len(h.heap))
	for _, n := range h.heap {
		items = append(items, n.Item)
	}
	return items
}
