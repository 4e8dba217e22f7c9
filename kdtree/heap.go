package kdtree

import "container/heap"

// Compile time check to ensure neighborHeap satisfies the heap interface.
var _ heap.Interface = (*neighborHeap)(nil)

// neighborHeap is a max-heap of neighbors keyed on squared distance, with
// ties broken by ID descending so the worst element is always at the top.
type neighborHeap struct {
	items []Neighbor
	keys  []float32 // squared distances, parallel to items
}

func (h *neighborHeap) Len() int { return len(h.items) }

func (h *neighborHeap) Less(i, j int) bool {
	if h.keys[i] != h.keys[j] {
		return h.keys[i] > h.keys[j]
	}
	return h.items[i].ID > h.items[j].ID
}

func (h *neighborHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.keys[i], h.keys[j] = h.keys[j], h.keys[i]
}

func (h *neighborHeap) Push(x any) {
	kn, _ := x.(keyedNeighbor)
	h.items = append(h.items, kn.n)
	h.keys = append(h.keys, kn.key)
}

func (h *neighborHeap) Pop() any {
	n := len(h.items) - 1
	kn := keyedNeighbor{n: h.items[n], key: h.keys[n]}
	h.items = h.items[:n]
	h.keys = h.keys[:n]

	return kn
}

type keyedNeighbor struct {
	n   Neighbor
	key float32
}

// boundedHeap keeps the limit best (closest) neighbors seen so far.
type boundedHeap struct {
	neighborHeap
	limit int
}

func (b *boundedHeap) full() bool { return len(b.items) >= b.limit }

// worst returns the squared distance of the current worst kept neighbor.
// Only valid when the heap is full.
func (b *boundedHeap) worst() float32 { return b.keys[0] }

// offer inserts the neighbor if it improves the current bound.
func (b *boundedHeap) offer(n Neighbor, key float32) {
	if !b.full() {
		heap.Push(&b.neighborHeap, keyedNeighbor{n: n, key: key})
		return
	}
	if key > b.worst() {
		return
	}
	if key == b.worst() && n.ID >= b.items[0].ID {
		return
	}
	heap.Pop(&b.neighborHeap)
	heap.Push(&b.neighborHeap, keyedNeighbor{n: n, key: key})
}
