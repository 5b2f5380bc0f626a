// Package frontier implements the search frontier (a min-priority queue
// over SearchNodes) and the concurrent visited set, per spec §4.3. The
// frontier is a container/heap-backed binary heap guarded by a mutex held
// only across push/pop — never across node expansion — the same pattern
// the teacher's internal/search/search_coordinator.go PriorityQueue uses.
package frontier

import (
	"container/heap"
	"sync"

	"github.com/standardbeagle/decodex/internal/types"
)

// Frontier is the shared priority queue of search nodes, ordered by
// ascending totalCost, then ascending depth, then FIFO insertion order.
type Frontier struct {
	mu       sync.Mutex
	items    nodeHeap
	nextSeq  uint64
}

// New creates an empty frontier.
func New() *Frontier {
	f := &Frontier{}
	heap.Init(&f.items)
	return f
}

// Push adds a node to the frontier, stamping it with the next FIFO
// insertion sequence for tiebreaking.
func (f *Frontier) Push(node types.SearchNode) {
	f.mu.Lock()
	defer f.mu.Unlock()

	node = node.WithInsertionSeq(f.nextSeq)
	f.nextSeq++
	heap.Push(&f.items, node)
}

// Pop removes and returns the minimum-cost node, or false if the frontier
// is empty.
func (f *Frontier) Pop() (types.SearchNode, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == 0 {
		return types.SearchNode{}, false
	}
	node := heap.Pop(&f.items).(types.SearchNode)
	return node, true
}

// PopBatch removes and returns up to n minimum-cost nodes, in ascending
// order. Returns fewer than n if the frontier drains first.
func (f *Frontier) PopBatch(n int) []types.SearchNode {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n > len(f.items) {
		n = len(f.items)
	}
	batch := make([]types.SearchNode, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, heap.Pop(&f.items).(types.SearchNode))
	}
	return batch
}

// IsEmpty reports whether the frontier currently has no nodes.
func (f *Frontier) IsEmpty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items) == 0
}

// Size returns the current number of queued nodes.
func (f *Frontier) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// nodeHeap implements container/heap.Interface over SearchNodes, ordered
// per the Frontier invariant in spec §3: ascending totalCost, ties broken
// by ascending depth, then by FIFO age.
type nodeHeap []types.SearchNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	ci, cj := h[i].TotalCost(), h[j].TotalCost()
	if ci != cj {
		return ci < cj
	}
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].InsertionSeq() < h[j].InsertionSeq()
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(types.SearchNode))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
