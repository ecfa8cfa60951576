package proxy

import (
	"container/heap"
	"time"
)

// Element is a proxy with its rotation bookkeeping.
type Element struct {
	Proxy      *Proxy
	LastUsedAt time.Time
	Score      int
	Index      int // index in the heap
}

func (e *Element) UpdateScore(algo ScoreAlgo) {
	lastUsedAgo := time.Since(e.LastUsedAt)
	e.Score = algo.CalculateScore(e.Proxy, int64(lastUsedAgo.Seconds()))
}

// Heap is a max-heap of proxies by score.
type Heap struct {
	elements []*Element
	algo     ScoreAlgo
}

func NewHeap(elements []*Element, algo ScoreAlgo) *Heap {
	h := &Heap{elements: elements, algo: algo}
	heap.Init(h)
	return h
}

func (h Heap) Len() int { return len(h.elements) }

// Max-heap: higher Score is better
func (h Heap) Less(i, j int) bool {
	return h.elements[i].Score > h.elements[j].Score
}

func (h Heap) Swap(i, j int) {
	h.elements[i], h.elements[j] = h.elements[j], h.elements[i]
	h.elements[i].Index = i
	h.elements[j].Index = j
}

func (h *Heap) Push(x any) {
	item := x.(*Element)
	item.Index = len(h.elements)
	h.elements = append(h.elements, item)
}

func (h *Heap) Pop() any {
	n := len(h.elements)
	if n == 0 {
		return nil
	}
	item := h.elements[n-1]
	h.elements = h.elements[:n-1]
	return item
}

// Best returns the top n elements without removing them, then rescores the
// picked ones as freshly used and repairs the heap.
func (h *Heap) Best(n uint16) []*Element {
	if n > uint16(len(h.elements)) {
		n = uint16(len(h.elements))
	}
	picked := h.elements[:n]
	now := time.Now()
	for _, elem := range picked {
		elem.LastUsedAt = now
		elem.UpdateScore(h.algo)
	}
	for _, elem := range picked {
		heap.Fix(h, elem.Index)
	}
	return picked
}
