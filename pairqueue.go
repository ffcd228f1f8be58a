package groebner

import "container/heap"

// A pair is an unordered pair of stable basis indices, keyed by the total
// degree of the lcm of the two leading monomials.
type pair struct {
	i      int
	j      int
	degree int
}

func (p pair) key() [2]int {
	return [2]int{min(p.i, p.j), max(p.i, p.j)}
}

// pairHeap is a min-heap of pairs ordered by lcm degree.
type pairHeap []pair

func (h pairHeap) Len() int            { return len(h) }
func (h pairHeap) Less(a, b int) bool  { return h[a].degree < h[b].degree }
func (h pairHeap) Swap(a, b int)       { h[a], h[b] = h[b], h[a] }
func (h *pairHeap) Push(x interface{}) { *h = append(*h, x.(pair)) }
func (h *pairHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// A pairQueue is a priority queue of index pairs together with a membership
// set.
// The membership set answers the "is this pair still scheduled" queries of
// the product criterion in O(1).
type pairQueue struct {
	h   pairHeap
	set map[[2]int]struct{}
}

func newPairQueue() *pairQueue {
	return &pairQueue{set: make(map[[2]int]struct{})}
}

func (q *pairQueue) len() int { return len(q.h) }

// push enqueues (i, j) unless its canonical form is already scheduled.
func (q *pairQueue) push(i, j, degree int) {
	p := pair{i: i, j: j, degree: degree}
	if _, ok := q.set[p.key()]; ok {
		return
	}
	q.set[p.key()] = struct{}{}
	heap.Push(&q.h, p)
}

// contains reports whether the canonical form of (i, j) is scheduled.
func (q *pairQueue) contains(i, j int) bool {
	_, ok := q.set[pair{i: i, j: j}.key()]
	return ok
}

// pop dequeues pairs until it finds one whose both components are still
// alive, and reports false when the queue runs empty.
func (q *pairQueue) pop(alive func(int) bool) (pair, bool) {
	for len(q.h) > 0 {
		p := heap.Pop(&q.h).(pair)
		delete(q.set, p.key())
		if alive(p.i) && alive(p.j) {
			return p, true
		}
	}
	return pair{}, false
}
