// Package frontier implements the bucket priority queue that orders flood
// fill growth. Priorities are small non-negative integers, so buckets are
// indexed directly by priority and every operation is O(1) amortized.
package frontier

import "math"

// Item is anything that can sit in the queue: a stable id used to address
// its node and a non-negative priority.
type Item interface {
	Index() int
	SearchPriority() int
}

const none = -1

type node[T Item] struct {
	item T
	next int
}

// Queue is a minimum-priority bucket queue. Each bucket is a singly
// linked chain of nodes that live in an arena indexed by Item.Index, so an
// item can be queued at most once at a time.
type Queue[T Item] struct {
	buckets []int
	nodes   []node[T]
	count   int
	minimum int
}

// New returns an empty queue with room for ids below capacity. The arena
// grows on demand for larger ids.
func New[T Item](capacity int) *Queue[T] {
	return &Queue[T]{
		nodes:   make([]node[T], capacity),
		minimum: math.MaxInt,
	}
}

// Count returns the number of queued items.
func (q *Queue[T]) Count() int { return q.count }

// Enqueue pushes item onto the front of its priority bucket.
func (q *Queue[T]) Enqueue(item T) {
	q.count++
	q.push(item)
}

func (q *Queue[T]) push(item T) {
	p := item.SearchPriority()
	if p < q.minimum {
		q.minimum = p
	}
	for p >= len(q.buckets) {
		q.buckets = append(q.buckets, none)
	}

	id := item.Index()
	if id >= len(q.nodes) {
		q.nodes = append(q.nodes, make([]node[T], id-len(q.nodes)+1)...)
	}
	q.nodes[id] = node[T]{item: item, next: q.buckets[p]}
	q.buckets[p] = id
}

// Dequeue removes and returns an item of lowest priority. ok is false when
// the queue is empty.
func (q *Queue[T]) Dequeue() (item T, ok bool) {
	if q.count == 0 {
		return item, false
	}
	for ; q.minimum < len(q.buckets); q.minimum++ {
		id := q.buckets[q.minimum]
		if id == none {
			continue
		}
		q.buckets[q.minimum] = q.nodes[id].next
		q.count--
		return q.nodes[id].item, true
	}
	return item, false
}

// Change moves item from the bucket for oldPriority to the bucket for its
// current SearchPriority. It reports false, leaving the queue untouched,
// if item was not found under oldPriority.
func (q *Queue[T]) Change(item T, oldPriority int) bool {
	if oldPriority < 0 || oldPriority >= len(q.buckets) {
		return false
	}
	id := item.Index()
	cur := q.buckets[oldPriority]
	if cur == id {
		q.buckets[oldPriority] = q.nodes[id].next
	} else {
		for cur != none && q.nodes[cur].next != id {
			cur = q.nodes[cur].next
		}
		if cur == none {
			return false
		}
		q.nodes[cur].next = q.nodes[id].next
	}
	q.push(item)
	return true
}

// Clear empties the queue. Bucket and node storage is kept for reuse.
func (q *Queue[T]) Clear() {
	q.buckets = q.buckets[:0]
	q.count = 0
	q.minimum = math.MaxInt
}
