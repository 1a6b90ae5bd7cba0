package frontier

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

type entry struct {
	id, priority int
}

func (e *entry) Index() int          { return e.id }
func (e *entry) SearchPriority() int { return e.priority }

func fill(q *Queue[*entry], n, k int, r *rand.Rand) []*entry {
	items := make([]*entry, n)
	for i := range items {
		items[i] = &entry{id: i, priority: r.IntN(k + 1)}
		q.Enqueue(items[i])
	}
	return items
}

func TestDequeueNonDecreasing(t *testing.T) {
	tests := []struct {
		n, k int
	}{
		{1, 0},
		{10, 0},
		{50, 3},
		{200, 20},
		{1000, 150},
	}
	for _, tt := range tests {
		q := New[*entry](tt.n)
		r := rand.New(rand.NewPCG(uint64(tt.n), uint64(tt.k)))
		fill(q, tt.n, tt.k, r)
		require.Equal(t, tt.n, q.Count())

		last := -1
		for i := 0; i < tt.n; i++ {
			e, ok := q.Dequeue()
			require.True(t, ok)
			if e.priority < last {
				t.Fatalf("n=%d k=%d: priority %d after %d", tt.n, tt.k, e.priority, last)
			}
			last = e.priority
		}
		_, ok := q.Dequeue()
		require.False(t, ok)
		require.Zero(t, q.Count())
	}
}

func TestCountAfterPartialDrain(t *testing.T) {
	q := New[*entry](0)
	r := rand.New(rand.NewPCG(1, 2))
	fill(q, 40, 9, r)
	for i := 0; i < 15; i++ {
		_, ok := q.Dequeue()
		require.True(t, ok)
	}
	require.Equal(t, 25, q.Count())

	q.Clear()
	require.Zero(t, q.Count())
	_, ok := q.Dequeue()
	require.False(t, ok)
}

func TestClearReusesQueue(t *testing.T) {
	q := New[*entry](8)
	q.Enqueue(&entry{id: 0, priority: 5})
	q.Enqueue(&entry{id: 1, priority: 7})
	q.Clear()

	q.Enqueue(&entry{id: 1, priority: 2})
	q.Enqueue(&entry{id: 0, priority: 1})
	e, ok := q.Dequeue()
	require.True(t, ok)
	require.Equal(t, 0, e.id)
	e, ok = q.Dequeue()
	require.True(t, ok)
	require.Equal(t, 1, e.id)
	require.Zero(t, q.Count())
}

func TestSamePriorityIsLIFO(t *testing.T) {
	q := New[*entry](3)
	for i := 0; i < 3; i++ {
		q.Enqueue(&entry{id: i, priority: 4})
	}
	for want := 2; want >= 0; want-- {
		e, _ := q.Dequeue()
		require.Equal(t, want, e.id)
	}
}

func TestChangePriority(t *testing.T) {
	q := New[*entry](4)
	a := &entry{id: 0, priority: 3}
	b := &entry{id: 1, priority: 3}
	c := &entry{id: 2, priority: 3}
	d := &entry{id: 3, priority: 1}
	for _, e := range []*entry{a, b, c, d} {
		q.Enqueue(e)
	}

	// b sits in the middle of the priority 3 chain (c -> b -> a).
	b.priority = 0
	require.True(t, q.Change(b, 3))
	require.Equal(t, 4, q.Count())

	// d moves later.
	d.priority = 5
	require.True(t, q.Change(d, 1))

	var order []int
	for q.Count() > 0 {
		e, ok := q.Dequeue()
		require.True(t, ok)
		order = append(order, e.id)
	}
	require.Equal(t, []int{1, 2, 0, 3}, order)
}

func TestChangeMissingItem(t *testing.T) {
	q := New[*entry](2)
	a := &entry{id: 0, priority: 2}
	q.Enqueue(a)

	stray := &entry{id: 1, priority: 0}
	require.False(t, q.Change(stray, 2))
	require.False(t, q.Change(stray, 9))
	require.Equal(t, 1, q.Count())
}
