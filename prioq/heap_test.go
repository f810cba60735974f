package prioq_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/prioq"
)

// item carries two independent keys, like a routing node carrying state for
// two commodity classes.
type item struct {
	keys [2]int
	pos  [2]int
	name string
}

func newItem(name string, k0, k1 int) *item {
	return &item{name: name, keys: [2]int{k0, k1}, pos: [2]int{prioq.NotQueued, prioq.NotQueued}}
}

func heapFor(class int) *prioq.Heap[*item] {
	return prioq.New(
		func(a, b *item) bool { return a.keys[class] < b.keys[class] },
		func(x *item) *int { return &x.pos[class] },
	)
}

func drain(t *testing.T, h *prioq.Heap[*item], class int) []int {
	t.Helper()
	var out []int
	for !h.Empty() {
		top := h.Top()
		out = append(out, top.keys[class])
		h.Pop(top)
		require.Equal(t, prioq.NotQueued, top.pos[class])
		require.NoError(t, h.Validate())
	}

	return out
}

func TestHeap_PushPopOrder(t *testing.T) {
	h := heapFor(0)
	for i, k := range []int{5, 3, 9, 1, 7, 3} {
		h.Push(newItem(string(rune('a'+i)), k, 0))
		require.NoError(t, h.Validate())
	}
	assert.Equal(t, 6, h.Len())
	assert.Equal(t, []int{1, 3, 3, 5, 7, 9}, drain(t, h, 0))
}

func TestHeap_DecreaseAndIncreaseKey(t *testing.T) {
	h := heapFor(0)
	items := []*item{newItem("a", 10, 0), newItem("b", 20, 0), newItem("c", 30, 0), newItem("d", 40, 0)}
	for _, it := range items {
		h.Push(it)
	}

	items[3].keys[0] = 1
	h.DecreaseKey(items[3])
	require.NoError(t, h.Validate())
	assert.Same(t, items[3], h.Top())

	items[3].keys[0] = 35
	h.IncreaseKey(items[3])
	require.NoError(t, h.Validate())
	assert.Same(t, items[0], h.Top())

	assert.Equal(t, []int{10, 20, 30, 35}, drain(t, h, 0))
}

func TestHeap_PopArbitrary(t *testing.T) {
	h := heapFor(0)
	items := make([]*item, 0, 10)
	for k := 0; k < 10; k++ {
		it := newItem("x", (k*7)%10, 0)
		items = append(items, it)
		h.Push(it)
	}
	h.Pop(items[4])
	h.Pop(items[9])
	require.NoError(t, h.Validate())
	assert.False(t, h.Contains(items[4]))
	assert.True(t, h.Contains(items[5]))
	assert.Equal(t, 8, h.Len())
}

func TestHeap_IndependentClasses(t *testing.T) {
	// The same elements live in two heaps at once, one per key.
	h0, h1 := heapFor(0), heapFor(1)
	a, b, c := newItem("a", 1, 30), newItem("b", 2, 20), newItem("c", 3, 10)
	for _, it := range []*item{a, b, c} {
		h0.Push(it)
		h1.Push(it)
	}
	assert.Same(t, a, h0.Top())
	assert.Same(t, c, h1.Top())

	h1.Pop(c)
	assert.Equal(t, prioq.NotQueued, c.pos[1])
	assert.NotEqual(t, prioq.NotQueued, c.pos[0], "popping class 1 must not touch class 0 state")
	require.NoError(t, h0.Validate())
}

func TestHeap_Misuse(t *testing.T) {
	h := heapFor(0)
	assert.Panics(t, func() { h.Top() })

	a := newItem("a", 1, 0)
	assert.PanicsWithError(t, "prioq: element is not queued in this heap: position -1, size 0", func() { h.Pop(a) })

	h.Push(a)
	assert.Panics(t, func() { h.Push(a) })
	assert.Panics(t, func() { h.DecreaseKey(newItem("stranger", 0, 0)) })
}

func TestHeap_Clear(t *testing.T) {
	h := heapFor(0)
	items := []*item{newItem("a", 1, 0), newItem("b", 2, 0)}
	for _, it := range items {
		h.Push(it)
	}
	h.Clear()
	assert.True(t, h.Empty())
	for _, it := range items {
		assert.Equal(t, prioq.NotQueued, it.pos[0])
	}
}

// TestHeap_RandomizedInvariant mutates keys at random and checks that no child
// ever compares strictly less than its parent.
func TestHeap_RandomizedInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := heapFor(0)
	var live []*item
	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(live) == 0:
			it := newItem("r", rng.Intn(1000), 0)
			h.Push(it)
			live = append(live, it)
		case op == 1:
			i := rng.Intn(len(live))
			h.Pop(live[i])
			live = append(live[:i], live[i+1:]...)
		case op == 2:
			it := live[rng.Intn(len(live))]
			it.keys[0] -= rng.Intn(50)
			h.DecreaseKey(it)
		default:
			it := live[rng.Intn(len(live))]
			it.keys[0] += rng.Intn(50)
			h.IncreaseKey(it)
		}
		require.NoError(t, h.Validate(), "step %d", step)
	}

	want := make([]int, 0, len(live))
	for _, it := range live {
		want = append(want, it.keys[0])
	}
	sort.Ints(want)
	if len(want) == 0 {
		want = nil
	}
	assert.Equal(t, want, drain(t, h, 0))
}
