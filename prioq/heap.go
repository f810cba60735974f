package prioq

import "fmt"

// Push inserts x. Its position field must be NotQueued (or stale from another
// heap that is no longer in use); it is overwritten with the slot index.
func (h *Heap[T]) Push(x T) {
	if p := *h.pos(x); p >= 0 && p < len(h.items) && h.same(h.items[p], x) {
		panic(fmt.Errorf("%w: position %d", ErrAlreadyQueued, p))
	}
	h.items = append(h.items, x)
	*h.pos(x) = len(h.items) - 1
	h.up(len(h.items) - 1)
	h.check()
}

// Top returns the smallest element without removing it.
func (h *Heap[T]) Top() T {
	if len(h.items) == 0 {
		panic(ErrEmptyHeap)
	}

	return h.items[0]
}

// Pop removes x from the heap. x is usually Top(), but any queued element may
// be removed. Its position field is reset to NotQueued.
func (h *Heap[T]) Pop(x T) {
	i := h.slot(x)
	last := len(h.items) - 1
	if i != last {
		h.swap(i, last)
	}
	h.items[last] = *new(T) // drop the reference for the GC
	h.items = h.items[:last]
	*h.pos(x) = NotQueued

	if i < last {
		// The element moved into slot i may belong above or below it.
		if !h.up(i) {
			h.down(i)
		}
	}
	h.check()
}

// DecreaseKey restores the heap after x's key was lowered.
func (h *Heap[T]) DecreaseKey(x T) {
	h.up(h.slot(x))
	h.check()
}

// IncreaseKey restores the heap after x's key was raised.
func (h *Heap[T]) IncreaseKey(x T) {
	h.down(h.slot(x))
	h.check()
}

// Empty reports whether the heap holds no elements.
func (h *Heap[T]) Empty() bool { return len(h.items) == 0 }

// Len returns the number of queued elements.
func (h *Heap[T]) Len() int { return len(h.items) }

// Contains reports whether x is currently queued in h.
func (h *Heap[T]) Contains(x T) bool {
	p := *h.pos(x)

	return p >= 0 && p < len(h.items) && h.same(h.items[p], x)
}

// Clear removes every element, resetting each position field to NotQueued.
func (h *Heap[T]) Clear() {
	for i := range h.items {
		*h.pos(h.items[i]) = NotQueued
		h.items[i] = *new(T)
	}
	h.items = h.items[:0]
}

// Validate checks the heap property and every position field.
// It returns nil for a consistent heap, otherwise an error wrapping
// ErrHeapCorrupt or ErrNotQueued that names the offending slot.
func (h *Heap[T]) Validate() error {
	for i, x := range h.items {
		if p := *h.pos(x); p != i {
			return fmt.Errorf("%w: slot %d holds element with position %d", ErrNotQueued, i, p)
		}
		if i == 0 {
			continue
		}
		parent := (i - 1) / 2
		if h.less(x, h.items[parent]) {
			return fmt.Errorf("%w: slot %d is less than its parent %d", ErrHeapCorrupt, i, parent)
		}
	}

	return nil
}

// slot returns x's index, panicking if x is not queued here.
func (h *Heap[T]) slot(x T) int {
	p := *h.pos(x)
	if p < 0 || p >= len(h.items) || !h.same(h.items[p], x) {
		panic(fmt.Errorf("%w: position %d, size %d", ErrNotQueued, p, len(h.items)))
	}

	return p
}

// same compares identities through the position field: two references are the
// same element iff they expose the same field.
func (h *Heap[T]) same(a, b T) bool { return h.pos(a) == h.pos(b) }

func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	*h.pos(h.items[i]) = i
	*h.pos(h.items[j]) = j
}

// up sifts slot i toward the root and reports whether it moved.
func (h *Heap[T]) up(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}

	return moved
}

// down sifts slot i toward the leaves.
func (h *Heap[T]) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && h.less(h.items[right], h.items[left]) {
			smallest = right
		}
		if !h.less(h.items[smallest], h.items[i]) {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *Heap[T]) check() {
	if !debugChecks {
		return
	}
	if err := h.Validate(); err != nil {
		panic(err)
	}
}
