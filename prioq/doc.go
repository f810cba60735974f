// Package prioq provides a binary min-heap whose elements carry their own
// heap position, giving O(log n) decrease-key and increase-key for arbitrary
// elements without a side lookup table.
//
// Overview:
//
//   - Elements are referenced, never copied: the heap stores T values that are
//     expected to be pointers (or other reference types) so that the caller can
//     mutate an element's sort key in place.
//   - Each element embeds an int "position" field. The heap is told how to reach
//     it through an accessor passed to New; it keeps the field equal to the
//     element's slot index while the element is queued and sets it to NotQueued
//     when the element leaves the heap.
//   - Ordering is a strict less-than comparator. Because one routing node holds
//     independent keys for several commodity classes, the comparator (and the
//     position accessor) are chosen per heap instance rather than per type.
//
// Contract:
//
//	After externally mutating an element's key, the caller MUST immediately call
//	DecreaseKey (key got smaller) or IncreaseKey (key got larger) for that
//	element. Calling the wrong one, or forgetting to call either, silently breaks
//	the heap property. Builds tagged `prioqdebug` verify the whole heap after
//	every mutation and panic with ErrHeapCorrupt on the first violation.
//
// API reference:
//
//	func New[T any](less func(a, b T) bool, pos func(T) *int) *Heap[T]
//	func (h *Heap[T]) Push(x T)
//	func (h *Heap[T]) Top() T
//	func (h *Heap[T]) Pop(x T)
//	func (h *Heap[T]) DecreaseKey(x T)
//	func (h *Heap[T]) IncreaseKey(x T)
//	func (h *Heap[T]) Empty() bool
//	func (h *Heap[T]) Len() int
//	func (h *Heap[T]) Validate() error
//
// Complexity:
//
//   - Push, Pop, DecreaseKey, IncreaseKey: O(log n).
//   - Top, Empty, Len: O(1).
//   - Validate: O(n).
//
// Thread safety:
//
//   - A Heap is not safe for concurrent use. The engine that owns a heap owns it
//     exclusively for the duration of one search.
package prioq
