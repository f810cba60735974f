package prioq

import "errors"

// NotQueued is the position value of an element that is not in any heap.
const NotQueued = -1

// Sentinel errors for heap misuse. Misuse is a programming error, so the heap
// panics with these (wrapped with context) instead of returning them.
var (
	// ErrEmptyHeap indicates Top or Pop on an empty heap.
	ErrEmptyHeap = errors.New("prioq: heap is empty")

	// ErrNotQueued indicates an element whose position field does not point at
	// itself, i.e. it was never pushed or has already been popped.
	ErrNotQueued = errors.New("prioq: element is not queued in this heap")

	// ErrAlreadyQueued indicates Push of an element that is already in the heap.
	ErrAlreadyQueued = errors.New("prioq: element is already queued")

	// ErrHeapCorrupt indicates a child compares strictly less than its parent.
	ErrHeapCorrupt = errors.New("prioq: heap property violated")
)

// Heap is a binary min-heap of T with position fields embedded in elements.
//
// less must be a strict weak ordering. pos must return a pointer to the
// element's position field; the same field must not be shared by two heaps
// that are live at the same time.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
	pos   func(T) *int
}

// New creates an empty heap ordered by less, using pos to reach each
// element's embedded position field.
func New[T any](less func(a, b T) bool, pos func(T) *int) *Heap[T] {
	return &Heap[T]{less: less, pos: pos}
}
