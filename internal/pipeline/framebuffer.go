package pipeline

import "sync"

// Buffer is a fixed-capacity FIFO queue with drop-oldest admission: a push
// into a full buffer evicts the single oldest element instead of blocking.
// Capture must never stall on a slow detector; staleness is preferred over
// backpressure. Safe for one producer and one consumer without external
// locking.
type Buffer[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	count int
}

// NewBuffer creates a buffer holding at most capacity elements.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push inserts item, evicting the oldest element first when full.
// It never blocks and never fails.
func (b *Buffer[T]) Push(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == len(b.items) {
		// Evict the oldest to admit the newest.
		var zero T
		b.items[b.head] = zero
		b.head = (b.head + 1) % len(b.items)
		b.count--
	}

	tail := (b.head + b.count) % len(b.items)
	b.items[tail] = item
	b.count++
}

// TryPop removes and returns the oldest element, or ok=false when empty.
func (b *Buffer[T]) TryPop() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if b.count == 0 {
		return zero, false
	}

	item := b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.count--
	return item, true
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}
