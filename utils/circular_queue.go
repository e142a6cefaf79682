package utils

import (
	"iter"

	"github.com/apex-arcade/ridecore/rerror"
)

// CircularQueue is a fixed-capacity ring buffer. Once full, appending
// overwrites the oldest element. It is the backing store for the input
// median-filter history rings.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	if capacity <= 0 {
		panic(rerror.New("circularqueue: capacity must be positive, got %d", capacity))
	}
	return &CircularQueue[T]{items: make([]T, capacity)}
}

// Append appends an item, dropping the oldest element if the queue is full.
func (q *CircularQueue[T]) Append(item T) {
	q.items[q.tail] = item
	if q.size == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	q.tail = (q.tail + 1) % len(q.items)
}

// Fill replaces every slot in the queue with item and marks the queue full.
func (q *CircularQueue[T]) Fill(item T) {
	for i := range q.items {
		q.items[i] = item
	}
	q.head, q.tail = 0, 0
	q.size = len(q.items)
}

// Get returns the element at logical position index (0 = oldest), or an error
// if out of range.
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, rerror.New("circularqueue: get out of range")
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of items currently held.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}
