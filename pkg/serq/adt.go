package serq

// Pair is a fixed two-element value. Pairs carry no length record.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is a fixed heterogeneous three-element value.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 is a fixed heterogeneous four-element value.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// FIFO is a first-in/first-out queue of elements.
type FIFO[T any] struct {
	items []T
}

// Enqueue appends v at the back.
func (f *FIFO[T]) Enqueue(v T) {
	f.items = append(f.items, v)
}

// Dequeue removes and returns the front element.
func (f *FIFO[T]) Dequeue() (T, bool) {
	var zero T
	if len(f.items) == 0 {
		return zero, false
	}
	v := f.items[0]
	f.items = f.items[1:]
	return v, true
}

// Front returns the front element without removing it.
func (f *FIFO[T]) Front() (T, bool) {
	var zero T
	if len(f.items) == 0 {
		return zero, false
	}
	return f.items[0], true
}

// Len returns the number of queued elements.
func (f *FIFO[T]) Len() int {
	return len(f.items)
}

// LIFO is a last-in/first-out stack of elements.
type LIFO[T any] struct {
	items []T
}

// Push places v on top.
func (s *LIFO[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element.
func (s *LIFO[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Top returns the top element without removing it.
func (s *LIFO[T]) Top() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of stacked elements.
func (s *LIFO[T]) Len() int {
	return len(s.items)
}
