package serq

import (
	"cmp"
	"fmt"
	"slices"
)

// Collection combinators. Each returns a Type built purely from its element
// Types, so collections nest to arbitrary depth. Variable-length collections
// record their element count in the ledger after staging their elements;
// length records are consumed in that same append order during decode, so
// nesting round-trips exactly when sibling collections share one length
// (a square matrix, for instance). Ragged nesting inherits the wire format's
// record-association order and is a caller contract.

// PairOf encodes first then second. No length record; the shape is fixed.
func PairOf[A, B any](first Type[A], second Type[B]) Type[Pair[A, B]] {
	return Type[Pair[A, B]]{
		push: func(q *Queue, p Pair[A, B]) {
			first.Push(q, p.First)
			second.Push(q, p.Second)
		},
		pop: func(q *Queue) (Pair[A, B], error) {
			var p Pair[A, B]
			var err error
			if p.First, err = first.Pop(q); err != nil {
				return Pair[A, B]{}, err
			}
			if p.Second, err = second.Pop(q); err != nil {
				return Pair[A, B]{}, err
			}
			return p, nil
		},
	}
}

// ListOf encodes a slice in index order with its runtime length as the
// length record.
func ListOf[T any](elem Type[T]) Type[[]T] {
	return Type[[]T]{
		push: func(q *Queue, vs []T) {
			for _, v := range vs {
				elem.Push(q, v)
			}
			q.recordLength(uint64(len(vs)))
		},
		pop: func(q *Queue) ([]T, error) {
			length, err := q.collectionLen()
			if err != nil {
				return nil, err
			}
			vs := make([]T, 0)
			for i := uint64(0); i < length; i++ {
				v, err := elem.Pop(q)
				if err != nil {
					return nil, err
				}
				vs = append(vs, v)
			}
			q.retireLength()
			return vs, nil
		},
	}
}

// ArrayOf is ListOf with a fixed size. Pushing a slice of any other length
// panics; like mismatched pop types, that is a caller contract, not an error
// path.
func ArrayOf[T any](elem Type[T], size int) Type[[]T] {
	list := ListOf(elem)
	return Type[[]T]{
		push: func(q *Queue, vs []T) {
			if len(vs) != size {
				panic(fmt.Sprintf("serq: fixed array of size %d pushed with %d elements", size, len(vs)))
			}
			list.Push(q, vs)
		},
		pop: list.pop,
	}
}

// MapOf encodes a map as key/value pairs in ascending key order, the natural
// iteration order of a sorted map, with the pair count as the length record.
// Decode re-inserts each pair; a duplicate key read later overwrites the
// earlier one.
func MapOf[K cmp.Ordered, V any](key Type[K], val Type[V]) Type[map[K]V] {
	entry := PairOf(key, val)
	return Type[map[K]V]{
		push: func(q *Queue, m map[K]V) {
			keys := make([]K, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				entry.Push(q, Pair[K, V]{First: k, Second: m[k]})
			}
			q.recordLength(uint64(len(m)))
		},
		pop: func(q *Queue) (map[K]V, error) {
			length, err := q.collectionLen()
			if err != nil {
				return nil, err
			}
			m := make(map[K]V)
			for i := uint64(0); i < length; i++ {
				p, err := entry.Pop(q)
				if err != nil {
					return nil, err
				}
				m[p.First] = p.Second
			}
			q.retireLength()
			return m, nil
		},
	}
}

// QueueOf encodes a FIFO front-to-back by iterating a view of its elements;
// the original is left untouched. Decode appends each element in read order,
// rebuilding the same front/back relationship.
func QueueOf[T any](elem Type[T]) Type[FIFO[T]] {
	return Type[FIFO[T]]{
		push: func(q *Queue, f FIFO[T]) {
			for _, v := range f.items {
				elem.Push(q, v)
			}
			q.recordLength(uint64(len(f.items)))
		},
		pop: func(q *Queue) (FIFO[T], error) {
			length, err := q.collectionLen()
			if err != nil {
				return FIFO[T]{}, err
			}
			var f FIFO[T]
			for i := uint64(0); i < length; i++ {
				v, err := elem.Pop(q)
				if err != nil {
					return FIFO[T]{}, err
				}
				f.Enqueue(v)
			}
			q.retireLength()
			return f, nil
		},
	}
}

// StackOf encodes a LIFO bottom-to-top, the reverse of its natural top-down
// drain order. Decode pushes each element in read order, so the last element
// encoded lands back on top and the original top/bottom relationship
// survives.
func StackOf[T any](elem Type[T]) Type[LIFO[T]] {
	return Type[LIFO[T]]{
		push: func(q *Queue, s LIFO[T]) {
			for _, v := range s.items {
				elem.Push(q, v)
			}
			q.recordLength(uint64(len(s.items)))
		},
		pop: func(q *Queue) (LIFO[T], error) {
			length, err := q.collectionLen()
			if err != nil {
				return LIFO[T]{}, err
			}
			var s LIFO[T]
			for i := uint64(0); i < length; i++ {
				v, err := elem.Pop(q)
				if err != nil {
					return LIFO[T]{}, err
				}
				s.Push(v)
			}
			q.retireLength()
			return s, nil
		},
	}
}

// Tuple3Of stages elements in reverse positional order and pops them the same
// way, which together with the flush reversal leaves the assembled tuple in
// left-to-right order. Tuples carry no length record.
func Tuple3Of[A, B, C any](first Type[A], second Type[B], third Type[C]) Type[Tuple3[A, B, C]] {
	return Type[Tuple3[A, B, C]]{
		push: func(q *Queue, t Tuple3[A, B, C]) {
			third.Push(q, t.Third)
			second.Push(q, t.Second)
			first.Push(q, t.First)
		},
		pop: func(q *Queue) (Tuple3[A, B, C], error) {
			var t Tuple3[A, B, C]
			var err error
			if t.Third, err = third.Pop(q); err != nil {
				return Tuple3[A, B, C]{}, err
			}
			if t.Second, err = second.Pop(q); err != nil {
				return Tuple3[A, B, C]{}, err
			}
			if t.First, err = first.Pop(q); err != nil {
				return Tuple3[A, B, C]{}, err
			}
			return t, nil
		},
	}
}

// Tuple4Of is Tuple3Of extended to four positions.
func Tuple4Of[A, B, C, D any](first Type[A], second Type[B], third Type[C], fourth Type[D]) Type[Tuple4[A, B, C, D]] {
	return Type[Tuple4[A, B, C, D]]{
		push: func(q *Queue, t Tuple4[A, B, C, D]) {
			fourth.Push(q, t.Fourth)
			third.Push(q, t.Third)
			second.Push(q, t.Second)
			first.Push(q, t.First)
		},
		pop: func(q *Queue) (Tuple4[A, B, C, D], error) {
			var t Tuple4[A, B, C, D]
			var err error
			if t.Fourth, err = fourth.Pop(q); err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			if t.Third, err = third.Pop(q); err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			if t.Second, err = second.Pop(q); err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			if t.First, err = first.Pop(q); err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			return t, nil
		},
	}
}
