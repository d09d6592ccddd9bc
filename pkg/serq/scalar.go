package serq

import (
	"math"

	"github.com/tmarsden/binq/pkg/codec"
)

// Type is the codec for one kind of pushable value. Scalar types are
// package-level values (Uint64, String, ...); collection types are built with
// the combinators in collection.go and recurse to arbitrary depth. Dispatch
// is fully static: a Type carries its own encode and decode, and no runtime
// type inspection happens anywhere.
type Type[T any] struct {
	push func(*Queue, T)
	pop  func(*Queue) (T, error)
}

// Push stages one value. It never fails; memory is assumed sufficient.
func (t Type[T]) Push(q *Queue, v T) {
	t.push(q, v)
}

// Pop decodes one value from the tail of the queue's payload. Popping with a
// different type or order than was pushed is not detected; the wire format
// carries no type tags.
func (t Type[T]) Pop(q *Queue) (T, error) {
	return t.pop(q)
}

// Bool encodes as a full 8-byte word holding 0 or 1.
var Bool = Type[bool]{
	push: func(q *Queue, v bool) {
		var word uint64
		if v {
			word = 1
		}
		q.stage(codec.Uint64Chunk(word))
	},
	pop: func(q *Queue) (bool, error) {
		v, err := q.buf.PopUint64()
		return v > 0, err
	},
}

// Int8 occupies exactly one byte, not widened.
var Int8 = Type[int8]{
	push: func(q *Queue, v int8) {
		q.stage(codec.ByteChunk(byte(v)))
	},
	pop: func(q *Queue) (int8, error) {
		c, err := q.buf.PopByte()
		return int8(c), err
	},
}

// Uint8 occupies exactly one byte, not widened.
var Uint8 = Type[uint8]{
	push: func(q *Queue, v uint8) {
		q.stage(codec.ByteChunk(v))
	},
	pop: func(q *Queue) (uint8, error) {
		return q.buf.PopByte()
	},
}

// Int32 is sign-extended to 8 bytes; decode truncates back to 32 bits.
var Int32 = Type[int32]{
	push: func(q *Queue, v int32) {
		q.stage(codec.Uint64Chunk(uint64(int64(v))))
	},
	pop: func(q *Queue) (int32, error) {
		v, err := q.buf.PopUint64()
		return int32(uint32(v)), err
	},
}

// Uint32 is zero-extended to 8 bytes.
var Uint32 = Type[uint32]{
	push: func(q *Queue, v uint32) {
		q.stage(codec.Uint64Chunk(uint64(v)))
	},
	pop: func(q *Queue) (uint32, error) {
		v, err := q.buf.PopUint64()
		return uint32(v), err
	},
}

var Uint64 = Type[uint64]{
	push: func(q *Queue, v uint64) {
		q.stage(codec.Uint64Chunk(v))
	},
	pop: func(q *Queue) (uint64, error) {
		return q.buf.PopUint64()
	},
}

// Float32 stores its 4-byte bit pattern zero-extended to 8 bytes, so NaN
// payloads and negative zero survive the round trip bit-for-bit.
var Float32 = Type[float32]{
	push: func(q *Queue, v float32) {
		q.stage(codec.Uint64Chunk(uint64(math.Float32bits(v))))
	},
	pop: func(q *Queue) (float32, error) {
		v, err := q.buf.PopUint64()
		return math.Float32frombits(uint32(v)), err
	},
}

// Float64 stores its bit pattern directly.
var Float64 = Type[float64]{
	push: func(q *Queue, v float64) {
		q.stage(codec.Uint64Chunk(math.Float64bits(v)))
	},
	pop: func(q *Queue) (float64, error) {
		v, err := q.buf.PopUint64()
		return math.Float64frombits(v), err
	},
}

// String chunks carry a leading terminator and the bytes in forward order.
// Strings containing a 0x00 byte do not round-trip; caller contract.
var String = Type[string]{
	push: func(q *Queue, v string) {
		q.stage(codec.StringChunk(v))
	},
	pop: func(q *Queue) (string, error) {
		return q.buf.PopString()
	},
}
