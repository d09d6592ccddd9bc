package codec

import "encoding/binary"

// Errors
var (
	ErrOutOfData = &CodecError{"popping byte beyond end of serialized data"}
)

// CodecError represents a scalar decode error
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// Buffer is the contiguous serialized form of a queue: a header region of
// 8-byte length records followed by the payload of flushed chunks. Decoding
// is destructive; bytes are consumed one at a time from the tail. The header
// region is never valid payload, so every pop checks against the payload
// boundary rather than the raw buffer length.
type Buffer struct {
	data      []byte
	headerLen int // header region size in bytes
}

// NewBuffer wraps data in a Buffer whose first headerLen bytes are header.
func NewBuffer(data []byte, headerLen int) *Buffer {
	return &Buffer{data: data, headerLen: headerLen}
}

// Bytes returns the current buffer contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the total buffer length, header included.
func (b *Buffer) Len() int {
	return len(b.data)
}

// PayloadLen returns how many undecoded payload bytes remain.
func (b *Buffer) PayloadLen() int {
	n := len(b.data) - b.headerLen
	if n < 0 {
		return 0
	}
	return n
}

// HeaderLen returns the header region size in bytes.
func (b *Buffer) HeaderLen() int {
	return b.headerLen
}

// SetHeaderLen fixes the header/payload boundary.
func (b *Buffer) SetHeaderLen(n int) {
	b.headerLen = n
}

// Reset discards all contents and the header boundary.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.headerLen = 0
}

// Append appends one chunk's bytes in forward order.
func (b *Buffer) Append(chunk []byte) {
	b.data = append(b.data, chunk...)
}

// AppendUint64 appends an 8-byte little-endian value, used for header records.
func (b *Buffer) AppendUint64(v uint64) {
	var word [WordSize]byte
	binary.LittleEndian.PutUint64(word[:], v)
	b.data = append(b.data, word[:]...)
}

// Uint64At reads the 8-byte little-endian value at the given byte offset.
func (b *Buffer) Uint64At(offset int) uint64 {
	return binary.LittleEndian.Uint64(b.data[offset:])
}

// PutUint64At overwrites the 8-byte little-endian value at the given byte
// offset in place. Used to persist the header's remaining-records counter
// between collection decodes.
func (b *Buffer) PutUint64At(offset int, v uint64) {
	binary.LittleEndian.PutUint64(b.data[offset:], v)
}

// popByte consumes one byte from the tail, refusing to cross into the header.
func (b *Buffer) popByte() (byte, error) {
	if len(b.data)-b.headerLen <= 0 {
		return 0, ErrOutOfData
	}
	c := b.data[len(b.data)-1]
	b.data = b.data[:len(b.data)-1]
	return c, nil
}

// PopByte consumes a one-byte chunk from the payload tail.
func (b *Buffer) PopByte() (byte, error) {
	return b.popByte()
}

// PopUint64 consumes an 8-byte chunk from the payload tail. Chunks are stored
// least-significant byte first, so tail consumption yields the most
// significant byte first; each byte is shifted back into position as it is
// read.
func (b *Buffer) PopUint64() (uint64, error) {
	var v uint64
	for index := WordSize - 1; index >= 0; index-- {
		c, err := b.popByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(c) << uint(index*8)
	}
	return v, nil
}

// PopString consumes a string chunk from the payload tail. The chunk's bytes
// sit in forward order behind a leading terminator, so the scan collects
// bytes tail-first until the terminator, reverses them to restore character
// order, and discards the terminator.
func (b *Buffer) PopString() (string, error) {
	var collected []byte
	for {
		if len(b.data)-b.headerLen <= 0 {
			return "", ErrOutOfData
		}
		c := b.data[len(b.data)-1]
		b.data = b.data[:len(b.data)-1]
		if c == Terminator {
			break
		}
		collected = append(collected, c)
	}

	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return string(collected), nil
}
