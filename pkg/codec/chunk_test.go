package codec

import (
	"bytes"
	"testing"
)

func TestUint64Chunk_LittleEndianLayout(t *testing.T) {
	testCases := []struct {
		name     string
		value    uint64
		expected []byte
	}{
		{
			name:     "zero",
			value:    0,
			expected: []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:     "one",
			value:    1,
			expected: []byte{1, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:     "byte order",
			value:    0x0102030405060708,
			expected: []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		},
		{
			name:     "all bits set",
			value:    0xFFFFFFFFFFFFFFFF,
			expected: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunk := Uint64Chunk(tc.value)
			if !bytes.Equal(chunk, tc.expected) {
				t.Errorf("Chunk mismatch: got %x, want %x", chunk, tc.expected)
			}
		})
	}
}

func TestByteChunk(t *testing.T) {
	chunk := ByteChunk(0xAB)
	if !bytes.Equal(chunk, []byte{0xAB}) {
		t.Errorf("Chunk mismatch: got %x, want ab", chunk)
	}
}

func TestStringChunk_Layout(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected []byte
	}{
		{
			name:     "empty string is bare terminator",
			value:    "",
			expected: []byte{0x00},
		},
		{
			name:     "forward byte order after terminator",
			value:    "Bob",
			expected: []byte{0x00, 'B', 'o', 'b'},
		},
		{
			name:     "unicode passes through as UTF-8 bytes",
			value:    "héllo",
			expected: append([]byte{0x00}, []byte("héllo")...),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunk := StringChunk(tc.value)
			if !bytes.Equal(chunk, tc.expected) {
				t.Errorf("Chunk mismatch: got %x, want %x", chunk, tc.expected)
			}
		})
	}
}
