package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_PopUint64(t *testing.T) {
	// A single 8-byte chunk appended forward pops back as the same value.
	b := NewBuffer(nil, 0)
	b.Append(Uint64Chunk(0x0102030405060708))

	v, err := b.PopUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v)
	assert.Equal(t, 0, b.PayloadLen())
}

func TestBuffer_PopOrderIsTailFirst(t *testing.T) {
	// Two chunks in the buffer: the one at the tail is consumed first.
	b := NewBuffer(nil, 0)
	b.Append(Uint64Chunk(2))
	b.Append(Uint64Chunk(1))

	first, err := b.PopUint64()
	require.NoError(t, err)
	second, err := b.PopUint64()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
}

func TestBuffer_PopByte(t *testing.T) {
	b := NewBuffer(nil, 0)
	b.Append(ByteChunk(0x7F))
	b.Append(ByteChunk(0x80))

	c, err := b.PopByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), c)

	c, err = b.PopByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), c)
}

func TestBuffer_PopString(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{name: "simple", value: "Bob"},
		{name: "empty", value: ""},
		{name: "unicode", value: "héllo wörld"},
		{name: "single char", value: "x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(nil, 0)
			b.Append(StringChunk(tc.value))

			s, err := b.PopString()
			require.NoError(t, err)
			assert.Equal(t, tc.value, s)
			assert.Equal(t, 0, b.PayloadLen())
		})
	}
}

func TestBuffer_OutOfData(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		b := NewBuffer(nil, 0)
		_, err := b.PopUint64()
		assert.True(t, errors.Is(err, ErrOutOfData))
	})

	t.Run("partial chunk", func(t *testing.T) {
		b := NewBuffer([]byte{0x01, 0x02, 0x03}, 0)
		_, err := b.PopUint64()
		assert.True(t, errors.Is(err, ErrOutOfData))
	})

	t.Run("header bytes are never payload", func(t *testing.T) {
		// 8 header bytes plus a 1-byte payload chunk. One byte pops, the
		// next attempt must stop at the payload boundary even though raw
		// bytes remain.
		data := append(Uint64Chunk(0), 0xAA)
		b := NewBuffer(data, WordSize)

		c, err := b.PopByte()
		require.NoError(t, err)
		assert.Equal(t, byte(0xAA), c)

		_, err = b.PopByte()
		assert.True(t, errors.Is(err, ErrOutOfData))
		assert.Equal(t, WordSize, b.Len(), "header bytes must survive")
	})

	t.Run("unterminated string stops at boundary", func(t *testing.T) {
		b := NewBuffer([]byte{'a', 'b', 'c'}, 0)
		_, err := b.PopString()
		assert.True(t, errors.Is(err, ErrOutOfData))
	})
}

func TestBuffer_HeaderReadWrite(t *testing.T) {
	b := NewBuffer(nil, 0)
	b.AppendUint64(3)
	b.AppendUint64(42)
	b.SetHeaderLen(2 * WordSize)

	assert.Equal(t, uint64(3), b.Uint64At(0))
	assert.Equal(t, uint64(42), b.Uint64At(WordSize))

	b.PutUint64At(0, 2)
	assert.Equal(t, uint64(2), b.Uint64At(0), "counter writes must persist in place")
}

func TestBuffer_Reset(t *testing.T) {
	b := NewBuffer(nil, 0)
	b.AppendUint64(1)
	b.SetHeaderLen(WordSize)
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.HeaderLen())
}
