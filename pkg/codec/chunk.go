package codec

import "encoding/binary"

// WordSize is the width every numeric scalar is widened to on the wire.
const WordSize = 8

// Terminator marks the leading boundary of an encoded string chunk.
const Terminator byte = 0x00

// Uint64Chunk encodes a 64-bit value as one 8-byte chunk, least-significant
// byte first. Narrower numeric scalars are widened to 64 bits before encoding
// so the format is identical on 32- and 64-bit hosts.
func Uint64Chunk(v uint64) []byte {
	chunk := make([]byte, WordSize)
	binary.LittleEndian.PutUint64(chunk, v)
	return chunk
}

// ByteChunk encodes a single byte as a one-byte chunk. Bytes are the only
// numeric scalar that is not widened.
func ByteChunk(b byte) []byte {
	return []byte{b}
}

// StringChunk encodes a string as one terminator byte followed by the string's
// bytes in forward order. The trailing boundary is implied by chunk placement
// in the payload, so no trailing terminator is written. Strings containing the
// terminator byte do not round-trip; that is a caller contract.
func StringChunk(s string) []byte {
	chunk := make([]byte, 0, len(s)+1)
	chunk = append(chunk, Terminator)
	chunk = append(chunk, s...)
	return chunk
}
