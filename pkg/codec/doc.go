// Package codec provides the byte-level scalar codec for binq.
//
// The codec package converts individual scalar values into chunks and
// consumes them back out of a serialized buffer. It is the foundation the
// serialization queue in pkg/serq is built on.
//
// # Chunk Format
//
// Every scalar encodes to exactly one chunk:
//
//	numeric scalars  8 bytes, value widened to 64 bits, least-significant
//	                 byte first
//	single bytes     1 byte, not widened
//	strings          1 terminator byte (0x00) then the string's bytes in
//	                 forward order
//
// No type information is stored. A buffer can only be decoded with the same
// type sequence that produced it.
//
// # Buffer Consumption
//
// A Buffer holds a header region of 8-byte length records followed by the
// payload of flushed chunks. Decoding is destructive: bytes are popped from
// the tail one at a time, and every pop is bounds-checked against the
// payload boundary (buffer length minus header length), never the raw buffer
// length. Running out of payload reports ErrOutOfData before any
// out-of-bounds read.
//
// Because chunks are written least-significant byte first and consumed
// tail-first, multi-byte pops read the most significant byte first and shift
// each byte back into position. String pops scan backward to the leading
// terminator and reverse the collected bytes.
//
// # Thread Safety
//
// Buffers are single-owner and perform no locking. Concurrent use of one
// Buffer must be serialized by the caller.
package codec
