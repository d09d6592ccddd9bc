// Package frame wraps a serialized buffer with a CRC-32 integrity checksum.
//
// The persisted form is four checksum bytes, least-significant first,
// immediately followed by the buffer. The checksum covers the whole buffer,
// header and payload alike, and lives outside of it: validation is a
// recompute-and-compare against the stored value, never a mutation of the
// buffer itself.
package frame

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// ChecksumSize is the width of the persisted checksum field in bytes.
const ChecksumSize = 4

// crcTable is the process-wide table for the reflected 0xEDB88320 polynomial,
// computed once and immutable thereafter.
var crcTable = crc32.MakeTable(crc32.IEEE)

// Checksum computes the CRC-32 of buf with initial value 0xFFFFFFFF and
// final XOR 0xFFFFFFFF.
func Checksum(buf []byte) uint32 {
	return crc32.Checksum(buf, crcTable)
}

// Encode returns the framed form of buf: checksum bytes then buffer bytes.
func Encode(buf []byte) []byte {
	framed := make([]byte, ChecksumSize+len(buf))
	binary.LittleEndian.PutUint32(framed, Checksum(buf))
	copy(framed[ChecksumSize:], buf)
	return framed
}

// Decode splits framed bytes into the buffer and its stored checksum. It does
// not verify the checksum; the caller compares against Checksum when it needs
// to, since later destructive decoding invalidates a recompute.
func Decode(framed []byte) ([]byte, uint32, error) {
	if len(framed) < ChecksumSize {
		return nil, 0, fmt.Errorf("framed data too short: %d bytes", len(framed))
	}
	return framed[ChecksumSize:], binary.LittleEndian.Uint32(framed), nil
}

// Write frames buf onto w and returns the checksum it stored.
func Write(w io.Writer, buf []byte) (uint32, error) {
	sum := Checksum(buf)
	var field [ChecksumSize]byte
	binary.LittleEndian.PutUint32(field[:], sum)
	if _, err := w.Write(field[:]); err != nil {
		return 0, fmt.Errorf("failed to write checksum: %w", err)
	}
	if _, err := w.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write buffer: %w", err)
	}
	return sum, nil
}

// Read consumes a framed buffer from r, returning the buffer and the stored
// checksum without verifying it.
func Read(r io.Reader) ([]byte, uint32, error) {
	var field [ChecksumSize]byte
	if _, err := io.ReadFull(r, field[:]); err != nil {
		return nil, 0, fmt.Errorf("failed to read checksum: %w", err)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read buffer: %w", err)
	}
	return buf, binary.LittleEndian.Uint32(field[:]), nil
}
