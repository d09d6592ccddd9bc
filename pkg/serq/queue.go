package serq

import (
	"fmt"
	"io"
	"os"

	"github.com/tmarsden/binq/pkg/codec"
	"github.com/tmarsden/binq/pkg/frame"
)

// Errors
var (
	// ErrOutOfData reports a pop that needs more bytes than remain in the
	// payload region.
	ErrOutOfData = codec.ErrOutOfData

	// ErrNoLength reports a collection pop with no unconsumed length record
	// left in the header.
	ErrNoLength = &QueueError{"no unconsumed length record in header"}

	// ErrMixedAppend reports a finalize on an instance that was loaded from
	// serialized data and then had new values staged. Append-after-load is
	// not supported; clear and re-push instead.
	ErrMixedAppend = &QueueError{"cannot finalize new values on a loaded queue"}
)

// QueueError represents a serialization queue error
type QueueError struct {
	Message string
}

func (e *QueueError) Error() string {
	return e.Message
}

// Queue is a typed, ordered serialization container. Values pushed in order
// come back out in the same order after a finalize or a reload, despite the
// internal staging structure being last-in/first-out: the flush reverses the
// staged chunks once, and tail-first consumption during decode reverses them
// again.
//
// A Queue owns its staging stack, its ledger of length records, and its
// buffer exclusively. It performs no locking; concurrent use of one instance
// must be serialized by the caller.
type Queue struct {
	lengths  []uint64 // length records in push order
	staged   [][]byte // LIFO chunk stack; the last element is the top
	buf      *codec.Buffer
	checksum uint32 // checksum stored alongside the last loaded buffer
	loaded   bool   // buffer came from Read rather than Finalize
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{buf: codec.NewBuffer(nil, 0)}
}

// stage pushes one encoded chunk onto the staging stack.
func (q *Queue) stage(chunk []byte) {
	q.staged = append(q.staged, chunk)
}

// recordLength appends one length record for a variable-length collection.
func (q *Queue) recordLength(n uint64) {
	q.lengths = append(q.lengths, n)
}

// collectionLen reads the length record for the collection about to be
// decoded: the remaining-records counter at offset 0 locates the next
// unconsumed record at counter*8.
func (q *Queue) collectionLen() (uint64, error) {
	if q.buf.Len() < codec.WordSize {
		return 0, ErrNoLength
	}
	counter := q.buf.Uint64At(0)
	if counter == 0 {
		return 0, ErrNoLength
	}
	offset := int(counter) * codec.WordSize
	if offset+codec.WordSize > q.buf.Len() {
		return 0, ErrNoLength
	}
	return q.buf.Uint64At(offset), nil
}

// retireLength decrements the remaining-records counter in place so the next
// collection decode sees the updated value.
func (q *Queue) retireLength() {
	counter := q.buf.Uint64At(0)
	q.buf.PutUint64At(0, counter-1)
}

// Finalize flushes the ledger and every staged chunk into one contiguous
// buffer and returns it. The staged chunks are not consumed, so calling
// Finalize again with no intervening pushes produces an identical buffer.
//
// The flush is the ordering-critical step: popping the whole staging stack
// appends the last-pushed chunk first, which places the first-pushed chunk at
// the buffer tail where tail-first decoding finds it first.
func (q *Queue) Finalize() ([]byte, error) {
	if q.loaded {
		if len(q.staged) > 0 || len(q.lengths) > 0 {
			return nil, ErrMixedAppend
		}
		return q.buf.Bytes(), nil
	}

	q.buf.Reset()

	// Header: record count, then the records in reverse push order so the
	// first-pushed collection's record is the first one consumed.
	q.buf.AppendUint64(uint64(len(q.lengths)))
	for i := len(q.lengths) - 1; i >= 0; i-- {
		q.buf.AppendUint64(q.lengths[i])
	}
	q.buf.SetHeaderLen((len(q.lengths) + 1) * codec.WordSize)

	// Payload: pop the staging stack completely, appending each chunk's
	// bytes in forward order.
	for i := len(q.staged) - 1; i >= 0; i-- {
		q.buf.Append(q.staged[i])
	}

	return q.buf.Bytes(), nil
}

// Write finalizes the queue, frames it with a checksum, and writes the framed
// bytes to w. The finalized buffer (without the checksum field) is returned.
// A failed write leaves the in-memory state unchanged.
func (q *Queue) Write(w io.Writer) ([]byte, error) {
	buf, err := q.Finalize()
	if err != nil {
		return nil, err
	}
	if _, err := frame.Write(w, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteFile writes the framed queue to the named file.
func (q *Queue) WriteFile(path string) ([]byte, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	buf, err := q.Write(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output file: %w", err)
	}
	return buf, nil
}

// Read discards all current state and loads a framed buffer from r, leaving
// the queue in a loaded, unread state. The stored checksum is kept for
// Validate; it is not verified here. A failed read leaves the queue cleared.
func (q *Queue) Read(r io.Reader) error {
	q.Clear()

	buf, sum, err := frame.Read(r)
	if err != nil {
		return err
	}
	if len(buf) < codec.WordSize {
		return &QueueError{"serialized data too short for header"}
	}

	recordCount := codec.NewBuffer(buf, 0).Uint64At(0)
	if recordCount >= uint64(len(buf))/codec.WordSize {
		return &QueueError{fmt.Sprintf("header of %d records exceeds %d buffer bytes", recordCount, len(buf))}
	}
	// One extra record-sized slot for the counter itself.
	headerBytes := (recordCount + 1) * codec.WordSize

	q.buf = codec.NewBuffer(buf, int(headerBytes))
	q.checksum = sum
	q.loaded = true
	return nil
}

// ReadFile loads a framed queue from the named file.
func (q *Queue) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return q.Read(f)
}

// Validate recomputes the checksum over the current buffer and compares it to
// the checksum stored at load time. It must be called after Read and before
// any pop, because popping truncates the buffer and invalidates the
// recompute. On a queue that was never loaded it reports false.
func (q *Queue) Validate() bool {
	if !q.loaded {
		return false
	}
	return frame.Checksum(q.buf.Bytes()) == q.checksum
}

// Clear discards all staged, loaded, and ledger state, returning the queue to
// its initial empty state.
func (q *Queue) Clear() {
	q.lengths = nil
	q.staged = nil
	q.buf = codec.NewBuffer(nil, 0)
	q.checksum = 0
	q.loaded = false
}

// Stats describes a finalized or loaded buffer.
type Stats struct {
	Records      []uint64 // length records in consumption order
	HeaderBytes  int
	PayloadBytes int
	Checksum     uint32 // stored checksum, zero unless loaded
	Loaded       bool
}

// Stats reports the current buffer's header breakdown. On a fresh queue the
// buffer reflects the most recent Finalize.
func (q *Queue) Stats() Stats {
	s := Stats{
		HeaderBytes:  q.buf.HeaderLen(),
		PayloadBytes: q.buf.PayloadLen(),
		Checksum:     q.checksum,
		Loaded:       q.loaded,
	}
	if q.buf.Len() < codec.WordSize {
		return s
	}
	counter := q.buf.Uint64At(0)
	for i := counter; i >= 1; i-- {
		offset := int(i) * codec.WordSize
		if offset+codec.WordSize > q.buf.Len() {
			break
		}
		s.Records = append(s.Records, q.buf.Uint64At(offset))
	}
	return s
}
