// Package serq implements the binq serialization queue: a typed, ordered
// container that flattens scalars and nested collections into one byte
// buffer and rebuilds them in push order.
//
// # Ordering
//
// Values are staged on a last-in/first-out chunk stack. Finalize pops that
// stack completely, appending each chunk to the payload, which places the
// first-pushed chunk at the buffer tail. Decoding consumes bytes from the
// tail, so the first-pushed value is also the first popped. Two reversals,
// original order.
//
// # Wire Format
//
//	Header:  8 bytes   record count N (doubles as the remaining counter
//	                   during decode)
//	         8*N bytes length records, reverse push order
//	Payload: staged chunks, flushed last-pushed first
//
// The format is not self-describing beyond collection lengths: callers must
// pop with the same type sequence they pushed. A mismatched pop reads
// structurally valid but semantically wrong bytes and is deliberately not
// detected.
//
// # Usage
//
//	q := serq.New()
//	serq.String.Push(q, "save v1")
//	serq.MapOf(serq.String, serq.Uint64).Push(q, scores)
//	if _, err := q.WriteFile("game.sav"); err != nil {
//	    return err
//	}
//
//	q2 := serq.New()
//	if err := q2.ReadFile("game.sav"); err != nil {
//	    return err
//	}
//	if !q2.Validate() {
//	    return errors.New("save corrupted")
//	}
//	label, err := serq.String.Pop(q2)
//	scores, err := serq.MapOf(serq.String, serq.Uint64).Pop(q2)
//
// # Limits
//
// Nested variable-length collections must be symmetric: every inner
// collection at the same depth must have the same length (a 3x3 matrix is
// fine, rows of 2 and 5 are not). Length records are shared between nesting
// levels in append order, so uneven inner lengths associate the wrong record
// with the outer pop.
//
// Append-after-load is rejected with ErrMixedAppend; clear and re-push
// instead. Instances are single-owner and unsynchronized.
package serq
