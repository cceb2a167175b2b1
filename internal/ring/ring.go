// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring implements the single-producer single-consumer byte ring
// that carries encoded log records from a producer goroutine to the
// backend. It is a Lamport ring buffer specialized to byte granularity:
// unlike a fixed-element SPSC queue, a logging ring must reserve a
// variable-length contiguous span per record.
package ring

import "code.hybscloud.com/atomix"

// pad is cache line padding to prevent false sharing between the
// producer-owned and consumer-owned cursors.
type pad [64]byte

// Queue is a single-producer single-consumer byte ring.
//
// One producer goroutine calls Reserve/Commit; one consumer goroutine
// (the backend) calls Peek/Consume. Neither side synchronizes with the
// other beyond the W/R cursors, which form a release/acquire edge: a
// producer publishes a slot by storing W with release ordering only
// after its bytes are fully written, and the consumer observes W with
// acquire ordering before reading those bytes.
type Queue struct {
	_          pad
	head       atomix.Uint64 // R: consumer cursor
	_          pad
	cachedTail uint64 // consumer's cached view of W
	_          pad
	tail       atomix.Uint64 // W: producer cursor
	_          pad
	cachedHead uint64 // producer's cached view of R
	_          pad
	buf        []byte
	mask       uint64
}

// New creates a byte ring of the given capacity, rounded up to the next
// power of two. Panics if capacity < 64 (too small to hold even one
// minimal record header after padding overhead).
func New(capacity int) *Queue {
	if capacity < 64 {
		panic("ring: capacity must be >= 64")
	}
	n := uint64(roundToPow2(capacity))
	return &Queue{
		buf:  make([]byte, n),
		mask: n - 1,
	}
}

// Cap returns the ring's physical byte capacity.
func (q *Queue) Cap() int {
	return int(q.mask + 1)
}

// Free returns the number of bytes currently free, without regard to
// contiguity across the wrap boundary.
func (q *Queue) Free() int {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadAcquire()
	q.cachedHead = head
	return int((q.mask + 1) - (tail - head))
}

// RemainingToWrap returns the number of contiguous bytes between the
// current write cursor and the physical end of the backing array.
func (q *Queue) RemainingToWrap() int {
	tail := q.tail.LoadRelaxed()
	return int(q.mask + 1 - (tail & q.mask))
}

// Reserve returns a writable slice of exactly n bytes at the current
// write cursor. It does not advance the cursor; the caller must call
// Commit(n) once the slice is fully written. Reserve only succeeds when
// n bytes are available *contiguously* before the physical end of the
// backing array — the caller (queue.ProducerQueue) is responsible for
// inserting a padding record and retrying when a reservation would
// straddle the wrap boundary.
func (q *Queue) Reserve(n int) (slot []byte, ok bool) {
	need := uint64(n)
	tail := q.tail.LoadRelaxed()
	start := tail & q.mask
	if start+need > q.mask+1 {
		return nil, false // would straddle the wrap boundary
	}

	free := tail - q.cachedHead
	if (q.mask+1)-free < need {
		q.cachedHead = q.head.LoadAcquire()
		free = tail - q.cachedHead
		if (q.mask+1)-free < need {
			return nil, false
		}
	}
	return q.buf[start : start+need], true
}

// Commit publishes the most recently reserved n bytes by advancing the
// write cursor with release ordering, making the bytes visible to the
// consumer.
func (q *Queue) Commit(n int) {
	q.tail.StoreRelease(q.tail.LoadRelaxed() + uint64(n))
}

// Peek returns the contiguous readable byte span starting at the read
// cursor. The span never straddles the wrap boundary: its length is
// min(available bytes, bytes to the physical end of the array). Returns
// ok=false if the ring is empty.
func (q *Queue) Peek() (slot []byte, ok bool) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return nil, false
		}
	}
	start := head & q.mask
	avail := q.cachedTail - head
	toWrap := q.mask + 1 - start
	if avail > toWrap {
		avail = toWrap
	}
	return q.buf[start : start+avail], true
}

// Consume advances the read cursor past n bytes with release ordering,
// allowing the producer to observe the freed space (via acquire) in a
// subsequent Reserve.
func (q *Queue) Consume(n int) {
	q.head.StoreRelease(q.head.LoadRelaxed() + uint64(n))
}

func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
