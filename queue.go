// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"github.com/swiftlog/swiftlog/clock"
	"github.com/swiftlog/swiftlog/internal/ring"
)

// OverflowPolicy selects what a ProducerQueue does when a record cannot
// be enqueued because the ring is full. Exactly one policy applies per
// queue, fixed at construction.
type OverflowPolicy uint8

const (
	// PolicyBlock spins with backoff until space is available.
	PolicyBlock OverflowPolicy = iota
	// PolicyDrop discards the record immediately and counts it.
	PolicyDrop
	// PolicyUnbounded never reports full; callers must size the ring
	// generously, since there is no second buffer behind it.
	PolicyUnbounded
)

// ProducerQueue is the single-producer single-consumer channel between
// a Logger and the backend. It owns an internal/ring.Queue and handles
// the header framing (including wrap-boundary padding frames) that the
// raw ring leaves to its caller.
type ProducerQueue struct {
	r       *ring.Queue
	policy  OverflowPolicy
	dropped atomix.Uint64

	// transitQueued, when non-nil, is a counter shared across every
	// queue registered with the same backend; transitHardLimit forces
	// PolicyDrop behavior once the shared total reaches it, regardless
	// of this queue's own policy.
	transitQueued    *atomix.Uint64
	transitHardLimit uint64
}

// NewProducerQueue creates a queue backed by a ring of the given byte
// capacity (rounded up to a power of two).
func NewProducerQueue(capacity int, policy OverflowPolicy) *ProducerQueue {
	return &ProducerQueue{r: ring.New(capacity), policy: policy}
}

// SetTransitLimiter wires this queue into a backend-wide in-flight
// record counter. hardLimit of 0 disables the override.
func (q *ProducerQueue) SetTransitLimiter(counter *atomix.Uint64, hardLimit uint64) {
	q.transitQueued = counter
	q.transitHardLimit = hardLimit
}

// Cap returns the physical byte capacity of the backing ring.
func (q *ProducerQueue) Cap() int { return q.r.Cap() }

// Dropped returns the number of records discarded under PolicyDrop
// since the queue was created.
func (q *ProducerQueue) Dropped() uint64 { return q.dropped.LoadRelaxed() }

// transitLimitExceeded reports whether the shared in-flight counter has
// reached this queue's hard limit, if one is configured.
func (q *ProducerQueue) transitLimitExceeded() bool {
	return q.transitQueued != nil && q.transitHardLimit > 0 &&
		q.transitQueued.LoadRelaxed() >= q.transitHardLimit
}

// Enqueue reserves totalSize bytes (headerSize + payload) for a record,
// writes its header, lets fill populate the payload region, and
// publishes the frame. meta must be nil only for internal use (padding
// frames are written directly by tryReserve, never through Enqueue).
func (q *ProducerQueue) Enqueue(level Level, meta *Metadata, payloadSize int, fill func(payload []byte)) error {
	total := headerSize + payloadSize
	if total > q.r.Cap() {
		return ErrEncodeOverflow
	}

	sw := spin.Wait{}
	for {
		slot, ok := q.tryReserve(total)
		if ok {
			writeHeader(slot, uint32(total), clock.Now(), level, meta)
			fill(slot[headerSize:])
			q.r.Commit(total)
			if q.transitQueued != nil {
				q.transitQueued.Add(1)
			}
			return nil
		}
		if q.transitLimitExceeded() {
			// transit_events_hard_limit overrides the queue's own
			// policy: once the backend-wide in-flight total is this
			// high, every queue sheds load rather than blocking further.
			q.dropped.Add(1)
			return nil
		}
		switch q.policy {
		case PolicyDrop:
			q.dropped.Add(1)
			return nil
		case PolicyUnbounded:
			// A caller using PolicyUnbounded is expected to size the
			// ring so this never happens; fall through to blocking
			// rather than silently corrupting data.
			fallthrough
		default: // PolicyBlock
			sw.Once() // same spin-then-pause pattern lfq's enqueue loops use between CAS attempts
		}
	}
}

// EnqueueFlushMarker publishes a levelFlush sentinel frame carrying
// box, used by Producer.FlushSync to wait for the backend to drain
// past every record enqueued before it.
func (q *ProducerQueue) EnqueueFlushMarker(box *flushBox) error {
	sw := spin.Wait{}
	for {
		slot, ok := q.tryReserve(headerSize)
		if ok {
			writeFlushMarker(slot, clock.Now(), box)
			q.r.Commit(headerSize)
			if q.transitQueued != nil {
				q.transitQueued.Add(1)
			}
			return nil
		}
		sw.Once() // flush_sync always waits for room; never dropped
	}
}

// tryReserve attempts a single, non-blocking reservation of n bytes,
// transparently writing a padding frame and retrying once if the
// reservation would otherwise straddle the ring's wrap boundary. A
// remainder too short to hold a header is committed as unframed
// filler, which Peek recognizes by its length.
func (q *ProducerQueue) tryReserve(n int) ([]byte, bool) {
	if slot, ok := q.r.Reserve(n); ok {
		return slot, true
	}
	r := q.r.RemainingToWrap()
	if r == 0 {
		return nil, false
	}
	if q.r.Free() < r+n {
		return nil, false
	}
	padSlot, ok := q.r.Reserve(r)
	if !ok {
		return nil, false
	}
	if r >= headerSize {
		writeHeader(padSlot, uint32(r), 0, levelPad, nil)
	}
	q.r.Commit(r)
	return q.r.Reserve(n)
}

// Peek returns the next unread frame's bytes without consuming them,
// skipping (and consuming) any padding frames transparently.
func (q *ProducerQueue) Peek() (header []byte, ok bool) {
	for {
		slot, ok := q.r.Peek()
		if !ok {
			return nil, false
		}
		if len(slot) < headerSize {
			// Frames never straddle the wrap boundary, so a span this
			// short is the unframed filler tryReserve left before it.
			q.r.Consume(len(slot))
			continue
		}
		total, _, level, _ := readHeader(slot)
		if level == levelPad {
			q.r.Consume(int(total))
			continue
		}
		return slot[:total], true
	}
}

// Consume advances past the frame most recently returned by Peek.
func (q *ProducerQueue) Consume(n int) {
	q.r.Consume(n)
	if q.transitQueued != nil {
		q.transitQueued.Add(^uint64(0)) // Add(-1): atomix.Uint64 has no Sub
	}
}
