// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrQueueFull is the control flow signal for a full producer queue,
// not a failure. ProducerQueue.Enqueue does not return it: the queue's
// OverflowPolicy either waits for room or counts the record as dropped
// and returns nil.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrQueueFull = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates an operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// ErrConfig is returned by registry calls given an invalid
// configuration: an empty logger name, a queue capacity of zero or
// less, or a GetSink lookup of an unknown sink name.
var ErrConfig = errors.New("swiftlog: invalid configuration")

// ErrEncodeOverflow is returned when a record's encoded size would
// exceed the producer queue's physical capacity — no amount of
// draining can ever make room for it.
var ErrEncodeOverflow = errors.New("swiftlog: record too large for queue")

// ErrClosed is returned by Logger.Producer when the owning Registry is
// not running (not yet started, or already stopped).
var ErrClosed = errors.New("swiftlog: registry is stopped")

// ErrFlushTimeout is returned by Producer.FlushSync when the backend
// has not dispatched the flush marker within the given timeout.
var ErrFlushTimeout = errors.New("swiftlog: flush_sync timed out")

// SinkError wraps an I/O failure reported by a sink's Write, Flush, or
// RotateIfNeeded. Sink holds the name of the Logger whose sink failed
// (sinks carry no name of their own here), so a caller reading
// Registry.Errors() can identify the source without string matching.
type SinkError struct {
	Sink string
	Op   string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("swiftlog: sink %q: %s: %v", e.Sink, e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
