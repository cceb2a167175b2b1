// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sink implements the output destinations a backend dispatches
// formatted records to: console (with ANSI color per level, grounded
// on go-phorce-dolly's ColorFormatter color table), file (with size and
// date rotation grounded on humanjuan-logger's sizeCheck/rotateByDate),
// newline-delimited JSON, and a null sink for benchmarking.
package sink

// Sink is the capability interface every output destination
// implements. The backend is the sole caller of all four methods, so
// a Sink never needs to synchronize internally.
type Sink interface {
	// Write appends one formatted record's bytes. Implementations must
	// not retain b beyond the call.
	Write(b []byte) error
	// Flush forces any buffered bytes to their destination.
	Flush() error
	// RotateIfNeeded gives file-backed sinks a chance to roll over
	// before the next Write; no-op for sinks without rotation.
	RotateIfNeeded() error
	// Close releases any held resources (file handles, etc).
	Close() error
}
