// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"code.hybscloud.com/atomix"

	"github.com/swiftlog/swiftlog/pattern"
	"github.com/swiftlog/swiftlog/sink"
)

// Logger is a named destination: an ordered list of sinks, a compiled
// output pattern, and a level threshold. Created once on demand via a
// Registry and never destroyed before backend teardown.
type Logger struct {
	name        string
	threshold   atomix.Uint64 // holds a Level
	sinks       []sink.Sink
	linePat     *pattern.Pattern
	sourceDepth int             // 0=filename only, N=last N segments, -1=full path
	errorPolicy SinkErrorPolicy // how backend.dispatch reacts to a sink error
	registry    *Registry
}

// SetSourceDepth controls how much of a record's source path
// %(short_source_location) renders: 0 = filename only, N = last N
// segments, -1 = full path. %(full_path) always renders the full path.
func (l *Logger) SetSourceDepth(n int) { l.sourceDepth = n }

// SetErrorPolicy selects how the backend reacts when one of l's sinks
// returns an error from Write, Flush, or RotateIfNeeded.
func (l *Logger) SetErrorPolicy(p SinkErrorPolicy) { l.errorPolicy = p }

// Name returns the logger's registered name.
func (l *Logger) Name() string { return l.name }

// SetLevel changes the logger's threshold; readable without
// synchronization overhead from should_log on the hot path via a
// relaxed atomic load.
func (l *Logger) SetLevel(level Level) {
	l.threshold.StoreRelease(uint64(level))
}

// Level returns the logger's current threshold.
func (l *Logger) Level() Level {
	return Level(l.threshold.LoadRelaxed())
}

// ShouldLog is the constant-time level gate applied before a record
// is even encoded: it never touches the ring.
func (l *Logger) ShouldLog(level Level) bool {
	return uint64(level) >= l.threshold.LoadRelaxed()
}

// Producer returns a new handle bound to a fresh single-producer queue
// registered with the backend. Call Producer once per goroutine that
// logs through l (e.g. cache it in that goroutine's state) and reuse
// it for every subsequent log call — Go has no portable thread-local
// storage to make a per-thread binding implicit, so the binding is
// explicit here instead.
func (l *Logger) Producer(queueCapacity int, policy OverflowPolicy) (*Producer, error) {
	return l.registry.newProducer(l, queueCapacity, policy)
}
