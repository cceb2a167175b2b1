// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import "time"

// SinkErrorPolicy selects what the backend does when a sink's Write,
// Flush, or RotateIfNeeded returns an error.
type SinkErrorPolicy uint8

const (
	// PolicyIgnore reports the error on standard error and continues
	// dispatching.
	PolicyIgnore SinkErrorPolicy = iota
	// PolicyReopen calls the sink's RotateIfNeeded and, if that
	// succeeds, retries the write once; otherwise it falls back to
	// PolicyPropagate.
	PolicyReopen
	// PolicyPropagate surfaces the error through the registry's error
	// channel for the caller to observe.
	PolicyPropagate
)

// BackendOptions configures the single backend goroutine shared by a
// Registry's loggers.
type BackendOptions struct {
	ThreadName       string            // goroutine label, for diagnostics only
	ShutdownTimeout  time.Duration
	SleepDurationMin time.Duration
	SleepDurationMax time.Duration
	StrictOrderGrace time.Duration    // 0 disables strict ordering across queues
	TransitSoftLimit int              // records queued before a warning summary fires
	TransitHardLimit int              // records queued before PolicyDrop kicks in regardless of queue policy
	SummaryInterval  time.Duration    // 0 disables dropped-record summary records
	LogLevelLabels   map[Level]string // per-level %(log_level) text override
}

// Option mutates a BackendOptions during registry construction,
// following the functional-options idiom both lfq's Builder and
// humanjuan-logger's Option func(*config) use.
type Option func(*BackendOptions)

func defaultBackendOptions() BackendOptions {
	return BackendOptions{
		ThreadName:       "swiftlog-backend",
		ShutdownTimeout:  5 * time.Second,
		SleepDurationMin: 50 * time.Microsecond,
		SleepDurationMax: 10 * time.Millisecond,
		TransitSoftLimit: 1 << 16,
		TransitHardLimit: 1 << 20,
		SummaryInterval:  0,
	}
}

// WithThreadName sets the backend goroutine's diagnostic label.
func WithThreadName(name string) Option {
	return func(o *BackendOptions) { o.ThreadName = name }
}

// WithShutdownTimeout bounds how long Stop waits for the backend to
// drain queued records before forcing a shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *BackendOptions) { o.ShutdownTimeout = d }
}

// WithSleepBounds records the idle backoff's minimum and maximum sleep
// duration in BackendOptions. The backend loop does not read them: its
// idle backoff is a zero-value iox.Backoff with that type's own bounds.
func WithSleepBounds(min, max time.Duration) Option {
	return func(o *BackendOptions) {
		o.SleepDurationMin = min
		o.SleepDurationMax = max
	}
}

// WithStrictOrderGrace enables cross-queue timestamp ordering: the
// select phase waits up to d for a smaller timestamp to appear on a
// different queue before emitting the current candidate.
func WithStrictOrderGrace(d time.Duration) Option {
	return func(o *BackendOptions) { o.StrictOrderGrace = d }
}

// WithTransitLimits sets the soft (warning summary trigger) and hard
// (forced-drop trigger) bounds on records in flight across all queues.
func WithTransitLimits(soft, hard int) Option {
	return func(o *BackendOptions) {
		o.TransitSoftLimit = soft
		o.TransitHardLimit = hard
	}
}

// WithSummaryInterval enables periodic dropped-record summary records,
// emitted at WARN every interval d while any queue has non-zero drops.
func WithSummaryInterval(d time.Duration) Option {
	return func(o *BackendOptions) { o.SummaryInterval = d }
}

// WithLevelLabel overrides the text %(log_level) renders for a given
// level, without touching ShortCode.
func WithLevelLabel(level Level, label string) Option {
	return func(o *BackendOptions) {
		if o.LogLevelLabels == nil {
			o.LogLevelLabels = make(map[Level]string)
		}
		o.LogLevelLabels[level] = label
	}
}
