// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"sync"
	"sync/atomic"

	"github.com/swiftlog/swiftlog/pattern"
	"github.com/swiftlog/swiftlog/sink"
)

// registryState is the Registry lifecycle: uninitialized -> running ->
// stopping -> stopped. Transitions only ever move forward.
type registryState int32

const (
	stateUninitialized registryState = iota
	stateRunning
	stateStopping
	stateStopped
)

// Registry owns the process-wide set of loggers, sinks, and the single
// backend goroutine that drains every producer queue created through
// it. Lookup/creation is off the hot path and guarded by a coarse
// mutex, the way opencoff-go-logger guards its single close transition
// with an atomic flag, generalized here to four states instead of two.
type Registry struct {
	mu      sync.Mutex
	state   int32 // registryState, accessed via atomic
	loggers map[string]*Logger
	sinks   map[string]sink.Sink

	backend *backend
	errCh   chan error // PolicyPropagate destination, buffered, lossy once full
}

// NewRegistry creates an uninitialized Registry. Call Start before
// creating any Producer.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]*Logger),
		sinks:   make(map[string]sink.Sink),
		errCh:   make(chan error, 64),
	}
}

// Errors returns the channel PolicyPropagate sink errors are sent on.
// A send never blocks the backend: once the buffer is full, further
// propagated errors are dropped rather than stalling dispatch.
func (r *Registry) Errors() <-chan error { return r.errCh }

func (r *Registry) loadState() registryState {
	return registryState(atomic.LoadInt32(&r.state))
}

// CreateOrGetLogger returns the logger named name, creating it with
// the given sinks and line pattern if it doesn't exist yet. An
// existing logger is returned unchanged — sinks and linePattern are
// ignored on a second call.
func (r *Registry) CreateOrGetLogger(name string, sinks []sink.Sink, linePattern string) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l, nil
	}
	if name == "" {
		return nil, ErrConfig
	}
	compiled, err := pattern.Compile(linePattern)
	if err != nil {
		return nil, err
	}
	l := &Logger{name: name, sinks: sinks, linePat: compiled, registry: r}
	l.SetLevel(LevelInfo)
	r.loggers[name] = l
	return l, nil
}

// GetLogger returns a previously created logger, or (nil, false) if
// none is registered under name.
func (r *Registry) GetLogger(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// CreateOrGetSink registers construct()'s result under name the first
// time name is seen, or returns the existing sink thereafter without
// calling construct again. The caller is responsible for matching the
// sink's concrete kind on retrieval; a mismatched type assertion at the
// call site surfaces as the caller's own ConfigError.
func (r *Registry) CreateOrGetSink(name string, construct func() (sink.Sink, error)) (sink.Sink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sinks[name]; ok {
		return s, nil
	}
	s, err := construct()
	if err != nil {
		return nil, err
	}
	r.sinks[name] = s
	return s, nil
}

// GetSink returns a previously created sink, or ErrConfig if unknown.
func (r *Registry) GetSink(name string) (sink.Sink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sinks[name]
	if !ok {
		return nil, ErrConfig
	}
	return s, nil
}

// Start transitions the registry from uninitialized to running and
// spawns the backend goroutine. Calling Start twice is a no-op on the
// second call.
func (r *Registry) Start(opts ...Option) error {
	if !atomic.CompareAndSwapInt32(&r.state, int32(stateUninitialized), int32(stateRunning)) {
		return nil
	}
	o := defaultBackendOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r.backend = newBackend(o)
	r.backend.errCh = r.errCh
	r.backend.run()
	return nil
}

// newProducer creates a ProducerQueue and registers it with the
// backend's intake list. Called from Logger.Producer, which a caller
// invokes once per goroutine that logs.
func (r *Registry) newProducer(l *Logger, queueCapacity int, policy OverflowPolicy) (*Producer, error) {
	if r.loadState() != stateRunning {
		return nil, ErrClosed
	}
	if queueCapacity <= 0 {
		return nil, ErrConfig
	}
	q := NewProducerQueue(queueCapacity, policy)
	r.backend.register(l, q)
	return newProducer(l, q), nil
}

// Stop transitions the registry through stopping to stopped: it raises
// the backend's stop flag, waits for it to drain every registered
// queue and flush every sink (bounded by BackendOptions.ShutdownTimeout),
// then returns. Calling Stop before Start or a second time is a no-op.
func (r *Registry) Stop() error {
	if !atomic.CompareAndSwapInt32(&r.state, int32(stateRunning), int32(stateStopping)) {
		return nil
	}
	r.backend.stop()
	atomic.StoreInt32(&r.state, int32(stateStopped))
	return nil
}
