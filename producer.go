// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"runtime"
	"time"

	"github.com/swiftlog/swiftlog/wire"
)

// Producer is the hot-path handle a single goroutine uses to emit
// records to a Logger. It owns one ProducerQueue and a call-site
// metadata cache; neither is synchronized, because a Producer must
// never be shared across goroutines (the same single-writer contract
// same single-writer contract a thread's ProducerQueue carries).
type Producer struct {
	logger *Logger
	queue  *ProducerQueue
	cache  map[string]*Metadata // keyed by template string, this goroutine's call sites only
}

func newProducer(l *Logger, q *ProducerQueue) *Producer {
	return &Producer{logger: l, queue: q, cache: make(map[string]*Metadata)}
}

// Dropped reports how many records this producer's queue has discarded
// under PolicyDrop.
func (p *Producer) Dropped() uint64 { return p.queue.Dropped() }

func (p *Producer) metadataFor(template string, args []wire.Arg) *Metadata {
	if m, ok := p.cache[template]; ok {
		return m
	}
	file, line, fn := callerInfo(3)
	decoders := make([]wire.DecodeFunc, len(args))
	for i, a := range args {
		if a.Kind == wire.KindEncodable {
			decoders[i] = a.Decode
		}
	}
	m := &Metadata{
		Pattern:     template,
		File:        file,
		Line:        line,
		Function:    fn,
		LoggerName:  p.logger.name,
		ArgDecoders: decoders,
	}
	p.cache[template] = m
	return m
}

// callerInfo reports the first frame at or above skip that lies outside
// this file, so Log and the level helpers that wrap it both resolve to
// the application's call site.
func callerInfo(skip int) (file string, line int, function string) {
	_, self, _, _ := runtime.Caller(0)
	var pc uintptr
	var ok bool
	for {
		pc, file, line, ok = runtime.Caller(skip)
		if !ok {
			return "", 0, ""
		}
		if file != self {
			break
		}
		skip++
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return file, line, function
}

// Log encodes and enqueues one record on the calling goroutine's queue.
// It never blocks unless the queue's overflow policy is PolicyBlock or
// PolicyUnbounded (which waits for room when the ring is full), and
// returns nil even on a dropped record — drops are counted, not
// surfaced as errors. A record larger than the whole queue is not
// counted as a drop: Log returns ErrEncodeOverflow for it.
func (p *Producer) Log(level Level, template string, args ...wire.Arg) error {
	if !p.logger.ShouldLog(level) {
		return nil
	}
	meta := p.metadataFor(template, args)

	size := 0
	for _, a := range args {
		size += wire.EncodedSize(a)
	}
	return p.queue.Enqueue(level, meta, size, func(payload []byte) {
		off := 0
		for _, a := range args {
			off += wire.Encode(payload[off:], a)
		}
	})
}

// FlushSync blocks until the backend has dispatched every record this
// producer enqueued before the call, or returns ErrFlushTimeout if
// timeout elapses first.
func (p *Producer) FlushSync(timeout time.Duration) error {
	box := &flushBox{done: make(chan struct{})}
	if err := p.queue.EnqueueFlushMarker(box); err != nil {
		return err
	}
	if timeout <= 0 {
		<-box.done
		return nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-box.done:
		return nil
	case <-timer.C:
		return ErrFlushTimeout
	}
}

func (p *Producer) Trace3(template string, args ...wire.Arg) error {
	return p.Log(LevelTrace3, template, args...)
}
func (p *Producer) Trace2(template string, args ...wire.Arg) error {
	return p.Log(LevelTrace2, template, args...)
}
func (p *Producer) Trace1(template string, args ...wire.Arg) error {
	return p.Log(LevelTrace1, template, args...)
}
func (p *Producer) Debug(template string, args ...wire.Arg) error {
	return p.Log(LevelDebug, template, args...)
}
func (p *Producer) Info(template string, args ...wire.Arg) error {
	return p.Log(LevelInfo, template, args...)
}
func (p *Producer) Warn(template string, args ...wire.Arg) error {
	return p.Log(LevelWarn, template, args...)
}
func (p *Producer) Error(template string, args ...wire.Arg) error {
	return p.Log(LevelError, template, args...)
}
func (p *Producer) Critical(template string, args ...wire.Arg) error {
	return p.Log(LevelCritical, template, args...)
}
func (p *Producer) Backtrace(template string, args ...wire.Arg) error {
	return p.Log(LevelBacktrace, template, args...)
}
