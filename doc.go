// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package swiftlog is a low-latency asynchronous logging library: a
// call on the application goroutine encodes its arguments into a
// lock-free single-producer/single-consumer ring and returns, while one
// dedicated backend goroutine decodes, formats, and writes records to
// sinks off the hot path.
//
// # Quick start
//
//	reg := swiftlog.NewRegistry()
//	console := sink.NewConsole(os.Stdout, true)
//	logger, err := reg.CreateOrGetLogger("app", []sink.Sink{console},
//		"%(time) %(log_level_short_code) %(logger): %(message)")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := reg.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer reg.Stop()
//
//	p, err := logger.Producer(1<<16, swiftlog.PolicyDrop)
//	if err != nil {
//		log.Fatal(err)
//	}
//	p.Info("request from {ip} took {ms}ms", wire.String("ip", ip), wire.Int64("ms", elapsed))
//
// # Producers are per-goroutine
//
// Go has no portable thread-local storage, so unlike a thread-affine
// C++ frontend, a [Producer] is an explicit handle: call
// [Logger.Producer] once per goroutine that logs and reuse the
// returned handle for every subsequent call. A Producer and its
// underlying queue must never be shared across goroutines.
//
// # Overflow policies
//
// Each Producer's queue has exactly one [OverflowPolicy]: PolicyBlock
// spins with backoff until space frees up, PolicyDrop counts and
// discards the record immediately, and PolicyUnbounded never reports
// full (the caller is responsible for sizing the ring generously).
//
// # Ordering
//
// Records from one producer appear in every sink in the order they
// were logged. Records from different producers appear in
// nondecreasing timestamp order on a best-effort basis; enabling
// [WithStrictOrderGrace] trades latency for a stronger cross-producer
// ordering guarantee.
package swiftlog
