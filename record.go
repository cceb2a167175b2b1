// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import (
	"unsafe"

	"github.com/swiftlog/swiftlog/wire"
)

// Metadata is the static, program-lifetime description of a single log
// call site. It is built once when a Logger first reaches that call
// site and is referenced by every record the call site subsequently
// produces — never copied into the ring. ArgDecoders holds one
// resolved wire.DecodeFunc per argument position, so the backend
// dereferences a function value instead of performing a type switch or
// virtual dispatch per argument.
type Metadata struct {
	Pattern     string // message template source ({}/{name} placeholders)
	File        string
	Line        int
	Function    string
	LoggerName  string
	ArgDecoders []wire.DecodeFunc // one per argument position, nil for built-in Kinds
}

// headerSize is the fixed wire size of a RecordHeader as written into
// the ring: total frame size (4) + timestamp nanos (8) + level (1) +
// 3 bytes alignment padding + metadata pointer (8) = 24 bytes.
const headerSize = 24

// writeHeader serializes a record header (and, for real records, the
// metadata pointer) into the start of a ring slot reserved for a frame
// of totalSize bytes.
func writeHeader(buf []byte, totalSize uint32, tsNanos int64, level Level, meta *Metadata) {
	putU32(buf[0:4], totalSize)
	putU64(buf[4:12], uint64(tsNanos))
	buf[12] = byte(level)
	buf[13], buf[14], buf[15] = 0, 0, 0
	putU64(buf[16:24], uint64(uintptr(unsafe.Pointer(meta))))
}

// flushBox carries a flush_sync waiter's done channel through the ring
// as a plain heap pointer, since a chan value cannot itself be
// round-tripped through unsafe.Pointer.
type flushBox struct{ done chan struct{} }

// writeFlushMarker writes a levelFlush sentinel frame whose pointer
// slot holds a *flushBox instead of a *Metadata, implementing
// flush_sync as a special record the backend recognizes and reacts to
// without dereferencing it as metadata. tsNanos is
// stamped the same way as a real record so the marker takes its turn
// in cross-queue selection instead of jumping every other queue.
func writeFlushMarker(buf []byte, tsNanos int64, box *flushBox) {
	putU32(buf[0:4], headerSize)
	putU64(buf[4:12], uint64(tsNanos))
	buf[12] = byte(levelFlush)
	buf[13], buf[14], buf[15] = 0, 0, 0
	putU64(buf[16:24], uint64(uintptr(unsafe.Pointer(box))))
}

func readFlushMarker(buf []byte) *flushBox {
	ptr := uintptr(getU64(buf[16:24]))
	return (*flushBox)(unsafe.Pointer(ptr))
}

// readHeader parses the fixed-size header at the start of buf.
func readHeader(buf []byte) (totalSize uint32, tsNanos int64, level Level, meta *Metadata) {
	totalSize = getU32(buf[0:4])
	tsNanos = int64(getU64(buf[4:12]))
	level = Level(buf[12])
	ptr := uintptr(getU64(buf[16:24]))
	meta = (*Metadata)(unsafe.Pointer(ptr))
	return
}

func putU32(b []byte, v uint32) {
	b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
}

func getU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
