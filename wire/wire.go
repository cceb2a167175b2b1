// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the record payload codec: the encoding of a
// log call's arguments into the ring buffer and their decoding back out
// on the backend side.
//
// Arguments are represented as a closed tagged union (Arg) rather than
// boxed into interface{}, the way agilira-iris's Field avoids allocating
// on every log call. Kind selects which union member is meaningful;
// every Arg is a plain value, never a heap pointer to an interface.
package wire

import (
	"unsafe"

	"github.com/swiftlog/swiftlog/internal/asm"
)

// Kind identifies which field of an Arg is populated.
type Kind uint8

const (
	KindInt64 Kind = iota
	KindUint64
	KindFloat64
	KindBool
	KindString    // owned copy, Str holds the bytes
	KindStringRef // borrowed, caller guarantees the bytes outlive the record
	KindBytes
	KindEncodable // Ptr refers to a value implementing Encodable
)

// Arg is a single logging argument. Exactly one of the typed fields is
// meaningful, selected by Kind; the struct is fixed-size and
// allocation-free to construct.
type Arg struct {
	Kind   Kind
	Name   string // named_args key, empty for positional args
	I64    int64
	F64    float64
	Str    string
	Bytes  []byte
	Ptr    Encodable
	Decode DecodeFunc // set for KindEncodable; the call site's display-text decoder
}

func Int64(name string, v int64) Arg   { return Arg{Kind: KindInt64, Name: name, I64: v} }
func Uint64(name string, v uint64) Arg { return Arg{Kind: KindUint64, Name: name, I64: int64(v)} }
func Float64(name string, v float64) Arg {
	return Arg{Kind: KindFloat64, Name: name, F64: v}
}
func Bool(name string, v bool) Arg {
	var i int64
	if v {
		i = 1
	}
	return Arg{Kind: KindBool, Name: name, I64: i}
}
func String(name, v string) Arg { return Arg{Kind: KindString, Name: name, Str: v} }

// StringRef borrows v's bytes rather than copying them. The caller
// guarantees v is not mutated or freed before the record is formatted,
// which in practice means v must be a string literal or other
// static-lifetime value, the same contract every borrowed string in the
// message format grammar carries.
func StringRef(name, v string) Arg { return Arg{Kind: KindStringRef, Name: name, Str: v} }

func Bytes(name string, v []byte) Arg { return Arg{Kind: KindBytes, Name: name, Bytes: v} }

// Value wraps a user type implementing Encodable. decode renders the
// type's encoded payload back to display text; it is stored on the
// call site's cached Metadata the first time this call site is seen,
// giving the backend a static decoder function pointer rather than a
// type switch or reflection per record.
func Value(name string, v Encodable, decode DecodeFunc) Arg {
	return Arg{Kind: KindEncodable, Name: name, Ptr: v, Decode: decode}
}

// Encodable is the capability interface for user-defined complex
// argument types that the built-in Kinds cannot represent directly.
type Encodable interface {
	// EncodedSize reports how many bytes Encode will write.
	EncodedSize() int
	// Encode writes the value's wire representation into buf, which is
	// guaranteed to be at least EncodedSize() bytes long, and returns
	// the number of bytes written.
	Encode(buf []byte) int
}

// DecodeFunc decodes a single raw Arg's payload (as produced by Encode)
// back into a displayable value, appending its text form to dst. It is
// resolved once per call site and stored in the immutable Metadata
// block, avoiding virtual dispatch on the hot path in the same spirit
// as agilira-iris's precomputed encodeFunc field.
type DecodeFunc func(dst []byte, payload []byte) []byte

// argHeaderSize is the per-arg wire prefix: kind (1 byte) + payload
// length (4 bytes, little-endian). Arg.Name is not encoded; the
// backend takes placeholder names from the message template.
const argHeaderSize = 5

// EncodedSize returns the number of bytes Encode will write for a.
func EncodedSize(a Arg) int {
	return argHeaderSize + payloadSize(a)
}

func payloadSize(a Arg) int {
	switch a.Kind {
	case KindInt64, KindUint64, KindFloat64, KindBool:
		return 8
	case KindString, KindStringRef:
		return 4 + len(a.Str)
	case KindBytes:
		return 4 + len(a.Bytes)
	case KindEncodable:
		return a.Ptr.EncodedSize()
	default:
		return 0
	}
}

// Encode writes a's wire form into buf (which must be at least
// EncodedSize(a) bytes) and returns the number of bytes written.
func Encode(buf []byte, a Arg) int {
	buf[0] = byte(a.Kind)
	n := payloadSize(a)
	putU32(buf[1:5], uint32(n))
	body := buf[argHeaderSize : argHeaderSize+n]
	switch a.Kind {
	case KindInt64, KindUint64:
		putU64(body, uint64(a.I64))
	case KindFloat64:
		putU64(body, float64bits(a.F64))
	case KindBool:
		putU64(body, uint64(a.I64))
	case KindString:
		putU32(body[:4], uint32(len(a.Str)))
		asm.Copy(body[4:], stringBytes(a.Str))
	case KindStringRef:
		// The ring always holds physical bytes, so StringRef still
		// copies into buf here; the Kind distinction is the caller's
		// static-lifetime promise (see StringRef's doc comment), which
		// lets a future call-site cache the encoded form instead of
		// re-encoding on every call.
		putU32(body[:4], uint32(len(a.Str)))
		asm.Copy(body[4:], stringBytes(a.Str))
	case KindBytes:
		putU32(body[:4], uint32(len(a.Bytes)))
		asm.Copy(body[4:], a.Bytes)
	case KindEncodable:
		a.Ptr.Encode(body)
	}
	return argHeaderSize + n
}

// Decode reads one Arg header from buf and returns the Kind, the raw
// payload slice, and the number of bytes consumed.
func Decode(buf []byte) (kind Kind, payload []byte, consumed int) {
	kind = Kind(buf[0])
	n := int(getU32(buf[1:5]))
	payload = buf[argHeaderSize : argHeaderSize+n]
	return kind, payload, argHeaderSize + n
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
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

// stringBytes views s's bytes without copying, valid only for the
// duration of the asm.Copy call it feeds; s itself is never mutated.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func float64bits(f float64) uint64 {
	return *(*uint64)(unsafe.Pointer(&f))
}

func float64frombits(b uint64) float64 {
	return *(*float64)(unsafe.Pointer(&b))
}

// DecodeInt64 reinterprets an 8-byte payload produced for KindInt64 or
// KindUint64.
func DecodeInt64(payload []byte) int64 { return int64(getU64(payload)) }

// DecodeFloat64 reinterprets an 8-byte payload produced for KindFloat64.
func DecodeFloat64(payload []byte) float64 { return float64frombits(getU64(payload)) }

// DecodeBool reinterprets an 8-byte payload produced for KindBool.
func DecodeBool(payload []byte) bool { return getU64(payload) != 0 }

// DecodeString reads a length-prefixed string payload (KindString or
// KindStringRef).
func DecodeString(payload []byte) string {
	n := getU32(payload[:4])
	return string(payload[4 : 4+n])
}

// DecodeBytes reads a length-prefixed byte payload (KindBytes).
func DecodeBytes(payload []byte) []byte {
	n := getU32(payload[:4])
	return payload[4 : 4+n]
}
