// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire_test

import (
	"strconv"
	"testing"

	"github.com/swiftlog/swiftlog/wire"
)

func TestRoundTripScalars(t *testing.T) {
	args := []wire.Arg{
		wire.Int64("n", -42),
		wire.Uint64("u", 1<<40),
		wire.Float64("f", 3.5),
		wire.Bool("ok", true),
		wire.Bool("bad", false),
		wire.String("s", "hello"),
		wire.StringRef("lit", "world"),
		wire.Bytes("b", []byte{1, 2, 3}),
	}

	for _, a := range args {
		size := wire.EncodedSize(a)
		buf := make([]byte, size)
		n := wire.Encode(buf, a)
		if n != size {
			t.Fatalf("%s: Encode wrote %d, EncodedSize said %d", a.Name, n, size)
		}
		kind, payload, consumed := wire.Decode(buf)
		if consumed != size {
			t.Fatalf("%s: Decode consumed %d, want %d", a.Name, consumed, size)
		}
		if kind != a.Kind {
			t.Fatalf("%s: kind mismatch got %v want %v", a.Name, kind, a.Kind)
		}
		switch a.Kind {
		case wire.KindInt64:
			if got := wire.DecodeInt64(payload); got != a.I64 {
				t.Fatalf("DecodeInt64 = %d, want %d", got, a.I64)
			}
		case wire.KindUint64:
			if got := wire.DecodeInt64(payload); got != a.I64 {
				t.Fatalf("DecodeInt64(uint64) = %d, want %d", got, a.I64)
			}
		case wire.KindFloat64:
			if got := wire.DecodeFloat64(payload); got != a.F64 {
				t.Fatalf("DecodeFloat64 = %v, want %v", got, a.F64)
			}
		case wire.KindBool:
			want := a.I64 != 0
			if got := wire.DecodeBool(payload); got != want {
				t.Fatalf("DecodeBool = %v, want %v", got, want)
			}
		case wire.KindString, wire.KindStringRef:
			if got := wire.DecodeString(payload); got != a.Str {
				t.Fatalf("DecodeString = %q, want %q", got, a.Str)
			}
		case wire.KindBytes:
			got := wire.DecodeBytes(payload)
			if string(got) != string(a.Bytes) {
				t.Fatalf("DecodeBytes = %v, want %v", got, a.Bytes)
			}
		}
	}
}

type point struct{ x, y int32 }

func (p point) EncodedSize() int { return 8 }
func (p point) Encode(buf []byte) int {
	putU32(buf[0:4], uint32(p.x))
	putU32(buf[4:8], uint32(p.y))
	return 8
}
func putU32(b []byte, v uint32) {
	b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
}

func decodePoint(dst, payload []byte) []byte {
	x := int32(payload[0]) | int32(payload[1])<<8 | int32(payload[2])<<16 | int32(payload[3])<<24
	y := int32(payload[4]) | int32(payload[5])<<8 | int32(payload[6])<<16 | int32(payload[7])<<24
	dst = append(dst, []byte("x=")...)
	dst = append(dst, []byte(strconv.Itoa(int(x)))...)
	dst = append(dst, []byte(" y=")...)
	dst = append(dst, []byte(strconv.Itoa(int(y)))...)
	return dst
}

func TestEncodableArg(t *testing.T) {
	a := wire.Value("pt", point{x: 3, y: -7}, decodePoint)
	size := wire.EncodedSize(a)
	buf := make([]byte, size)
	wire.Encode(buf, a)
	_, payload, consumed := wire.Decode(buf)
	if consumed != size {
		t.Fatalf("consumed %d, want %d", consumed, size)
	}
	if len(payload) != 8 {
		t.Fatalf("payload len = %d, want 8", len(payload))
	}
	got := string(a.Decode(nil, payload))
	if got != "x=3 y=-7" {
		t.Fatalf("Decode = %q", got)
	}
}

func TestMultipleArgsPackSequentially(t *testing.T) {
	args := []wire.Arg{wire.Int64("a", 1), wire.String("b", "xy"), wire.Bool("c", true)}
	total := 0
	for _, a := range args {
		total += wire.EncodedSize(a)
	}
	buf := make([]byte, total)
	off := 0
	for _, a := range args {
		off += wire.Encode(buf[off:], a)
	}
	if off != total {
		t.Fatalf("wrote %d bytes, want %d", off, total)
	}

	off = 0
	for _, want := range args {
		kind, payload, n := wire.Decode(buf[off:])
		if kind != want.Kind {
			t.Fatalf("kind mismatch: got %v want %v", kind, want.Kind)
		}
		_ = payload
		off += n
	}
}
