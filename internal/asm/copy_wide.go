// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64

package asm

import "unsafe"

// Copy copies src into dst using 8-byte strides while both remain
// available, then finishes the tail with a byte-wise copy. amd64 and
// arm64 tolerate unaligned 64-bit loads/stores at full throughput,
// which a plain copy() loop does not exploit for the small, oddly
// sized payloads typical of log arguments.
//
//go:nosplit
func Copy(dst, src []byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		d := (*uint64)(unsafe.Pointer(&dst[i]))
		s := (*uint64)(unsafe.Pointer(&src[i]))
		*d = *s
	}
	for ; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}
