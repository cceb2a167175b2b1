// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package asm

// Copy is the portable fallback: the Go runtime's copy() is already
// the fastest available primitive on architectures without a cheap
// unaligned wide load/store.
func Copy(dst, src []byte) int {
	return copy(dst, src)
}
