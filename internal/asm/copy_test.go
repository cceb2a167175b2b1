// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asm_test

import (
	"bytes"
	"testing"

	"github.com/swiftlog/swiftlog/internal/asm"
)

func TestCopyMatchesBuiltin(t *testing.T) {
	sizes := []int{0, 1, 3, 7, 8, 9, 15, 16, 17, 63, 64, 65, 1000}
	for _, n := range sizes {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i*7 + 1)
		}
		dst := make([]byte, n)
		got := asm.Copy(dst, src)
		if got != n {
			t.Fatalf("size %d: Copy returned %d", n, got)
		}
		if !bytes.Equal(dst, src) {
			t.Fatalf("size %d: mismatch", n)
		}
	}
}

func TestCopyTruncatesToShorterSlice(t *testing.T) {
	src := []byte("0123456789")
	dst := make([]byte, 4)
	n := asm.Copy(dst, src)
	if n != 4 {
		t.Fatalf("got %d, want 4", n)
	}
	if string(dst) != "0123" {
		t.Fatalf("got %q", dst)
	}
}
