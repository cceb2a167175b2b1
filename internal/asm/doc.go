// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asm provides architecture-specific helpers for hot paths.
//
// Copy is the bulk byte-copy hint wire.Encode uses to write string and
// byte-slice argument payloads into a reserved ring slot. Architectures with efficient
// unaligned 64-bit loads/stores get a widened copy loop; everything
// else falls back to the Go runtime's copy(), which is already well
// tuned on those targets.
package asm
