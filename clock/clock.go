// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock supplies the timestamp source used to stamp records on
// the producer's hot path. The producer side never calls time.Now
// directly so that a future, cheaper clock source (a calibrated
// monotonic counter, say) can be swapped in without touching callers.
package clock

import (
	"time"

	"code.hybscloud.com/atomix"
)

// Now returns the current wall-clock time in nanoseconds since the Unix
// epoch. It is the single timestamp primitive the rest of the library
// uses; every record carries the value this returns at enqueue time.
func Now() int64 {
	return time.Now().UnixNano()
}

// Calibration maintains an affine mapping from a monotonic tick source
// to wall-clock nanoseconds, letting a producer stamp records with a
// cheap counter read and defer the comparatively expensive call to
// time.Now to an out-of-band resync performed by the backend.
//
// The (slope, intercept) pair is packed into a single atomix.Uint128
// and read with one acquire load, so a concurrent reader never
// observes a torn pair while Resync is updating it. The base tick the
// mapping is anchored at is a separate load.
type Calibration struct {
	lastTick atomix.Uint64
	coeffs   atomix.Uint128 // lo: slope in q32.32 fixed point, hi: intercept nanos
}

// Resync records a new (tick, wallNanos) sample, deriving the mapping's
// slope from the delta against the previous sample. The first call
// establishes a 1:1 slope until a second sample is available.
func (c *Calibration) Resync(tick, wallNanos int64) {
	slope := int64(1) << 32
	prevTick := c.lastTick.LoadAcquire()
	if prevTick != 0 {
		_, prevIntercept := c.coeffs.LoadAcquire()
		dTick := tick - int64(prevTick)
		dWall := wallNanos - int64(prevIntercept)
		if dTick > 0 {
			slope = (dWall << 32) / dTick
		}
	}
	c.coeffs.StoreRelease(uint64(slope), uint64(wallNanos))
	c.lastTick.StoreRelease(uint64(tick))
}

// ToWall projects a tick value to wall-clock nanoseconds using the
// mapping established by the most recent Resync.
func (c *Calibration) ToWall(tick int64) int64 {
	slope, intercept := c.coeffs.LoadAcquire()
	base := int64(c.lastTick.LoadAcquire())
	return int64(intercept) + (((tick - base) * int64(slope)) >> 32)
}
