// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"testing"
	"time"

	"github.com/swiftlog/swiftlog/clock"
)

func TestNowIsMonotonicEnough(t *testing.T) {
	a := clock.Now()
	time.Sleep(time.Millisecond)
	b := clock.Now()
	if b <= a {
		t.Fatalf("Now() did not advance: a=%d b=%d", a, b)
	}
}

func TestCalibrationLinearMapping(t *testing.T) {
	var c clock.Calibration
	c.Resync(1000, 1_000_000_000)
	c.Resync(2000, 1_000_001_000) // 1000 ticks = 1000ns -> 1:1 slope

	got := c.ToWall(2500)
	want := int64(1_000_001_500)
	if diff := got - want; diff < -2 || diff > 2 {
		t.Fatalf("ToWall(2500) = %d, want ~%d", got, want)
	}
}

func TestCalibrationFirstSyncIsIdentitySlope(t *testing.T) {
	var c clock.Calibration
	c.Resync(500, 42)
	if got := c.ToWall(500); got != 42 {
		t.Fatalf("ToWall(500) = %d, want 42", got)
	}
}
