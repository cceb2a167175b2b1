// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ring

// RaceEnabled is true when the race detector is active. The backend's
// strict-order grace window is widened under -race since instrumented
// builds slow the producer enough that the default window would flake.
const RaceEnabled = true
