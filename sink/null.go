// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

// Null discards every record, useful for benchmarking the pipeline up
// to (but not including) I/O.
type Null struct{}

func (Null) Write([]byte) error    { return nil }
func (Null) Flush() error          { return nil }
func (Null) RotateIfNeeded() error { return nil }
func (Null) Close() error          { return nil }
