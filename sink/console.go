// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import (
	"bufio"
	"io"
)

// Color is an ANSI escape sequence applied around a record's formatted
// text when a Console sink has color enabled.
type Color []byte

var colorOff = Color("\033[0m")

// Level-indexed color table, one entry per swiftlog.Level ordinal,
// matching go-phorce-dolly's ColorFormatter LevelColors table: a fixed
// escape code per severity rather than computed ANSI parameters.
var defaultColors = [9]Color{
	Color("\033[0;37m"), // TRACE3 - gray
	Color("\033[0;37m"), // TRACE2 - gray
	Color("\033[0;37m"), // TRACE1 - gray
	Color("\033[0;94m"), // DEBUG - light blue
	Color("\033[0;96m"), // INFO - light cyan
	Color("\033[0;93m"), // WARN - light orange
	Color("\033[0;91m"), // ERROR - light red
	Color("\033[0;91m"), // CRITICAL - light red
	Color("\033[0;35m"), // BACKTRACE - purple
}

// Console writes formatted records to an io.Writer (typically
// os.Stdout/os.Stderr), optionally wrapping each record in a
// level-indexed ANSI color.
type Console struct {
	w      *bufio.Writer
	color  bool
	colors [9]Color
}

// NewConsole creates a Console sink over w. When color is true, each
// record is wrapped in the color for its level before being written.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: bufio.NewWriter(w), color: color, colors: defaultColors}
}

// WriteLevel writes a record, applying the color associated with level
// when color output is enabled.
func (c *Console) WriteLevel(level int, b []byte) error {
	if c.color && level >= 0 && level < len(c.colors) {
		if _, err := c.w.Write(c.colors[level]); err != nil {
			return err
		}
		if _, err := c.w.Write(b); err != nil {
			return err
		}
		_, err := c.w.Write(colorOff)
		return err
	}
	_, err := c.w.Write(b)
	return err
}

// Write implements Sink without level-aware coloring (used when the
// caller has already embedded level in the formatted text).
func (c *Console) Write(b []byte) error {
	_, err := c.w.Write(b)
	return err
}

func (c *Console) Flush() error          { return c.w.Flush() }
func (c *Console) RotateIfNeeded() error { return nil }
func (c *Console) Close() error          { return c.w.Flush() }
