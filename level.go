// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

// Level identifies a record's severity. Levels are ordered: a higher
// numeric value is more severe, and a logger's threshold filters out
// anything below it in should_log.
type Level uint8

const (
	LevelTrace3 Level = iota
	LevelTrace2
	LevelTrace1
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelBacktrace

	// levelPad marks a ring frame as padding inserted solely to avoid
	// straddling the wrap boundary; the backend skips it unread.
	levelPad Level = 0xff

	// levelFlush marks a sentinel record enqueued by FlushSync; the
	// backend closes its done channel once this record is reached and
	// then discards it (it carries no displayable payload).
	levelFlush Level = 0xfe
)

// String returns the full label used by pattern placeholder %(log_level).
func (l Level) String() string {
	switch l {
	case LevelTrace3:
		return "TRACE_L3"
	case LevelTrace2:
		return "TRACE_L2"
	case LevelTrace1:
		return "TRACE_L1"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	case LevelBacktrace:
		return "BACKTRACE"
	default:
		return "UNKNOWN"
	}
}

// ShortCode returns the fixed-width label used by
// %(log_level_short_code): T3, T2, T1, D, I, W, E, C, BT.
func (l Level) ShortCode() string {
	switch l {
	case LevelTrace3:
		return "T3"
	case LevelTrace2:
		return "T2"
	case LevelTrace1:
		return "T1"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	case LevelCritical:
		return "C"
	case LevelBacktrace:
		return "BT"
	default:
		return "?"
	}
}
