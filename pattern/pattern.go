// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pattern compiles a log output template into a list of
// literal and placeholder segments once per logger, the way
// go-phorce-dolly's xlog formatters split an entry into literal
// surrounding text and substituted fields (writeEntries/flatten)
// instead of re-parsing a format string on every call.
package pattern

import (
	"strconv"
	"strings"
)

// Name is a recognized placeholder. The set is closed: any %(name) not
// in this list fails to compile.
type Name string

const (
	Time               Name = "time"
	FileName           Name = "file_name"
	FullPath           Name = "full_path"
	CallerFunction     Name = "caller_function"
	LogLevel           Name = "log_level"
	LogLevelShortCode  Name = "log_level_short_code"
	LineNumber         Name = "line_number"
	Logger             Name = "logger"
	Message            Name = "message"
	ThreadID           Name = "thread_id"
	ThreadName         Name = "thread_name"
	ProcessID          Name = "process_id"
	SourceLocation     Name = "source_location"
	ShortSourceLoc     Name = "short_source_location"
	Tags               Name = "tags"
	NamedArgs          Name = "named_args"
)

var validNames = map[Name]bool{
	Time: true, FileName: true, FullPath: true, CallerFunction: true,
	LogLevel: true, LogLevelShortCode: true, LineNumber: true, Logger: true,
	Message: true, ThreadID: true, ThreadName: true, ProcessID: true,
	SourceLocation: true, ShortSourceLoc: true, Tags: true, NamedArgs: true,
}

// Align selects how a placeholder's value is padded to Width.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft       // %(name:<width) — left-justified, padded on the right
	AlignRight      // %(name:>width) — right-justified, padded on the left
)

// segment is one compiled unit of the template: either a literal
// run of bytes copied verbatim, or a placeholder to be substituted.
type segment struct {
	literal string
	name    Name
	align   Align
	width   int
	isField bool
}

// Pattern is a compiled template, safe for concurrent read-only use by
// many producer goroutines once compiled.
type Pattern struct {
	segments []segment
}

// Compile parses a template containing literal text and %(name),
// %(name:<width), %(name:>width) placeholders into a Pattern.
func Compile(template string) (*Pattern, error) {
	var segs []segment
	i := 0
	for i < len(template) {
		start := strings.IndexByte(template[i:], '%')
		if start < 0 {
			segs = append(segs, segment{literal: template[i:]})
			break
		}
		start += i
		if start > i {
			segs = append(segs, segment{literal: template[i:start]})
		}
		if start+1 >= len(template) || template[start+1] != '(' {
			// lone '%', treat as a literal character
			segs = append(segs, segment{literal: "%"})
			i = start + 1
			continue
		}
		end := strings.IndexByte(template[start+2:], ')')
		if end < 0 {
			return nil, &CompileError{Template: template, Pos: start, Msg: "unterminated placeholder"}
		}
		end += start + 2
		body := template[start+2 : end]
		seg, err := parsePlaceholder(body)
		if err != nil {
			return nil, &CompileError{Template: template, Pos: start, Msg: err.Error()}
		}
		segs = append(segs, seg)
		i = end + 1
	}
	return &Pattern{segments: segs}, nil
}

// CompileError reports a template that failed to compile.
type CompileError struct {
	Template string
	Pos      int
	Msg      string
}

func (e *CompileError) Error() string {
	return "pattern: " + e.Msg + " at byte " + strconv.Itoa(e.Pos) + " in " + strconv.Quote(e.Template)
}

func parsePlaceholder(body string) (segment, error) {
	name := body
	align := AlignNone
	width := 0
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		name = body[:idx]
		spec := body[idx+1:]
		if len(spec) < 2 {
			return segment{}, &fieldError{"malformed width spec"}
		}
		switch spec[0] {
		case '<':
			align = AlignLeft
		case '>':
			align = AlignRight
		default:
			return segment{}, &fieldError{"width spec must start with < or >"}
		}
		w, err := strconv.Atoi(spec[1:])
		if err != nil || w < 0 {
			return segment{}, &fieldError{"invalid width"}
		}
		width = w
	}
	n := Name(name)
	if !validNames[n] {
		return segment{}, &fieldError{"unrecognized placeholder name " + strconv.Quote(name)}
	}
	return segment{name: n, align: align, width: width, isField: true}, nil
}

type fieldError struct{ msg string }

func (e *fieldError) Error() string { return e.msg }

// Values supplies the substitution values for one record's rendering.
// A field absent from this struct (zero value) renders as empty.
type Values struct {
	Time              string
	FileName          string
	FullPath          string
	CallerFunction    string
	LogLevel          string
	LogLevelShortCode string
	LineNumber        string
	Logger            string
	Message           string
	ThreadID          string
	ThreadName        string
	ProcessID         string
	SourceLocation    string
	ShortSourceLoc    string
	Tags              string
	NamedArgs         string
}

func (v *Values) lookup(n Name) string {
	switch n {
	case Time:
		return v.Time
	case FileName:
		return v.FileName
	case FullPath:
		return v.FullPath
	case CallerFunction:
		return v.CallerFunction
	case LogLevel:
		return v.LogLevel
	case LogLevelShortCode:
		return v.LogLevelShortCode
	case LineNumber:
		return v.LineNumber
	case Logger:
		return v.Logger
	case Message:
		return v.Message
	case ThreadID:
		return v.ThreadID
	case ThreadName:
		return v.ThreadName
	case ProcessID:
		return v.ProcessID
	case SourceLocation:
		return v.SourceLocation
	case ShortSourceLoc:
		return v.ShortSourceLoc
	case Tags:
		return v.Tags
	case NamedArgs:
		return v.NamedArgs
	default:
		return ""
	}
}

// Render appends the formatted record to dst and returns the extended
// slice, avoiding an intermediate string allocation per call.
func (p *Pattern) Render(dst []byte, v *Values) []byte {
	for _, s := range p.segments {
		if !s.isField {
			dst = append(dst, s.literal...)
			continue
		}
		val := v.lookup(s.name)
		if s.align == AlignNone || len(val) >= s.width {
			dst = append(dst, val...)
			continue
		}
		pad := s.width - len(val)
		if s.align == AlignLeft {
			dst = append(dst, val...)
			for i := 0; i < pad; i++ {
				dst = append(dst, ' ')
			}
		} else {
			for i := 0; i < pad; i++ {
				dst = append(dst, ' ')
			}
			dst = append(dst, val...)
		}
	}
	return dst
}

// UsesName reports whether the compiled pattern references the given
// placeholder, letting the backend skip expensive field computation
// (e.g. caller resolution) when a logger's pattern never asks for it.
func (p *Pattern) UsesName(n Name) bool {
	for _, s := range p.segments {
		if s.isField && s.name == n {
			return true
		}
	}
	return false
}
