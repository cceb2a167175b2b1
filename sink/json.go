// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import "encoding/json"

// JSONRecord is the shape written per line by a JSON sink. NamedArgs
// holds each record's named arguments promoted to top-level keys, the
// way a structured logger lifts fields out of a generic payload rather
// than nesting them under a fixed "fields" key.
type JSONRecord struct {
	Time      string                 `json:"timestamp"`
	Level     string                 `json:"log_level"`
	Logger    string                 `json:"logger"`
	Message   string                 `json:"message"`
	FileName  string                 `json:"file_name"`
	Line      int                    `json:"line_number"`
	ThreadID  string                 `json:"thread_id"`
	NamedArgs map[string]interface{} `json:"-"` // promoted, see MarshalJSON
}

// JSON wraps a File (or any Sink) and writes newline-delimited JSON
// records instead of the pattern-formatted text the console/file sinks
// produce. It delegates rotation and flushing to the wrapped Sink.
type JSON struct {
	inner Sink
}

// NewJSON wraps inner, an already-constructed file or console sink, to
// write JSON Lines instead of pattern text.
func NewJSON(inner Sink) *JSON {
	return &JSON{inner: inner}
}

// WriteRecord marshals rec (with NamedArgs promoted to top-level keys)
// as a single JSON line and writes it through the wrapped sink.
func (j *JSON) WriteRecord(rec *JSONRecord) error {
	b, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	return j.inner.Write(b)
}

// Write passes pre-encoded bytes straight through, satisfying Sink for
// callers that have already serialized a record.
func (j *JSON) Write(b []byte) error     { return j.inner.Write(b) }
func (j *JSON) Flush() error             { return j.inner.Flush() }
func (j *JSON) RotateIfNeeded() error    { return j.inner.RotateIfNeeded() }
func (j *JSON) Close() error             { return j.inner.Close() }

func marshalRecord(rec *JSONRecord) ([]byte, error) {
	m := map[string]interface{}{
		"timestamp":   rec.Time,
		"log_level":   rec.Level,
		"logger":      rec.Logger,
		"message":     rec.Message,
		"file_name":   rec.FileName,
		"line_number": rec.Line,
		"thread_id":   rec.ThreadID,
	}
	for k, v := range rec.NamedArgs {
		m[k] = v // promoted to top level, not nested
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
