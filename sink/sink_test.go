// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/swiftlog/swiftlog/sink"
)

func TestConsoleWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	c := sink.NewConsole(&buf, false)
	if err := c.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestConsoleColorWrapsOutput(t *testing.T) {
	var buf bytes.Buffer
	c := sink.NewConsole(&buf, true)
	if err := c.WriteLevel(4, []byte("info line")); err != nil { // LevelInfo ordinal
		t.Fatalf("WriteLevel: %v", err)
	}
	c.Flush()
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("info line")) {
		t.Fatalf("missing payload in %q", out)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\033[")) {
		t.Fatalf("expected ANSI prefix, got %q", out)
	}
}

func TestFileRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	f, err := sink.NewFile(sink.FileOptions{
		Path:         path,
		MaxSizeBytes: 20,
		MaxBackups:   2,
	})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	for i := 0; i < 5; i++ {
		if err := f.Write([]byte("0123456789")); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := f.RotateIfNeeded(); err != nil {
			t.Fatalf("RotateIfNeeded: %v", err)
		}
	}

	if f.Rotations() == 0 {
		t.Fatal("expected at least one rotation")
	}
	if _, err := os.Stat(path + ".0"); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
}

func TestFileCompressedRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	f, err := sink.NewFile(sink.FileOptions{
		Path:         path,
		MaxSizeBytes: 10,
		MaxBackups:   1,
		Compress:     true,
	})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	f.Write([]byte("0123456789123"))
	if err := f.RotateIfNeeded(); err != nil {
		t.Fatalf("RotateIfNeeded: %v", err)
	}
	if _, err := os.Stat(path + ".0.gz"); err != nil {
		t.Fatalf("expected gzip backup: %v", err)
	}
}

func TestJSONPromotesNamedArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.jsonl")
	f, err := sink.NewFile(sink.FileOptions{Path: path})
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	j := sink.NewJSON(f)
	err = j.WriteRecord(&sink.JSONRecord{
		Time:    "2026-07-30T00:00:00Z",
		Level:   "INFO",
		Logger:  "svc",
		Message: "hello",
		NamedArgs: map[string]interface{}{
			"user_id": 42,
		},
	})
	if err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	j.Flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Contains(data, []byte(`"user_id":42`)) {
		t.Fatalf("expected promoted named arg, got %s", data)
	}
	if bytes.Contains(data, []byte(`"NamedArgs"`)) {
		t.Fatalf("NamedArgs key should not appear literally: %s", data)
	}
}

func TestNullDiscardsEverything(t *testing.T) {
	var n sink.Null
	if err := n.Write([]byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := n.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
