// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import "testing"

func TestRenderMessagePositional(t *testing.T) {
	msg, named := renderMessage("x={}", []string{"42"})
	if msg != "x=42" {
		t.Fatalf("got %q", msg)
	}
	if len(named) != 0 {
		t.Fatalf("expected no named args, got %v", named)
	}
}

func TestRenderMessageNamedArgsInOrder(t *testing.T) {
	msg, named := renderMessage("{a} to {b}", []string{"1", "2"})
	if msg != "1 to 2" {
		t.Fatalf("got %q", msg)
	}
	want := "a: 1, b: 2"
	if got := formatNamedArgs(named); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderMessageHybrid(t *testing.T) {
	msg, named := renderMessage("{method} to {endpoint} took {elapsed} ms", []string{"POST", "http://", "20"})
	want := "POST to http:// took 20 ms"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}
	if got := formatNamedArgs(named); got != "method: POST, endpoint: http://, elapsed: 20" {
		t.Fatalf("got %q", got)
	}
}
