// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pattern_test

import (
	"testing"

	"github.com/swiftlog/swiftlog/pattern"
)

func TestCompileAndRenderLiteralsAndFields(t *testing.T) {
	p, err := pattern.Compile("[%(log_level)] %(logger): %(message)\n")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := string(p.Render(nil, &pattern.Values{
		LogLevel: "INFO",
		Logger:   "svc",
		Message:  "hello world",
	}))
	want := "[INFO] svc: hello world\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCompileRejectsUnknownName(t *testing.T) {
	if _, err := pattern.Compile("%(not_a_field)"); err == nil {
		t.Fatal("expected error for unknown placeholder")
	}
}

func TestCompileRejectsUnterminatedPlaceholder(t *testing.T) {
	if _, err := pattern.Compile("%(message"); err == nil {
		t.Fatal("expected error for unterminated placeholder")
	}
}

func TestWidthAlignment(t *testing.T) {
	p, err := pattern.Compile("[%(log_level_short_code:>4)]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := string(p.Render(nil, &pattern.Values{LogLevelShortCode: "I"}))
	if got != "[   I]" {
		t.Fatalf("got %q", got)
	}

	p2, err := pattern.Compile("[%(log_level_short_code:<4)]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got2 := string(p2.Render(nil, &pattern.Values{LogLevelShortCode: "I"}))
	if got2 != "[I   ]" {
		t.Fatalf("got %q", got2)
	}
}

func TestWidthNoPadWhenValueLonger(t *testing.T) {
	p, _ := pattern.Compile("%(message:<3)")
	got := string(p.Render(nil, &pattern.Values{Message: "abcdef"}))
	if got != "abcdef" {
		t.Fatalf("got %q", got)
	}
}

func TestUsesName(t *testing.T) {
	p, _ := pattern.Compile("%(message)")
	if p.UsesName(pattern.CallerFunction) {
		t.Fatal("should not use caller_function")
	}
	if !p.UsesName(pattern.Message) {
		t.Fatal("should use message")
	}
}

func TestLiteralPercentSign(t *testing.T) {
	p, err := pattern.Compile("100% done")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := string(p.Render(nil, &pattern.Values{}))
	if got != "100% done" {
		t.Fatalf("got %q", got)
	}
}
