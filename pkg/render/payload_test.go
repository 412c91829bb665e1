package render

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestMarshalPropsEscapes(t *testing.T) {
	props := map[string]string{
		"html": "</script><!-- & -->",
		"ls":   "a\u2028b\u2029c",
	}
	got, err := MarshalProps(props)
	if err != nil {
		t.Fatalf("MarshalProps() error = %v", err)
	}
	for _, raw := range []string{"<", ">", "&", "\u2028", "\u2029"} {
		if strings.Contains(got, raw) {
			t.Fatalf("MarshalProps() = %q contains raw %q", got, raw)
		}
	}

	var back map[string]string
	if err := json.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("payload does not parse: %v", err)
	}
	if back["html"] != props["html"] || back["ls"] != props["ls"] {
		t.Fatalf("round trip = %v, want %v", back, props)
	}
}

func TestMarshalPropsError(t *testing.T) {
	if _, err := MarshalProps(math.Inf(1)); err == nil {
		t.Fatalf("MarshalProps(+Inf) error = nil")
	}
}

func TestMarshalPropsIndent(t *testing.T) {
	got, err := MarshalPropsIndent(map[string]string{"tag": "</script>"})
	if err != nil {
		t.Fatalf("MarshalPropsIndent() error = %v", err)
	}
	if !strings.Contains(got, "\n  \"tag\"") {
		t.Fatalf("MarshalPropsIndent() = %q, want indented output", got)
	}
	if strings.Contains(got, "<") {
		t.Fatalf("MarshalPropsIndent() = %q contains raw <", got)
	}
}

func TestIsSuspense(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{errors.New("A component suspended while responding to synchronous input. This will cause the UI to be replaced"), true},
		{errors.New("wrapped: A component suspended inside the tree"), true},
		{&SuspenseError{Route: "/", Err: errors.New("x")}, true},
	}
	for _, tt := range tests {
		if got := IsSuspense(tt.err); got != tt.want {
			t.Fatalf("IsSuspense(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestAnnotateSuspenseKeepsOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	if got := annotateSuspense("/", boom); got != boom {
		t.Fatalf("annotateSuspense() = %v, want original error", got)
	}
	se := &SuspenseError{Route: "/a", Err: errors.New("A component suspended")}
	if got := annotateSuspense("/b", se); got != se {
		t.Fatalf("annotateSuspense() rewrapped an existing SuspenseError")
	}
}
