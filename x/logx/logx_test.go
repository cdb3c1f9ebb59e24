package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var b bytes.Buffer
	l := New(&b, Normal)

	l.Info("boot")
	l.Debug("pin detail") // suppressed at Normal
	out := b.String()
	if !strings.Contains(out, "boot") {
		t.Fatalf("Info not emitted: %q", out)
	}
	if strings.Contains(out, "pin detail") {
		t.Fatalf("Debug emitted at Normal: %q", out)
	}

	l.SetLevel(Verbose)
	l.Debug("pin detail")
	if !strings.Contains(b.String(), "pin detail") {
		t.Fatalf("Debug not emitted at Verbose")
	}

	l.SetLevel(Quiet)
	b.Reset()
	l.Info("hidden")
	if b.Len() != 0 {
		t.Fatalf("Quiet should suppress Info, got %q", b.String())
	}
}

func TestFields(t *testing.T) {
	var b bytes.Buffer
	l := New(&b, Normal)
	l.Info("secured", Int("pin", 7), Str("mode", "input"), Bool("pullup", true))
	got := b.String()
	for _, want := range []string{"secured", "pin=7", "mode=input", "pullup=true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("line %q missing %q", got, want)
		}
	}
}

func TestNilSafety(t *testing.T) {
	var l *Logger
	l.Info("no panic") // nil logger is a no-op

	n := New(nil, Verbose)
	n.Info("discarded") // nil writer falls back to Discard
}
