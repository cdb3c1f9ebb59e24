package safemode

import (
	"strings"
	"testing"
)

func TestRenderReport(t *testing.T) {
	out := RenderReport(Report{Safe: 24, Special: 7, Skipped: 18})

	for _, want := range []string{
		"SAFE MODE FLASHER",
		"Safe GPIO pins:    24",
		"Special pins:      7",
		"Skipped pins:      18",
		"Total pins:        49",
		"Press RESET button",
		"GPIO0 must stay HIGH",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp()
	for _, want := range []string{"s - Show status", "v - Toggle verbose", "r - Reset", "h - This help"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q", want)
		}
	}
}

func TestRenderResetNote(t *testing.T) {
	if !strings.Contains(RenderResetNote(), "press RESET") {
		t.Fatalf("reset note missing guidance")
	}
}
