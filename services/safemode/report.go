package safemode

import (
	"strings"

	"safemode-go/x/conv"
)

const reportRule = "============================================================"

// RenderReport formats the sweep tallies and the fixed operational guidance
// as human-readable text. Free-form; nothing parses this.
func RenderReport(r Report) string {
	var b strings.Builder
	var num [20]byte

	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}
	count := func(label string, n int) {
		b.WriteString("   ")
		b.WriteString(label)
		b.Write(conv.Itoa(num[:], int64(n)))
		b.WriteString("\r\n")
	}

	line("")
	line(reportRule)
	line("ESP32-S3 SAFE MODE FLASHER")
	line(reportRule)
	line("")
	line(" STATUS SUMMARY:")
	count("Safe GPIO pins:    ", r.Safe)
	count("Special pins:      ", r.Special)
	count("Skipped pins:      ", r.Skipped)
	count("Total pins:        ", r.Total())
	line("")
	line(" CURRENT STATE:")
	line("  - All GPIOs in high-impedance INPUT")
	line("  - No pull-up/pull-down resistors active")
	line("  - All peripherals (PWM/RMT/I2C/SPI) disabled")
	line("  - System in low-power safe state")
	line("")
	line(" NEXT STEPS:")
	line("  1. Upload your main firmware")
	line("  2. Press RESET button")
	line("  3. Or power cycle the board")
	line("")
	line(" WARNING:")
	line("  - GPIO0 must stay HIGH for normal boot")
	line("  - Do not connect anything to USB pins (45,46)")
	line("  - Critical pins (22-39) are untouched")
	line("")
	line(reportRule)
	line("System is READY for safe programming")
	line(reportRule)
	return b.String()
}

// RenderHelp lists the console commands.
func RenderHelp() string {
	var b strings.Builder
	for _, s := range []string{
		"",
		" COMMANDS:",
		"  s - Show status",
		"  v - Toggle verbose mode",
		"  r - Reset reminder",
		"  h - This help",
		"",
	} {
		b.WriteString(s)
		b.WriteString("\r\n")
	}
	return b.String()
}

// RenderResetNote reminds the developer that reset is a physical action.
func RenderResetNote() string {
	return "\r\n Simulating reset...\r\n(In real hardware, press RESET button)\r\n"
}
