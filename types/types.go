// Package types holds the shared configuration and bus payload shapes.
package types

import (
	"time"

	"safemode-go/x/logx"
)

// Config carries the firmware's compile-time operating constants. There are
// no configuration files, flags, or persisted settings; everything is fixed
// at build time and only the log level can change at runtime (console 'v').
type Config struct {
	BaudRate        uint32
	SettleDelay     time.Duration // pause after each pin reconfiguration
	HeartbeatPin    int
	HeartbeatPeriod time.Duration
	StatusPeriod    time.Duration // periodic status re-emission
	ConsolePoll     time.Duration // REPL input poll interval
	LogLevel        logx.Level
}

// DefaultConfig mirrors the board's reference constants.
func DefaultConfig() Config {
	return Config{
		BaudRate:        115200,
		SettleDelay:     10 * time.Millisecond,
		HeartbeatPin:    2,
		HeartbeatPeriod: time.Second,
		StatusPeriod:    30 * time.Second,
		ConsolePoll:     100 * time.Millisecond,
		LogLevel:        logx.Verbose,
	}
}

// ServiceState is the retained per-service state payload.
type ServiceState struct {
	Phase  string // e.g. "securing", "idle"
	Status string // freeform short code
	TSms   int64
}

// Command is the payload carried on the safemode control topic.
type Command struct {
	Verb string // "status" | "verbosity" | "reset_note" | "help"
}

// Control verbs.
const (
	CmdStatus    = "status"
	CmdVerbosity = "verbosity"
	CmdResetNote = "reset_note"
	CmdHelp      = "help"
)
