// Package logx is a small leveled logger for firmware code. It renders
// structured key/value fields through an io.Writer without fmt, so a line
// costs a handful of appends and one Write on MCU builds.
package logx

import (
	"io"
	"sync/atomic"

	"safemode-go/x/conv"
)

// Level selects how much output is emitted.
type Level uint8

const (
	Quiet Level = iota
	Normal
	Verbose
)

func (l Level) String() string {
	switch l {
	case Quiet:
		return "quiet"
	case Normal:
		return "normal"
	case Verbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// Field is one structured key/value pair.
type Field struct {
	Key string
	Str string
	Int int64
	// IsInt selects which value is rendered.
	IsInt bool
}

func Str(k, v string) Field     { return Field{Key: k, Str: v} }
func Int(k string, v int) Field { return Field{Key: k, Int: int64(v), IsInt: true} }
func Int64(k string, v int64) Field {
	return Field{Key: k, Int: v, IsInt: true}
}
func Bool(k string, v bool) Field {
	if v {
		return Field{Key: k, Str: "true"}
	}
	return Field{Key: k, Str: "false"}
}

// Logger writes leveled lines to a single output. The level may be changed
// at runtime (the console's verbosity toggle); reads and writes go through
// an atomic so the toggle needs no locking discipline of its own.
type Logger struct {
	out   io.Writer
	level atomic.Uint32
}

// Discard drops everything written to it.
var Discard io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// New returns a logger writing to out at the given level. A nil out
// discards all output (serial unavailable is not an error).
func New(out io.Writer, level Level) *Logger {
	if out == nil {
		out = Discard
	}
	l := &Logger{out: out}
	l.level.Store(uint32(level))
	return l
}

func (l *Logger) Level() Level      { return Level(l.level.Load()) }
func (l *Logger) SetLevel(lv Level) { l.level.Store(uint32(lv)) }

// Info emits at Normal and above.
func (l *Logger) Info(msg string, fields ...Field) { l.emit(Normal, msg, fields) }

// Debug emits only at Verbose.
func (l *Logger) Debug(msg string, fields ...Field) { l.emit(Verbose, msg, fields) }

func (l *Logger) emit(at Level, msg string, fields []Field) {
	if l == nil || l.Level() < at {
		return
	}
	var num [20]byte
	buf := make([]byte, 0, 64)
	buf = append(buf, msg...)
	for _, f := range fields {
		buf = append(buf, ' ')
		buf = append(buf, f.Key...)
		buf = append(buf, '=')
		if f.IsInt {
			buf = append(buf, conv.Itoa(num[:], f.Int)...)
		} else {
			buf = append(buf, f.Str...)
		}
	}
	buf = append(buf, '\r', '\n')
	l.out.Write(buf)
}
