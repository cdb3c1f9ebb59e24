// Package console is the single-character serial REPL. It polls one byte at
// a time from the board's console link, turns recognized keys into control
// messages, and writes whatever the other services want shown back out.
// There is no line framing and no echo; unrecognized bytes are dropped.
package console

import (
	"context"
	"time"

	"safemode-go/bus"
	"safemode-go/types"
	"safemode-go/x/mathx"
)

// Port is the subset of a serial link the REPL needs.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (n int, err error)
}

type Service struct {
	port Port
	poll time.Duration
}

func New(port Port, poll time.Duration) *Service {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	poll = mathx.Clamp(poll, time.Millisecond, time.Second)
	return &Service{port: port, poll: poll}
}

// Start launches the REPL loop in its own goroutine. The output
// subscription is registered here, before the goroutine runs, so text
// published right after Start returns cannot be missed.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	outSub := conn.Subscribe(types.TopicConsoleOut)
	go s.loop(ctx, conn, outSub)
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection, outSub *bus.Subscription) {
	defer conn.Unsubscribe(outSub)

	tick := time.NewTicker(s.poll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-outSub.Channel():
			if text, ok := msg.Payload.(string); ok {
				// Serial may be gone; the write result is unobservable
				// anyway and the safety state does not depend on it.
				s.port.Write([]byte(text))
			}

		case <-tick.C:
			// Non-blocking single-byte check per cycle.
			if s.port.Buffered() == 0 {
				continue
			}
			b, err := s.port.ReadByte()
			if err != nil {
				continue
			}
			if verb, ok := CommandFor(b); ok {
				conn.Publish(conn.NewMessage(types.TopicSafemodeControl, types.Command{Verb: verb}, false))
			}
		}
	}
}

// CommandFor maps a console byte to a control verb. The second return is
// false for bytes the REPL silently ignores.
func CommandFor(b byte) (string, bool) {
	switch b {
	case 's', 'S':
		return types.CmdStatus, true
	case 'v', 'V':
		return types.CmdVerbosity, true
	case 'r', 'R':
		return types.CmdResetNote, true
	case 'h', 'H', '?':
		return types.CmdHelp, true
	default:
		return "", false
	}
}
