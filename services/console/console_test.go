package console

import (
	"context"
	"strings"
	"testing"
	"time"

	"safemode-go/bus"
	"safemode-go/internal/platform"
	"safemode-go/types"
)

func TestCommandFor(t *testing.T) {
	cases := []struct {
		in   byte
		verb string
		ok   bool
	}{
		{'s', types.CmdStatus, true},
		{'S', types.CmdStatus, true},
		{'v', types.CmdVerbosity, true},
		{'V', types.CmdVerbosity, true},
		{'r', types.CmdResetNote, true},
		{'R', types.CmdResetNote, true},
		{'h', types.CmdHelp, true},
		{'H', types.CmdHelp, true},
		{'?', types.CmdHelp, true},
		{'x', "", false},
		{'\n', "", false},
		{0x00, "", false},
	}
	for _, c := range cases {
		verb, ok := CommandFor(c.in)
		if verb != c.verb || ok != c.ok {
			t.Fatalf("CommandFor(%q) = (%q, %v), want (%q, %v)", c.in, verb, ok, c.verb, c.ok)
		}
	}
}

func TestInputPublishesCommands(t *testing.T) {
	b := bus.New(8)
	port := platform.NewHostSerial("uart0")
	svc := New(port, time.Millisecond)

	conn := b.NewConnection("test")
	ctrlSub := conn.Subscribe(types.TopicSafemodeControl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx, b.NewConnection("console"))

	// Mixed stream: noise interleaved with commands, one byte per poll.
	port.Feed([]byte("x s\nV?"))

	want := []string{types.CmdStatus, types.CmdVerbosity, types.CmdHelp}
	for _, verb := range want {
		select {
		case m := <-ctrlSub.Channel():
			cmd, ok := m.Payload.(types.Command)
			if !ok || cmd.Verb != verb {
				t.Fatalf("got %v, want verb %q", m.Payload, verb)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", verb)
		}
	}
}

func TestOutputWrittenToPort(t *testing.T) {
	b := bus.New(8)
	port := platform.NewHostSerial("uart0")
	svc := New(port, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx, b.NewConnection("console"))

	conn := b.NewConnection("test")
	conn.Publish(conn.NewMessage(types.TopicConsoleOut, "hello board\r\n", false))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(string(port.Output()), "hello board") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("console output never reached the port: %q", port.Output())
}
