package heartbeat

import (
	"context"
	"testing"
	"time"

	"safemode-go/bus"
	"safemode-go/internal/platform"
	"safemode-go/services/safemode"
	"safemode-go/types"
	"safemode-go/x/logx"
)

func testConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.HeartbeatPeriod = 5 * time.Millisecond
	return cfg
}

func waitToggles(t *testing.T, pin *platform.FakePin, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pin.Sets() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("pin never toggled %d times", want)
}

func TestBlinksDefaultPin(t *testing.T) {
	b := bus.New(16)
	board := safemode.ESP32S3()
	pins := platform.NewHostPinFactory(board.MaxPin)
	cfg := testConfig()
	cfg.HeartbeatPin = 10 // general-purpose on this board

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(board, pins, cfg, logx.New(nil, logx.Quiet)).Start(ctx, b.NewConnection("heartbeat"))

	p, _ := waitClaim(t, pins, 10)
	waitToggles(t, p, 3)
	if out, _, _, _ := p.Snapshot(); !out {
		t.Fatalf("heartbeat pin not an output")
	}
}

func TestRefusesReservedPin(t *testing.T) {
	b := bus.New(16)
	board := safemode.ESP32S3()
	pins := platform.NewHostPinFactory(board.MaxPin)
	cfg := testConfig()
	cfg.HeartbeatPin = 45 // USB/UART class, must never be driven

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(board, pins, cfg, logx.New(nil, logx.Quiet)).Start(ctx, b.NewConnection("heartbeat"))

	time.Sleep(30 * time.Millisecond)
	if _, claimed := pins.Get(45); claimed {
		t.Fatalf("reserved pin 45 was claimed")
	}
}

func TestPeriodReconfig(t *testing.T) {
	b := bus.New(16)
	board := safemode.ESP32S3()
	pins := platform.NewHostPinFactory(board.MaxPin)
	cfg := testConfig()
	cfg.HeartbeatPin = 10
	cfg.HeartbeatPeriod = time.Hour // no ticks until reconfigured

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(board, pins, cfg, logx.New(nil, logx.Quiet)).Start(ctx, b.NewConnection("heartbeat"))

	// Published immediately after Start: the subscription must already
	// exist, before the loop goroutine has had a chance to run.
	conn := b.NewConnection("test")
	conn.Publish(conn.NewMessage(types.TopicConfigHeartbeat, 5*time.Millisecond, false))

	p, _ := waitClaim(t, pins, 10)
	waitToggles(t, p, 2)
}

func waitClaim(t *testing.T, pins *platform.HostPinFactory, n int) (*platform.FakePin, bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p, ok := pins.Get(n); ok {
			return p, true
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("pin %d never claimed", n)
	return nil, false
}
