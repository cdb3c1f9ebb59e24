// Package heartbeat blinks a single indicator pin so an operator can tell
// a secured board apart from a dead one. The pin is only driven when the
// board classifies it as a general-purpose pin; on any other classification
// the service stays passive and just logs ticks.
package heartbeat

import (
	"context"
	"time"

	"safemode-go/bus"
	"safemode-go/services/safemode"
	"safemode-go/types"
	"safemode-go/x/logx"
	"safemode-go/x/mathx"
)

type Service struct {
	board  *safemode.Board
	pins   safemode.PinFactory
	pin    int
	period time.Duration
	log    *logx.Logger
}

func New(board *safemode.Board, pins safemode.PinFactory, cfg types.Config, log *logx.Logger) *Service {
	period := cfg.HeartbeatPeriod
	if period <= 0 {
		period = time.Second
	}
	period = mathx.Clamp(period, time.Millisecond, time.Hour)
	return &Service{
		board:  board,
		pins:   pins,
		pin:    cfg.HeartbeatPin,
		period: period,
		log:    log,
	}
}

// Start launches the blink loop in its own goroutine. The config
// subscription is registered before the goroutine runs so a reconfiguration
// published right after Start cannot be missed.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(types.TopicConfigHeartbeat)
	go s.loop(ctx, conn, cfgSub)
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection, cfgSub *bus.Subscription) {
	defer conn.Unsubscribe(cfgSub)

	led := s.claimPin()
	if led == nil {
		s.log.Info("heartbeat pin not drivable, ticking silently", logx.Int("pin", s.pin))
	}

	tick := time.NewTicker(s.period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if led != nil {
				led.Set(false)
			}
			s.log.Info("heartbeat stopping")
			return

		case <-tick.C:
			if led != nil {
				led.Toggle()
			}
			s.log.Debug("heartbeat tick")

		case msg := <-cfgSub.Channel():
			if period, ok := msg.Payload.(time.Duration); ok && period > 0 {
				s.period = period
				tick.Reset(period)
				s.log.Info("heartbeat period changed", logx.Int64("ms", period.Milliseconds()))
			}
		}
	}
}

// claimPin drives the indicator only when the sweep would also have driven
// it. Anything the classifier reserves stays untouched.
func (s *Service) claimPin() safemode.GPIOPin {
	if s.board.Classify(s.pin) != safemode.CategoryDefault {
		return nil
	}
	p, ok := s.pins.ByNumber(s.pin)
	if !ok {
		return nil
	}
	if err := p.ConfigureOutput(false); err != nil {
		return nil
	}
	return p
}
