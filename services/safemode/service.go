// Package safemode holds the pin classification and sequencing policy: the
// rules deciding which safe electrical state every pin is driven to before
// a firmware image is flashed, and the boot procedure applying them.
package safemode

import (
	"context"
	"time"

	"safemode-go/bus"
	"safemode-go/errcode"
	"safemode-go/types"
	"safemode-go/x/conv"
	"safemode-go/x/logx"
	"safemode-go/x/timex"
)

// Boot phases. Strictly forward, one-shot; only Idle persists, and nothing
// handled there re-enters an earlier phase. Going back requires the RESET
// button, which is outside this software's control.
const (
	PhaseBooting   = "booting"
	PhaseSecuring  = "securing"
	PhaseDisabling = "disabling_peripherals"
	PhaseReporting = "reporting"
	PhaseIdle      = "idle"
)

type Service struct {
	cfg   types.Config
	board *Board
	pins  PinFactory
	reg   Peripherals
	log   *logx.Logger
}

func New(cfg types.Config, board *Board, pins PinFactory, reg Peripherals, log *logx.Logger) *Service {
	return &Service{cfg: cfg, board: board, pins: pins, reg: reg, log: log}
}

// Start runs the service in its own goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.Run(ctx, conn)
}

// Run executes the one-shot boot sequence, then serves the idle loop until
// the context is cancelled. The boot path is not interruptible: both safety
// steps run to completion before any message is consumed. The control
// subscription is registered before the Idle phase is announced, so a
// command sent the instant Idle is observed cannot be lost.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) {
	report := s.boot(conn)

	ctrlSub := conn.Subscribe(types.TopicSafemodeControl)
	s.publishPhase(conn, PhaseIdle, "monitoring")
	s.log.Info("safety mode active, monitoring")

	s.idle(ctx, conn, ctrlSub, report)
}

func (s *Service) boot(conn *bus.Connection) Report {
	s.publishPhase(conn, PhaseBooting, "start")
	s.log.Info("starting safety procedures", logx.Str("board", s.board.Name))

	s.publishPhase(conn, PhaseSecuring, "sweep")
	securer := NewSecurer(s.board, s.pins, s.cfg.SettleDelay, s.log)
	report := securer.Secure()

	s.publishPhase(conn, PhaseDisabling, "shutdown")
	NewDisabler(s.board, s.reg, s.log).Disable()

	s.publishPhase(conn, PhaseReporting, "summary")
	conn.Publish(conn.NewMessage(types.TopicSafemodeReport, report, true))
	s.emit(conn, RenderReport(report))
	return report
}

func (s *Service) idle(ctx context.Context, conn *bus.Connection, ctrlSub *bus.Subscription, report Report) {
	defer conn.Unsubscribe(ctrlSub)

	status := time.NewTicker(s.cfg.StatusPeriod)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			s.publishPhase(conn, PhaseIdle, "stopped")
			return

		case <-status.C:
			s.emit(conn, s.statusCheck())

		case msg := <-ctrlSub.Channel():
			cmd, ok := msg.Payload.(types.Command)
			if !ok {
				conn.Reply(msg, errcode.InvalidPayload, false)
				continue
			}
			s.handleCommand(conn, msg, cmd, report)
		}
	}
}

func (s *Service) handleCommand(conn *bus.Connection, msg *bus.Message, cmd types.Command, report Report) {
	switch cmd.Verb {
	case types.CmdStatus:
		s.emit(conn, RenderReport(report))
		conn.Reply(msg, errcode.OK, false)
	case types.CmdVerbosity:
		verbose := s.toggleVerbosity()
		if verbose {
			s.emit(conn, "\r\nVerbose mode: ON\r\n")
		} else {
			s.emit(conn, "\r\nVerbose mode: OFF\r\n")
		}
		conn.Reply(msg, errcode.OK, false)
	case types.CmdResetNote:
		s.emit(conn, RenderResetNote())
		conn.Reply(msg, errcode.OK, false)
	case types.CmdHelp:
		s.emit(conn, RenderHelp())
		conn.Reply(msg, errcode.OK, false)
	default:
		conn.Reply(msg, errcode.UnknownCommand, false)
	}
}

// toggleVerbosity flips between Normal and Verbose; Quiet builds stay quiet.
func (s *Service) toggleVerbosity() bool {
	switch s.log.Level() {
	case logx.Verbose:
		s.log.SetLevel(logx.Normal)
		return false
	case logx.Normal:
		s.log.SetLevel(logx.Verbose)
		return true
	default:
		return false
	}
}

func (s *Service) statusCheck() string {
	var num [20]byte
	b := make([]byte, 0, 96)
	b = append(b, "\r\n[STATUS CHECK] System still in safe mode.\r\n  Uptime: "...)
	b = append(b, conv.Itoa(num[:], timex.UptimeSeconds())...)
	b = append(b, " seconds\r\n  Ready for firmware upload.\r\n"...)
	return string(b)
}

func (s *Service) publishPhase(conn *bus.Connection, phase, status string) {
	conn.Publish(conn.NewMessage(types.TopicSafemodeState, types.ServiceState{
		Phase:  phase,
		Status: status,
		TSms:   timex.NowMs(),
	}, true))
}

func (s *Service) emit(conn *bus.Connection, text string) {
	conn.Publish(conn.NewMessage(types.TopicConsoleOut, text, false))
}
