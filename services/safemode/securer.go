package safemode

import (
	"time"

	"safemode-go/x/conv"
	"safemode-go/x/logx"
)

// Report is the immutable outcome of one full sweep. The counters are
// write-once per sweep; a fresh boot is the only way to produce new ones.
type Report struct {
	Safe    int // high-impedance inputs
	Special int // USB/UART and pull-up pins
	Skipped int // invalid and critical pins, untouched
}

// Total is the number of pin identifiers swept.
func (r Report) Total() int { return r.Safe + r.Special + r.Skipped }

// Securer walks the full pin address space once and parks every pin in its
// category's safe state. Hardware errors are not observable here; every
// action is fire-and-forget.
type Securer struct {
	board  *Board
	pins   PinFactory
	settle time.Duration
	log    *logx.Logger

	// sleep is swapped out in tests to keep sweeps instant.
	sleep func(time.Duration)
}

func NewSecurer(board *Board, pins PinFactory, settle time.Duration, log *logx.Logger) *Securer {
	return &Securer{
		board:  board,
		pins:   pins,
		settle: settle,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Secure performs exactly one ascending sweep over [0, MaxPin] and returns
// the tallies. Ascending order matters: each non-skip action is followed by
// a settle delay so reconfigurations never overlap.
func (s *Securer) Secure() Report {
	s.log.Info("securing gpio pins", logx.Int("count", s.board.PinCount()))

	var r Report
	var num [2]byte
	for pin := 0; pin <= s.board.MaxPin; pin++ {
		cat := s.board.Classify(pin)
		switch cat {
		case CategoryInvalid, CategoryCritical:
			s.log.Debug("skip", logx.Str("pin", string(conv.Pad2(num[:], pin))), logx.Str("category", cat.String()))
			r.Skipped++
			continue
		case CategoryUsbUart:
			s.securePin(pin, PullNone, false)
			r.Special++
		case CategoryPullup:
			s.securePin(pin, PullUp, true)
			r.Special++
		default:
			s.securePin(pin, PullNone, false)
			r.Safe++
		}
		s.log.Debug("secured", logx.Str("pin", string(conv.Pad2(num[:], pin))), logx.Str("category", cat.String()))
		s.sleep(s.settle)
	}

	s.log.Info("all pins secured",
		logx.Int("safe", r.Safe), logx.Int("special", r.Special), logx.Int("skipped", r.Skipped))
	return r
}

// securePin applies the category action: input direction with the requested
// pull, and for unpulled pins a forced low drive value so no residual pull
// resistor is left active. Return codes are ignored; there is no feedback
// path to act on.
func (s *Securer) securePin(n int, pull Pull, pulled bool) {
	p, ok := s.pins.ByNumber(n)
	if !ok {
		// Classifier said valid but the provider disagrees; nothing to do.
		return
	}
	p.ConfigureInput(pull)
	if !pulled {
		p.Set(false)
	}
}
