package safemode

import (
	"safemode-go/x/logx"
)

// Disabler shuts down every higher-level subsystem that could still be
// driving a pin the securer just parked. All calls are unconditional and
// idempotent; a resource that is already stopped is a no-op.
//
// Ordering is securer first, disabler second, which leaves a short window
// where a still-attached peripheral can drive a freshly parked pin.
type Disabler struct {
	board *Board
	reg   Peripherals
	log   *logx.Logger
}

func NewDisabler(board *Board, reg Peripherals, log *logx.Logger) *Disabler {
	return &Disabler{board: board, reg: reg, log: log}
}

// Disable walks the fixed handle set: the PWM pin table, the pulse-train
// channel bank, and the four named buses. Nothing here inspects errors;
// there is no feedback path on this hardware.
func (d *Disabler) Disable() {
	d.log.Info("disabling peripherals")

	pwm := d.reg.PWM()
	for _, pin := range d.board.PWMPins {
		pwm.Detach(pin)
	}
	d.log.Debug("pwm detached", logx.Int("pins", len(d.board.PWMPins)))

	bank := d.reg.Pulse()
	for ch := 0; ch < bank.Channels(); ch++ {
		bank.Uninstall(ch)
	}
	d.log.Debug("pulse channels uninstalled", logx.Int("channels", bank.Channels()))

	for _, name := range d.board.CommBuses {
		if b, ok := d.reg.I2C(name); ok {
			b.Stop()
			d.log.Debug("bus stopped", logx.Str("bus", name))
			continue
		}
		if b, ok := d.reg.SPI(name); ok {
			b.Stop()
			d.log.Debug("bus stopped", logx.Str("bus", name))
		}
	}
	for _, name := range d.board.SerialBuses {
		if b, ok := d.reg.Serial(name); ok {
			b.Stop()
			d.log.Debug("bus stopped", logx.Str("bus", name))
		}
	}

	d.log.Info("all peripherals disabled")
}
