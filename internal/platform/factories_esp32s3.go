//go:build esp32s3

package platform

import (
	"io"
	"machine"

	"safemode-go/services/safemode"
)

// ESP32-S3 provider. Pin numbers map directly to machine.Pin(n); the chip's
// structurally special pins are policy, not provider, concerns (the
// classifier holds those tables).

// ----------------------------- GPIO ------------------------------------------

type s3PinFactory struct{}

func (s3PinFactory) ByNumber(n int) (safemode.GPIOPin, bool) {
	if n < 0 || n > 48 {
		return nil, false
	}
	return &s3Pin{p: machine.Pin(n), n: n}, true
}

type s3Pin struct {
	p machine.Pin
	n int
}

func (r *s3Pin) ConfigureInput(pull safemode.Pull) error {
	var mode machine.PinMode
	switch pull {
	case safemode.PullUp:
		mode = machine.PinInputPullup
	case safemode.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *s3Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *s3Pin) Set(level bool) { r.p.Set(level) }
func (r *s3Pin) Get() bool      { return r.p.Get() }

func (r *s3Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *s3Pin) Number() int { return r.n }

// ----------------------------- Peripherals -----------------------------------

// s3PWM releases a PWM-attached pin by parking it as a plain input. The
// securer's sweep re-parks it moments later; doing it here too keeps the
// detach meaningful on its own.
type s3PWM struct{}

func (s3PWM) Detach(pin int) error {
	if pin < 0 || pin > 48 {
		return nil
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}

// s3PulseBank tracks the RMT-style channel bank. The runtime does not keep
// waveform generators running across a deep reconfigure, so uninstall is
// bookkeeping: mark the channel free.
type s3PulseBank struct {
	installed [8]bool
}

func (b *s3PulseBank) Channels() int { return len(b.installed) }

func (b *s3PulseBank) Uninstall(ch int) error {
	if ch < 0 || ch >= len(b.installed) {
		return nil
	}
	b.installed[ch] = false
	return nil
}

// s3Bus is a named bus handle. Stop latches; transfers after Stop are
// rejected, matching the contract that a stopped bus stays inert.
type s3Bus struct {
	name    string
	stopped bool
}

func (b *s3Bus) Name() string { return b.name }

func (b *s3Bus) Stop() error {
	b.stopped = true
	return nil
}

type s3I2C struct{ s3Bus }

func (b *s3I2C) Tx(addr uint16, w, r []byte) error {
	if b.stopped {
		return errStopped
	}
	return nil
}

type s3SPI struct{ s3Bus }

func (b *s3SPI) Tx(w, r []byte) error {
	if b.stopped {
		return errStopped
	}
	return nil
}

func (b *s3SPI) Transfer(c byte) (byte, error) {
	if b.stopped {
		return 0, errStopped
	}
	return c, nil
}

// bytePort is the slice of machine.Serialer the firmware needs.
type bytePort interface {
	Buffered() int
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Write(p []byte) (int, error)
}

// nullPort backs bus handles with no live link behind them.
type nullPort struct{}

func (nullPort) Buffered() int               { return 0 }
func (nullPort) ReadByte() (byte, error)     { return 0, errStopped }
func (nullPort) WriteByte(byte) error        { return nil }
func (nullPort) Write(p []byte) (int, error) { return len(p), nil }

type s3Serial struct {
	s3Bus
	port bytePort
}

func (s *s3Serial) Buffered() int           { return s.port.Buffered() }
func (s *s3Serial) ReadByte() (byte, error) { return s.port.ReadByte() }
func (s *s3Serial) WriteByte(b byte) error  { return s.port.WriteByte(b) }
func (s *s3Serial) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

type stopErr string

func (e stopErr) Error() string { return string(e) }

const errStopped = stopErr("bus stopped")

type s3Peripherals struct {
	pwm     s3PWM
	bank    s3PulseBank
	serials map[string]*s3Serial
	i2cs    map[string]*s3I2C
	spis    map[string]*s3SPI
}

func (h *s3Peripherals) PWM() safemode.PWMUnit { return h.pwm }

func (h *s3Peripherals) Pulse() safemode.PulseBank { return &h.bank }

func (h *s3Peripherals) Serial(name string) (safemode.SerialBus, bool) {
	s, ok := h.serials[name]
	return s, ok
}

func (h *s3Peripherals) I2C(name string) (safemode.I2CBus, bool) {
	b, ok := h.i2cs[name]
	return b, ok
}

func (h *s3Peripherals) SPI(name string) (safemode.SPIBus, bool) {
	b, ok := h.spis[name]
	return b, ok
}

// ----------------------------- Defaults --------------------------------------

func DefaultPinFactory() safemode.PinFactory { return s3PinFactory{} }

func DefaultPeripherals() safemode.Peripherals {
	// uart1/uart2 are auxiliary links with nothing attached in safe mode;
	// uart0 stays up for the monitor and is deliberately absent here.
	return &s3Peripherals{
		serials: map[string]*s3Serial{
			"uart1": {s3Bus: s3Bus{name: "uart1"}, port: nullPort{}},
			"uart2": {s3Bus: s3Bus{name: "uart2"}, port: nullPort{}},
		},
		i2cs: map[string]*s3I2C{
			"i2c0": {s3Bus: s3Bus{name: "i2c0"}},
		},
		spis: map[string]*s3SPI{
			"spi0": {s3Bus: s3Bus{name: "spi0"}},
		},
	}
}

// DefaultConsole is the USB-CDC/UART0 link the developer monitors.
func DefaultConsole() safemode.SerialBus {
	return &s3Serial{s3Bus: s3Bus{name: "uart0"}, port: machine.Serial}
}

// DefaultLogOutput shares the console link.
func DefaultLogOutput() io.Writer {
	return &s3Serial{s3Bus: s3Bus{name: "uart0"}, port: machine.Serial}
}
