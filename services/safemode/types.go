package safemode

import "tinygo.org/x/drivers"

// Hardware boundary. Providers under internal/platform implement these
// contracts; nothing in the boot path inspects their return values beyond
// existence checks, there is no feedback path on this hardware.

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// PinFactory supplies GPIO pins by package pin number. The second return is
// the provider's own validity view; the classifier's board table is the
// policy-level one.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Peripherals ----

// PWMUnit detaches a PWM channel from a pin. Detaching a pin that was never
// attached is a no-op.
type PWMUnit interface {
	Detach(pin int) error
}

// PulseBank is the fixed bank of pulse-train output channels (WS2812-style
// waveform generators). Uninstall on a free channel is a no-op.
type PulseBank interface {
	Channels() int
	Uninstall(ch int) error
}

// BusHandle is a named peripheral bus that can be stopped. Stop must be
// idempotent: stopping an already-stopped bus returns nil.
type BusHandle interface {
	Name() string
	Stop() error
}

// I2CBus is a communication bus that also speaks the pack-standard I2C
// transfer contract while running.
type I2CBus interface {
	drivers.I2C
	BusHandle
}

// SPIBus is the SPI counterpart.
type SPIBus interface {
	drivers.SPI
	BusHandle
}

// SerialBus is a byte-oriented serial port with a bus handle. Buffered and
// ReadByte make a non-blocking single-byte poll possible.
type SerialBus interface {
	BusHandle
	Buffered() int
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Write(p []byte) (int, error)
}

// Peripherals resolves the fixed handle set the disabler shuts down.
// Lookups for names a provider does not back return ok=false; the disabler
// treats that the same as an already-stopped bus.
type Peripherals interface {
	PWM() PWMUnit
	Pulse() PulseBank
	Serial(name string) (SerialBus, bool)
	I2C(name string) (I2CBus, bool)
	SPI(name string) (SPIBus, bool)
}
