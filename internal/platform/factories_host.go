//go:build !esp32s3

package platform

import (
	"io"
	"os"
	"sync"

	"safemode-go/services/safemode"
)

// Host-side fakes. They record everything the boot path does to them so the
// tests can assert the sweep and shutdown behavior without hardware.

// ----------------------------- GPIO ------------------------------------------

// FakePin implements safemode.GPIOPin and remembers its last configuration.
type FakePin struct {
	mu         sync.RWMutex
	number     int
	level      bool
	modeOut    bool
	pull       safemode.Pull
	configures int
	sets       int
}

func (p *FakePin) ConfigureInput(pull safemode.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.configures++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.configures++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.sets++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Toggle() { p.Set(!p.Get()) }

func (p *FakePin) Number() int { return p.number }

// Sets is the number of level writes the pin has seen.
func (p *FakePin) Sets() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sets
}

// Snapshot returns (isOutput, pull, level, configure count) for assertions.
func (p *FakePin) Snapshot() (bool, safemode.Pull, bool, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut, p.pull, p.level, p.configures
}

// HostPinFactory returns stable *FakePin instances per number and records
// the order in which pins were handed out.
type HostPinFactory struct {
	mu    sync.Mutex
	max   int
	pins  map[int]*FakePin
	Order []int
}

// NewHostPinFactory limits validity to [0, max].
func NewHostPinFactory(max int) *HostPinFactory {
	return &HostPinFactory{max: max, pins: make(map[int]*FakePin)}
}

func (f *HostPinFactory) ByNumber(n int) (safemode.GPIOPin, bool) {
	if n < 0 || n > f.max {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	f.Order = append(f.Order, n)
	return p, true
}

// Get exposes the underlying *FakePin for assertions.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// ----------------------------- Peripherals -----------------------------------

// HostPWM counts detach calls per pin.
type HostPWM struct {
	mu       sync.Mutex
	Detached map[int]int
}

func (h *HostPWM) Detach(pin int) error {
	h.mu.Lock()
	if h.Detached == nil {
		h.Detached = make(map[int]int)
	}
	h.Detached[pin]++
	h.mu.Unlock()
	return nil
}

// HostPulseBank models a bank with some channels installed.
type HostPulseBank struct {
	mu         sync.Mutex
	Installed  []bool
	Uninstalls []int
}

func NewHostPulseBank(channels int, installed ...int) *HostPulseBank {
	b := &HostPulseBank{
		Installed:  make([]bool, channels),
		Uninstalls: make([]int, channels),
	}
	for _, ch := range installed {
		if ch >= 0 && ch < channels {
			b.Installed[ch] = true
		}
	}
	return b
}

func (b *HostPulseBank) Channels() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Installed)
}

func (b *HostPulseBank) Uninstall(ch int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch < 0 || ch >= len(b.Installed) {
		return nil
	}
	b.Installed[ch] = false
	b.Uninstalls[ch]++
	return nil
}

// HostI2C is an inert I2C bus recording the last transfer, plus a stop flag.
type HostI2C struct {
	mu      sync.Mutex
	name    string
	Stopped bool
	Stops   int
	LastTx  struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	return nil
}

func (h *HostI2C) Name() string { return h.name }

func (h *HostI2C) Stop() error {
	h.mu.Lock()
	h.Stopped = true
	h.Stops++
	h.mu.Unlock()
	return nil
}

// HostSPI is the SPI counterpart.
type HostSPI struct {
	mu      sync.Mutex
	name    string
	Stopped bool
	Stops   int
}

func (h *HostSPI) Tx(w, r []byte) error { return nil }

func (h *HostSPI) Transfer(b byte) (byte, error) { return b, nil }

func (h *HostSPI) Name() string { return h.name }

func (h *HostSPI) Stop() error {
	h.mu.Lock()
	h.Stopped = true
	h.Stops++
	h.mu.Unlock()
	return nil
}

// HostSerial is an in-memory byte port. Tests feed input with Feed and read
// what the firmware wrote with Output.
type HostSerial struct {
	mu      sync.Mutex
	name    string
	in      []byte
	out     []byte
	Stopped bool
	Stops   int
}

func NewHostSerial(name string) *HostSerial { return &HostSerial{name: name} }

func (h *HostSerial) Feed(p []byte) {
	h.mu.Lock()
	h.in = append(h.in, p...)
	h.mu.Unlock()
}

func (h *HostSerial) Output() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.out...)
}

func (h *HostSerial) Buffered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.in)
}

func (h *HostSerial) ReadByte() (byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.in) == 0 {
		return 0, io.EOF
	}
	b := h.in[0]
	h.in = h.in[1:]
	return b, nil
}

func (h *HostSerial) WriteByte(b byte) error {
	h.mu.Lock()
	h.out = append(h.out, b)
	h.mu.Unlock()
	return nil
}

func (h *HostSerial) Write(p []byte) (int, error) {
	h.mu.Lock()
	h.out = append(h.out, p...)
	h.mu.Unlock()
	return len(p), nil
}

func (h *HostSerial) Name() string { return h.name }

func (h *HostSerial) Stop() error {
	h.mu.Lock()
	h.Stopped = true
	h.Stops++
	h.mu.Unlock()
	return nil
}

// HostPeripherals bundles the fakes behind safemode.Peripherals.
type HostPeripherals struct {
	PWMUnit *HostPWM
	Bank    *HostPulseBank
	Serials map[string]*HostSerial
	I2Cs    map[string]*HostI2C
	SPIs    map[string]*HostSPI
}

// NewHostPeripherals builds the fixed handle set for the given bus names,
// with all pulse channels marked installed so uninstall paths are visible.
func NewHostPeripherals(pulseChannels int, serials, i2cs, spis []string) *HostPeripherals {
	installed := make([]int, pulseChannels)
	for i := range installed {
		installed[i] = i
	}
	h := &HostPeripherals{
		PWMUnit: &HostPWM{},
		Bank:    NewHostPulseBank(pulseChannels, installed...),
		Serials: make(map[string]*HostSerial),
		I2Cs:    make(map[string]*HostI2C),
		SPIs:    make(map[string]*HostSPI),
	}
	for _, n := range serials {
		h.Serials[n] = NewHostSerial(n)
	}
	for _, n := range i2cs {
		h.I2Cs[n] = &HostI2C{name: n}
	}
	for _, n := range spis {
		h.SPIs[n] = &HostSPI{name: n}
	}
	return h
}

func (h *HostPeripherals) PWM() safemode.PWMUnit { return h.PWMUnit }

func (h *HostPeripherals) Pulse() safemode.PulseBank { return h.Bank }

func (h *HostPeripherals) Serial(name string) (safemode.SerialBus, bool) {
	s, ok := h.Serials[name]
	return s, ok
}

func (h *HostPeripherals) I2C(name string) (safemode.I2CBus, bool) {
	b, ok := h.I2Cs[name]
	return b, ok
}

func (h *HostPeripherals) SPI(name string) (safemode.SPIBus, bool) {
	b, ok := h.SPIs[name]
	return b, ok
}

// ----------------------------- Defaults --------------------------------------

// DefaultPinFactory provides the host GPIO fakes for the full S3 range.
func DefaultPinFactory() safemode.PinFactory { return NewHostPinFactory(48) }

// DefaultPeripherals provides the host peripheral fakes for the S3 layout.
func DefaultPeripherals() safemode.Peripherals {
	return NewHostPeripherals(8,
		[]string{"uart1", "uart2"},
		[]string{"i2c0"},
		[]string{"spi0"})
}

// DefaultConsole is an in-memory port on host builds; nothing real to poll.
func DefaultConsole() safemode.SerialBus { return NewHostSerial("uart0") }

// DefaultLogOutput writes diagnostics to stdout on host builds.
func DefaultLogOutput() io.Writer { return os.Stdout }
