package safemode

import "safemode-go/x/mathx"

// Board describes one chip package: which pin numbers exist and which of
// them are structurally special. The three membership sets must be pairwise
// disjoint so every pin resolves to exactly one non-default category.
type Board struct {
	Name   string
	MaxPin int

	critical map[int]struct{}
	usbUart  map[int]struct{}
	pullup   map[int]struct{}
	bonded   map[int]struct{} // nil means every pin in [0, MaxPin] is bonded

	// Peripheral handle set shut down by the disabler.
	PWMPins       []int
	PulseChannels int
	SerialBuses   []string
	CommBuses     []string
}

// BoardSpec is the declarative input to NewBoard. Sets are given as plain
// slices; construction turns them into lookup sets and rejects overlap.
type BoardSpec struct {
	Name      string
	MaxPin    int
	Critical  []int
	UsbUart   []int
	Pullup    []int
	NotBonded []int // pins in range that are not physically present

	PWMPins       []int
	PulseChannels int
	SerialBuses   []string
	CommBuses     []string
}

// NewBoard builds a Board from its spec. Overlapping membership tables are a
// programming error in the board definition, caught at startup.
func NewBoard(spec BoardSpec) *Board {
	b := &Board{
		Name:          spec.Name,
		MaxPin:        spec.MaxPin,
		critical:      toSet(spec.Critical),
		usbUart:       toSet(spec.UsbUart),
		pullup:        toSet(spec.Pullup),
		PWMPins:       spec.PWMPins,
		PulseChannels: spec.PulseChannels,
		SerialBuses:   spec.SerialBuses,
		CommBuses:     spec.CommBuses,
	}
	if len(spec.NotBonded) > 0 {
		bonded := make(map[int]struct{}, spec.MaxPin+1)
		for p := 0; p <= spec.MaxPin; p++ {
			bonded[p] = struct{}{}
		}
		for _, p := range spec.NotBonded {
			delete(bonded, p)
		}
		b.bonded = bonded
	}
	for p := range b.critical {
		if _, dup := b.usbUart[p]; dup {
			panic("board table overlap: critical/usb-uart")
		}
		if _, dup := b.pullup[p]; dup {
			panic("board table overlap: critical/pullup")
		}
	}
	for p := range b.usbUart {
		if _, dup := b.pullup[p]; dup {
			panic("board table overlap: usb-uart/pullup")
		}
	}
	return b
}

func toSet(pins []int) map[int]struct{} {
	s := make(map[int]struct{}, len(pins))
	for _, p := range pins {
		s[p] = struct{}{}
	}
	return s
}

// Valid reports whether n denotes a bonded GPIO on this package.
func (b *Board) Valid(n int) bool {
	if !mathx.Between(n, 0, b.MaxPin) {
		return false
	}
	if b.bonded == nil {
		return true
	}
	_, ok := b.bonded[n]
	return ok
}

// PinCount is the size of the identifier space swept by the securer.
func (b *Board) PinCount() int { return b.MaxPin + 1 }

// ESP32S3 is the board this firmware ships for.
//
// GPIO26-37 carry the external flash and PSRAM bus; the 22-25 group sits on
// the same internal bus and is listed critical rather than unbonded so the
// whole block is uniformly untouchable. GPIO43/44 are U0TXD/U0RXD, 45/46
// the USB data pair, 18/19 USB OTG VN/VP. GPIO0 is the boot-strap pin and
// must present a pull-up to avoid entering download mode on reset.
func ESP32S3() *Board {
	return NewBoard(BoardSpec{
		Name:     "esp32s3",
		MaxPin:   48,
		Critical: []int{22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39},
		UsbUart:  []int{18, 19, 43, 44, 45, 46},
		Pullup:   []int{0},

		PWMPins:       []int{2, 4, 5, 12, 13, 14, 15, 18, 19, 21, 22, 23, 25, 26, 27, 32, 33},
		PulseChannels: 8,
		SerialBuses:   []string{"uart1", "uart2"},
		CommBuses:     []string{"i2c0", "spi0"},
	})
}
