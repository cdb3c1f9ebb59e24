package safemode

// Category is the closed set of electrical dispositions a pin can be
// assigned before flashing.
type Category uint8

const (
	// CategoryInvalid: the number does not denote a bonded GPIO.
	CategoryInvalid Category = iota
	// CategoryCritical: internal flash/PSRAM bus. Never touched; driving or
	// re-pulling one of these can corrupt the external memory bus.
	CategoryCritical
	// CategoryUsbUart: USB and UART transceiver lines. Input, driven low,
	// never pulled, so the programming link stays usable.
	CategoryUsbUart
	// CategoryPullup: boot-strap pins that must present a pull-up or the
	// chip re-enters download mode on reset.
	CategoryPullup
	// CategoryDefault: everything else, parked as high-impedance input.
	CategoryDefault
)

func (c Category) String() string {
	switch c {
	case CategoryInvalid:
		return "invalid"
	case CategoryCritical:
		return "critical"
	case CategoryUsbUart:
		return "usb_uart"
	case CategoryPullup:
		return "pullup"
	case CategoryDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Classify maps a pin number to exactly one category. Pure, idempotent, and
// order-independent. The priority is part of the contract: validity first,
// then critical, then USB/UART, then pull-up; first match wins.
func (b *Board) Classify(pin int) Category {
	if !b.Valid(pin) {
		return CategoryInvalid
	}
	if _, ok := b.critical[pin]; ok {
		return CategoryCritical
	}
	if _, ok := b.usbUart[pin]; ok {
		return CategoryUsbUart
	}
	if _, ok := b.pullup[pin]; ok {
		return CategoryPullup
	}
	return CategoryDefault
}
