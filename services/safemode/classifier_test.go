package safemode

import "testing"

func TestClassifyKnownPins(t *testing.T) {
	b := ESP32S3()
	cases := []struct {
		pin  int
		want Category
	}{
		{0, CategoryPullup},    // boot-strap
		{25, CategoryCritical}, // flash bus block
		{45, CategoryUsbUart},  // USB D-
		{10, CategoryDefault},
		{60, CategoryInvalid}, // out of declared range
		{-1, CategoryInvalid},
		{22, CategoryCritical},
		{39, CategoryCritical},
		{40, CategoryDefault},
		{43, CategoryUsbUart}, // U0TXD
		{48, CategoryDefault},
	}
	for _, c := range cases {
		if got := b.Classify(c.pin); got != c.want {
			t.Fatalf("Classify(%d) = %v, want %v", c.pin, got, c.want)
		}
	}
}

func TestClassifyIsTotalAndIdempotent(t *testing.T) {
	b := ESP32S3()
	for pin := 0; pin <= b.MaxPin; pin++ {
		first := b.Classify(pin)
		if first < CategoryInvalid || first > CategoryDefault {
			t.Fatalf("Classify(%d) out of enum: %d", pin, first)
		}
		if again := b.Classify(pin); again != first {
			t.Fatalf("Classify(%d) not stable: %v then %v", pin, first, again)
		}
	}
}

func TestCategoryCounts(t *testing.T) {
	b := ESP32S3()
	counts := map[Category]int{}
	for pin := 0; pin <= b.MaxPin; pin++ {
		counts[b.Classify(pin)]++
	}
	if counts[CategoryCritical] != 18 {
		t.Fatalf("critical count = %d, want 18", counts[CategoryCritical])
	}
	if counts[CategoryUsbUart] != 6 {
		t.Fatalf("usb/uart count = %d, want 6", counts[CategoryUsbUart])
	}
	if counts[CategoryPullup] != 1 {
		t.Fatalf("pullup count = %d, want 1", counts[CategoryPullup])
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != b.PinCount() {
		t.Fatalf("category counts sum to %d, want %d", total, b.PinCount())
	}
}

func TestOverlappingTablesPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for overlapping membership tables")
		}
	}()
	NewBoard(BoardSpec{
		Name:     "broken",
		MaxPin:   48,
		Critical: []int{26},
		UsbUart:  []int{26},
	})
}

func TestNotBondedPins(t *testing.T) {
	b := NewBoard(BoardSpec{
		Name:      "sparse",
		MaxPin:    10,
		Critical:  []int{6},
		NotBonded: []int{4, 5},
	})
	if b.Classify(4) != CategoryInvalid || b.Classify(5) != CategoryInvalid {
		t.Fatalf("unbonded pins should classify invalid")
	}
	if b.Classify(6) != CategoryCritical {
		t.Fatalf("bonded critical pin misclassified")
	}
	if b.Classify(3) != CategoryDefault {
		t.Fatalf("bonded plain pin misclassified")
	}
}

func TestCategoryString(t *testing.T) {
	names := map[Category]string{
		CategoryInvalid:  "invalid",
		CategoryCritical: "critical",
		CategoryUsbUart:  "usb_uart",
		CategoryPullup:   "pullup",
		CategoryDefault:  "default",
		Category(99):     "unknown",
	}
	for c, want := range names {
		if c.String() != want {
			t.Fatalf("Category(%d).String() = %q, want %q", c, c.String(), want)
		}
	}
}
