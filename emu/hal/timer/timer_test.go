package timer

/*
 * civrecomp - PIT timer HAL tests
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "testing"

func TestDefaultTickRateIsDOSStandard(t *testing.T) {
	s := New(0)
	got := s.TickRateHz()
	if got < DOSTickHz-0.01 || got > DOSTickHz+0.01 {
		t.Errorf("default tick rate = %f, want ~%f", got, DOSTickHz)
	}
}

// Testable property: ticks must be monotonically non-decreasing as
// wall-clock time advances, never regressing.
func TestTicksMonotonic(t *testing.T) {
	s := New(0)
	prev := uint32(0)
	for ms := uint64(0); ms <= 5000; ms += 55 {
		s.Update(ms)
		if s.Ticks() < prev {
			t.Fatalf("ticks regressed at ms=%d: %d < %d", ms, s.Ticks(), prev)
		}
		prev = s.Ticks()
	}
	if prev == 0 {
		t.Error("expected nonzero ticks after 5 seconds of wall-clock time")
	}
}

func TestTicksApproximatelyMatchRate(t *testing.T) {
	s := New(0)
	s.Update(1000)
	// ~18 ticks/sec at the default rate.
	if s.Ticks() < 17 || s.Ticks() > 19 {
		t.Errorf("ticks after 1s = %d, want ~18", s.Ticks())
	}
}

func TestReprogrammingReloadChangesRate(t *testing.T) {
	s := New(0)
	s.PortOut(PortCommand, 0x36)
	s.PortOut(PortChannel0Data, 0x00) // lo
	s.PortOut(PortChannel0Data, 0x10) // hi -> reload = 0x1000 = 4096

	want := PITFrequency / 4096.0
	if got := s.TickRateHz(); got < want-0.01 || got > want+0.01 {
		t.Errorf("tick rate after reprogram = %f, want %f", got, want)
	}
}

func TestClockGoingBackwardsIsIgnored(t *testing.T) {
	s := New(0)
	s.Update(1000)
	before := s.Ticks()
	s.Update(500)
	if s.Ticks() != before {
		t.Errorf("ticks changed on backwards clock: %d -> %d", before, s.Ticks())
	}
}

func TestPortInLatchesLowThenHigh(t *testing.T) {
	s := New(0)
	s.reload = 0x1234
	want := uint16(s.reloadValue() - s.ticks%s.reloadValue())

	lo := s.PortIn(PortChannel0Data)
	if lo != uint8(want) {
		t.Errorf("low byte = %02X, want %02X", lo, uint8(want))
	}
	hi := s.PortIn(PortChannel0Data)
	if hi != uint8(want>>8) {
		t.Errorf("high byte = %02X, want %02X", hi, uint8(want>>8))
	}

	// A following read pair must re-latch independently rather than
	// return the same cached halves forever.
	s.Update(100)
	lo2 := s.PortIn(PortChannel0Data)
	want2 := uint16(s.reloadValue() - s.ticks%s.reloadValue())
	if lo2 != uint8(want2) {
		t.Errorf("low byte after re-latch = %02X, want %02X", lo2, uint8(want2))
	}
}
