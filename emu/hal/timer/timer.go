// Package timer implements the PIT (8253/8254) channel-0 HAL behind
// INT 08h: a reload-value-driven tick rate derived from the PIT's
// fixed input clock, and a wall-clock-driven tick counter mirroring
// the BIOS tick word at 0040:006C.
package timer

/*
 * civrecomp - PIT timer HAL
 *
 * Part of the Civilization static-recompilation execution core.
 */

// PITFrequency is the fixed input clock of the 8253/8254 PIT, in Hz.
const PITFrequency = 1193182

// DOSTickHz is the default BIOS tick rate (18.2065 Hz), the rate
// produced by the DOS-standard reload value of 0.
const DOSTickHz = 1193182.0 / 65536.0

// Port addresses the DOS port dispatcher routes here.
const (
	PortChannel0Data = 0x40
	PortCommand      = 0x43
)

// State tracks the PIT's programmed reload value and the elapsed
// tick count it produces, driven by wall-clock milliseconds supplied
// by the caller rather than real hardware timing.
type State struct {
	reload  uint16 // 0 means 65536, matching real PIT semantics
	ticks   uint32
	startMs uint64
	lastMs  uint64

	latched     bool
	latchValue  uint16
	writeLo     bool // next data-port write lands in the low byte of a new reload
	pendingHi   uint8
	haveWriteLo bool
}

// New returns a PIT state programmed to the DOS-standard 18.2065 Hz
// tick rate, with its wall-clock origin at startMs.
func New(startMs uint64) *State {
	return &State{reload: 0, startMs: startMs, lastMs: startMs, writeLo: true}
}

// TickRateHz returns the current programmed tick rate.
func (s *State) TickRateHz() float64 {
	return PITFrequency / float64(s.reloadValue())
}

func (s *State) reloadValue() uint32 {
	if s.reload == 0 {
		return 65536
	}
	return uint32(s.reload)
}

// Update advances the tick counter to reflect currentMs elapsed since
// the timer's epoch, given the currently programmed rate. It must be
// called from the host's INT 08h delivery path (or equivalent poll),
// never from inside translated code directly.
func (s *State) Update(currentMs uint64) {
	if currentMs < s.lastMs {
		return // clock went backwards; ignore rather than underflow
	}
	s.lastMs = currentMs
	elapsedMs := currentMs - s.startMs
	s.ticks = uint32(float64(elapsedMs) / 1000.0 * s.TickRateHz())
}

// Ticks returns the current tick count, the value the BIOS tick word
// at 0040:006C mirrors.
func (s *State) Ticks() uint32 {
	return s.ticks
}

// PortOut handles a write to the PIT command or channel-0 data port.
// Only channel-0, mode-3, binary, lo/hi access (the DOS-standard PIT
// programming sequence) is modeled; other command bytes are accepted
// but otherwise ignored since no translated routine reprograms the
// PIT any other way.
func (s *State) PortOut(port uint16, v uint8) {
	switch port {
	case PortCommand:
		s.writeLo = true
		s.haveWriteLo = false
	case PortChannel0Data:
		if s.writeLo {
			s.pendingHi = v
			s.writeLo = false
			s.haveWriteLo = true
		} else {
			s.writeLo = true
			if s.haveWriteLo {
				s.reload = uint16(s.pendingHi) | uint16(v)<<8
			} else {
				s.reload = uint16(v)
			}
		}
	}
}

// PortIn handles a read from the PIT channel-0 data port, returning
// successive halves of the latched counter value (low byte first).
func (s *State) PortIn(port uint16) uint8 {
	if port != PortChannel0Data {
		return 0xFF
	}
	if !s.latched {
		remaining := s.reloadValue() - s.ticks%s.reloadValue()
		s.latchValue = uint16(remaining)
		s.latched = true
		return uint8(s.latchValue)
	}
	s.latched = false
	return uint8(s.latchValue >> 8)
}
