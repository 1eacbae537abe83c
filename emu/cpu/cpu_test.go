package cpu

/*
 * civrecomp - CPU register and stack tests
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"testing"

	"github.com/sp00nznet/civrecomp/emu/memory"
)

// Writing one half of a register pair must not disturb the other
// half, and the full register must equal their little-endian
// composition at every stable point.
func TestRegisterAliasing(t *testing.T) {
	s := New()
	s.SetAX(0x1234)
	s.SetAL(0xFF)
	if s.AH() != 0x12 {
		t.Errorf("AH changed by SetAL: got %02X, want 12", s.AH())
	}
	if s.AX() != 0x12FF {
		t.Errorf("AX = %04X, want 12FF", s.AX())
	}

	s.SetAH(0xAB)
	if s.AL() != 0xFF {
		t.Errorf("AL changed by SetAH: got %02X, want FF", s.AL())
	}
	if s.AX() != 0xABFF {
		t.Errorf("AX = %04X, want ABFF", s.AX())
	}
}

func TestRegisterAliasingAllPairs(t *testing.T) {
	s := New()
	type pair struct {
		setHi, setLo func(uint8)
		getHi, getLo func() uint8
		setWord      func(uint16)
		getWord      func() uint16
	}
	pairs := []pair{
		{s.SetAH, s.SetAL, s.AH, s.AL, s.SetAX, s.AX},
		{s.SetBH, s.SetBL, s.BH, s.BL, s.SetBX, s.BX},
		{s.SetCH, s.SetCL, s.CH, s.CL, s.SetCX, s.CX},
		{s.SetDH, s.SetDL, s.DH, s.DL, s.SetDX, s.DX},
	}
	for i, p := range pairs {
		p.setWord(0x0000)
		p.setLo(0x42)
		if p.getHi() != 0x00 {
			t.Errorf("pair %d: hi disturbed by setLo", i)
		}
		p.setHi(0x99)
		if p.getLo() != 0x42 {
			t.Errorf("pair %d: lo disturbed by setHi", i)
		}
		if p.getWord() != 0x9942 {
			t.Errorf("pair %d: word = %04X, want 9942", i, p.getWord())
		}
	}
}

// Matched push/pop sequences must return values in reverse order and
// restore SP to its pre-push value.
func TestStackRoundTrip(t *testing.T) {
	s := New()
	m := memory.New()
	s.SS = 0x2000
	s.SP = 0x0100
	startSP := s.SP

	values := []uint16{0x1111, 0x2222, 0x3333, 0xFFFF, 0x0000}
	for _, v := range values {
		s.Push16(m, v)
	}
	for i := len(values) - 1; i >= 0; i-- {
		if got := s.Pop16(m); got != values[i] {
			t.Errorf("Pop16 = %04X, want %04X", got, values[i])
		}
	}
	if s.SP != startSP {
		t.Errorf("SP after round trip = %04X, want %04X", s.SP, startSP)
	}
}

func TestStackWrapsModulo64K(t *testing.T) {
	s := New()
	m := memory.New()
	s.SS = 0x1000
	s.SP = 0x0001
	s.Push16(m, 0xBEEF)
	if s.SP != 0xFFFF {
		t.Errorf("SP after wrap = %04X, want FFFF", s.SP)
	}
	if got := s.Pop16(m); got != 0xBEEF {
		t.Errorf("Pop16 after wrap = %04X, want BEEF", got)
	}
}

func TestDiscardCleanup(t *testing.T) {
	s := New()
	s.SP = 0x1000
	s.DiscardNear()
	if s.SP != 0x1002 {
		t.Errorf("SP after DiscardNear = %04X, want 1002", s.SP)
	}
	s.DiscardFar()
	if s.SP != 0x1006 {
		t.Errorf("SP after DiscardFar = %04X, want 1006", s.SP)
	}
}

func TestResetRestoresPowerOnState(t *testing.T) {
	s := New()
	s.SetAX(0x1234)
	s.Halted = true
	s.Flags = 0xFFFF
	s.Reset()
	if s.AX() != 0 || s.Halted || s.Flags != flagsReserved1 {
		t.Errorf("Reset left stale state: AX=%04X Halted=%v Flags=%04X", s.AX(), s.Halted, s.Flags)
	}
}
