// Package cpu implements the 8086/80186 register, flag, and stack
// state that every recompiled routine manipulates directly. It is
// deliberately not cycle-accurate and carries no protected-mode or
// 32-bit register semantics — the translator only ever emits 16-bit
// register forms (spec Non-goals, Open Question: 32-bit aliases).
package cpu

/*
 * civrecomp - CPU register, flag, and stack state
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "github.com/sp00nznet/civrecomp/emu/memory"

// Flag bit positions, matching the 8086 FLAGS register layout.
const (
	FlagCF uint16 = 0x0001 // Carry
	FlagPF uint16 = 0x0004 // Parity
	FlagAF uint16 = 0x0010 // Auxiliary carry
	FlagZF uint16 = 0x0040 // Zero
	FlagSF uint16 = 0x0080 // Sign
	FlagTF uint16 = 0x0100 // Trap
	FlagIF uint16 = 0x0200 // Interrupt enable
	FlagDF uint16 = 0x0400 // Direction
	FlagOF uint16 = 0x0800 // Overflow

	// flagsReserved1 is bit 1, always set on the 8086.
	flagsReserved1 uint16 = 0x0002
)

// reg16 is a 16-bit register addressable as a low/high byte pair.
// The high/low fields back AH/AL (etc) directly; AX is their
// little-endian composition. Go has no union type, so the pair is
// kept explicit rather than reached for via unsafe aliasing — a
// tagged-variant wrapper would be the wrong shape here since the
// aliasing (writing AL must not disturb AH) is the whole point.
type reg16 struct {
	lo uint8
	hi uint8
}

func (r reg16) word() uint16 {
	return uint16(r.lo) | uint16(r.hi)<<8
}

func (r *reg16) setWord(v uint16) {
	r.lo = uint8(v)
	r.hi = uint8(v >> 8)
}

// State is the complete register, flag, and segment state of one
// simulated 8086. Every translated function receives a *State and a
// *memory.Memory and mutates both directly; no translated call ever
// receives a reference that outlives the State.
type State struct {
	ax, bx, cx, dx reg16

	SI, DI, BP, SP uint16

	CS, DS, ES, SS uint16

	IP uint16 // informational only; translated code never dispatches on it.

	Flags uint16

	Halted bool
}

// New returns a State with bit 1 of FLAGS set, matching the 8086
// power-on/reset convention, and all other fields zeroed.
func New() *State {
	return &State{Flags: flagsReserved1}
}

// Reset restores s to its power-on state in place.
func (s *State) Reset() {
	*s = State{Flags: flagsReserved1}
}

// AX, BX, CX, DX return the full 16-bit register value.
func (s *State) AX() uint16 { return s.ax.word() }
func (s *State) BX() uint16 { return s.bx.word() }
func (s *State) CX() uint16 { return s.cx.word() }
func (s *State) DX() uint16 { return s.dx.word() }

// SetAX, SetBX, SetCX, SetDX replace the full 16-bit register value.
func (s *State) SetAX(v uint16) { s.ax.setWord(v) }
func (s *State) SetBX(v uint16) { s.bx.setWord(v) }
func (s *State) SetCX(v uint16) { s.cx.setWord(v) }
func (s *State) SetDX(v uint16) { s.dx.setWord(v) }

// AL, AH, BL, BH, CL, CH, DL, DH read one half of a register pair.
func (s *State) AL() uint8 { return s.ax.lo }
func (s *State) AH() uint8 { return s.ax.hi }
func (s *State) BL() uint8 { return s.bx.lo }
func (s *State) BH() uint8 { return s.bx.hi }
func (s *State) CL() uint8 { return s.cx.lo }
func (s *State) CH() uint8 { return s.cx.hi }
func (s *State) DL() uint8 { return s.dx.lo }
func (s *State) DH() uint8 { return s.dx.hi }

// SetAL, SetAH, ... write one half of a register pair, leaving the
// other half untouched.
func (s *State) SetAL(v uint8) { s.ax.lo = v }
func (s *State) SetAH(v uint8) { s.ax.hi = v }
func (s *State) SetBL(v uint8) { s.bx.lo = v }
func (s *State) SetBH(v uint8) { s.bx.hi = v }
func (s *State) SetCL(v uint8) { s.cx.lo = v }
func (s *State) SetCH(v uint8) { s.cx.hi = v }
func (s *State) SetDL(v uint8) { s.dx.lo = v }
func (s *State) SetDH(v uint8) { s.dx.hi = v }

// GetFlag reports whether the named flag bit is set.
func (s *State) GetFlag(bit uint16) bool {
	return s.Flags&bit != 0
}

// SetFlag sets or clears the named flag bit.
func (s *State) SetFlag(bit uint16, v bool) {
	if v {
		s.Flags |= bit
	} else {
		s.Flags &^= bit
	}
}

// Push16 decrements SP by 2 and stores v little-endian at SS:SP. SP
// wraps modulo 2^16 inside the SS segment.
func (s *State) Push16(m *memory.Memory, v uint16) {
	s.SP -= 2
	m.WriteWord(s.SS, s.SP, v)
}

// Pop16 loads a little-endian word from SS:SP and increments SP by 2.
func (s *State) Pop16(m *memory.Memory) uint16 {
	v := m.ReadWord(s.SS, s.SP)
	s.SP += 2
	return v
}

// DiscardNear applies the `SP += 2` cleanup a routine's caller
// expects after a near-call return address was consumed without a
// matching Pop16 — used when a hand-implemented routine replaces a
// translated one and must still balance its caller's stack.
func (s *State) DiscardNear() {
	s.SP += 2
}

// DiscardFar applies the `SP += 4` cleanup for a far-call return
// address (segment and offset).
func (s *State) DiscardFar() {
	s.SP += 4
}
