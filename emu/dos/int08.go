package dos

/*
 * civrecomp - INT 08h timer tick dispatch
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "github.com/sp00nznet/civrecomp/emu/memory"

// HandleInt08 refreshes the timer from the host clock (currentMs,
// milliseconds since an arbitrary epoch shared across calls) and
// mirrors the tick count into the BIOS data area, as the real PIT
// interrupt stub would on every hardware tick.
func (s *State) HandleInt08(mem *memory.Memory, currentMs uint64) {
	s.Timer.Update(currentMs)
	mem.WriteWord(biosSeg, biosTickCountAddr, uint16(s.Timer.Ticks()))
}
