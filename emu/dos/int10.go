package dos

/*
 * civrecomp - INT 10h BIOS video service dispatch
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"os"

	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/memory"
)

// HandleInt10 dispatches one INT 10h BIOS video service call.
func (s *State) HandleInt10(c *cpu.State, mem *memory.Memory) {
	switch c.AH() {
	case 0x00: // set video mode
		// idempotent: mode 13h is the only mode the game ever requests.

	case 0x02: // set cursor position
		mem.WriteByte(biosSeg, biosCursorRow, c.DH())
		mem.WriteByte(biosSeg, biosCursorCol, c.DL())

	case 0x09: // write character and attribute, CX times
		for i := uint16(0); i < c.CX(); i++ {
			os.Stdout.Write([]byte{c.AL()})
		}

	case 0x0E: // teletype output
		os.Stdout.Write([]byte{c.AL()})

	case 0x0F: // get current video mode
		c.SetAL(0x13)
		c.SetAH(40)
		c.SetBH(0)
	}
}
