package dos

/*
 * civrecomp - INT 16h BIOS keyboard service dispatch
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "github.com/sp00nznet/civrecomp/emu/cpu"

// HandleInt16 dispatches one INT 16h BIOS keyboard service call.
func (s *State) HandleInt16(c *cpu.State) {
	switch c.AH() {
	case 0x00, 0x10: // blocking read
		for !s.Keyboard.Available() {
			s.pump()
		}
		c.SetAX(s.Keyboard.Read())

	case 0x01, 0x11: // check for key, non-blocking
		if v, ok := s.Keyboard.Peek(); ok {
			c.SetFlag(cpu.FlagZF, false)
			c.SetAX(v)
		} else {
			c.SetFlag(cpu.FlagZF, true)
		}

	case 0x02: // get shift flags
		c.SetAL(0)
	}
}
