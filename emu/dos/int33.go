package dos

/*
 * civrecomp - INT 33h mouse service dispatch
 *
 * Part of the Civilization static-recompilation execution core.
 */

import "github.com/sp00nznet/civrecomp/emu/cpu"

// HandleInt33 dispatches one INT 33h mouse service call, keyed on the
// full AX value rather than a single byte.
func (s *State) HandleInt33(c *cpu.State) {
	switch c.AX() {
	case 0x0000: // reset and detect
		s.Mouse.Visible = false
		c.SetAX(0xFFFF)
		c.SetBX(3)

	case 0x0001: // show cursor
		s.Mouse.Visible = true

	case 0x0002: // hide cursor
		s.Mouse.Visible = false

	case 0x0003: // get position and button status
		c.SetBX(s.Mouse.Buttons)
		c.SetCX(uint16(s.Mouse.X))
		c.SetDX(uint16(s.Mouse.Y))

	case 0x0004: // set position
		s.Mouse.Update(int(c.CX()), int(c.DX()), s.Mouse.Buttons)

	case 0x0007: // set horizontal range
		s.Mouse.SetRangeX(int16(c.CX()), int16(c.DX()))

	case 0x0008: // set vertical range
		s.Mouse.SetRangeY(int16(c.CX()), int16(c.DX()))

	case 0x000C: // set event handler
		// accepted, ignored: events are polled rather than delivered.
	}
}
