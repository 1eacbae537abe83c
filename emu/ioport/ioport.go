// Package ioport implements the port I/O dispatcher: routing of IN
// and OUT instructions on the ports the game's device access
// compiles down to, toward the video and timer HALs, with a silent
// default for everything else.
package ioport

/*
 * civrecomp - port I/O dispatcher
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"github.com/sp00nznet/civrecomp/emu/hal/timer"
	"github.com/sp00nznet/civrecomp/emu/hal/video"
)

// Port addresses this dispatcher owns outright (not delegated to a
// HAL), per the spec's port map.
const (
	portPICEOI   = 0x20
	portKeyboard = 0x60
)

// Dispatcher routes port accesses to the video and timer HALs.
type Dispatcher struct {
	Video *video.State
	Timer *timer.State
}

// New returns a dispatcher wired to the given HAL instances.
func New(v *video.State, t *timer.State) *Dispatcher {
	return &Dispatcher{Video: v, Timer: t}
}

// Out handles an OUT instruction to port.
func (d *Dispatcher) Out(port uint16, v uint8) {
	switch port {
	case portPICEOI, portKeyboard:
		// ignored: no PIC or keyboard controller state is modeled.
	case video.PortDACReadAddr, video.PortDACWriteAddr, video.PortDACData:
		d.Video.PortOut(port, v)
	case timer.PortChannel0Data, timer.PortCommand:
		d.Timer.PortOut(port, v)
	}
}

// In handles an IN instruction from port, defaulting to 0 for any
// port with no modeled state.
func (d *Dispatcher) In(port uint16) uint8 {
	switch port {
	case portKeyboard:
		return 0
	case video.PortDACData, video.PortInputStatus:
		return d.Video.PortIn(port)
	case timer.PortChannel0Data:
		return d.Timer.PortIn(port)
	default:
		return 0
	}
}
