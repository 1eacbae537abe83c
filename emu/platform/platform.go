// Package platform defines the event-pump contract shared between
// the execution core and the host window/input layer: the callback
// signature a blocking DOS/BIOS handler invokes while spinning, and
// the context it carries, without the core ever importing a concrete
// windowing library.
package platform

/*
 * civrecomp - platform event-pump contract
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"github.com/sp00nznet/civrecomp/emu/dos"
)

// Context is whatever the host needs to pump its own event loop
// (a window handle, an audio device, etc); the core only ever passes
// it through to Pump, never inspecting it.
type Context any

// Pump is installed as dos.State.PollEvents. It must, in order:
// push any pending keyboard events into s.Keyboard, update s.Mouse,
// and refresh s.Timer from the host clock. It is reentrant with
// respect to translated code (it may itself trigger translated calls
// such as a window repaint) but must never mutate CPU register state.
type Pump func(ctx Context, s *dos.State)

// Install wires fn as the poll callback for s, carrying ctx.
func Install(s *dos.State, ctx Context, fn Pump) {
	s.PlatformCtx = ctx
	s.PollEvents = func(c any, st *dos.State) {
		fn(c, st)
	}
}
