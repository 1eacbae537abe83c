// Package startup simulates the MSC 5.x C-runtime startup sequence
// (crt0 + __astart) that runs before a translated game's entry point:
// DGROUP segment setup, the CRT's init-data copy, BSS clearing, and
// the synthetic main() argument frame.
package startup

/*
 * civrecomp - MSC C-runtime startup simulation
 *
 * Part of the Civilization static-recompilation execution core.
 */

import (
	"github.com/sp00nznet/civrecomp/emu/cpu"
	"github.com/sp00nznet/civrecomp/emu/ioport"
	"github.com/sp00nznet/civrecomp/emu/loader"
	"github.com/sp00nznet/civrecomp/emu/memory"
)

// Authoritative MSC startup constants (spec Design Notes, resolving
// the three-versions-of-startup.c ambiguity in the original source):
// the crt0 data-copy offset, the BSS window, and the initial stack
// pointer __astart establishes before calling main().
const (
	dsOffset  = 0x30C8
	crt0Seg   = 0x2A10
	copySize  = 0x14E9
	bssStart  = 0x64C2
	bssEnd    = 0xF7F0
	initialSP = 0xFFEE
)

// CRT state latching offsets (DS-relative). The original binary keeps
// the stack-top/stack-bottom words and the saved-DS slot at fixed
// locations crt0 itself maintains, but original_source's startup.c
// never performs this latch and carries no addresses for it — see
// DESIGN.md's Open Question note. Best effort: the three words are
// placed at the front of the (already-cleared) BSS window, matching
// where MSC crt0 conventionally keeps its own static bookkeeping
// immediately after the initialized-data block.
const (
	crtStackTopOffset    = bssStart
	crtStackBottomOffset = bssStart + 2
	crtSavedDSOffset     = bssStart + 4
)

// Entry is the translated routine standing in for the game's main().
// It receives the CPU and memory state it must run against and the
// port I/O dispatcher for any IN/OUT instructions the translator
// emitted directly (mode-13h games commonly hit the VGA DAC and PIT
// ports straight from game code rather than through INT 10h/21h);
// its return marks program completion the same way returning from
// main would.
type Entry func(c *cpu.State, mem *memory.Memory, ports *ioport.Dispatcher)

// Run performs the full crt0/__astart simulation against hdr (the
// loaded MZ header) and mem/c (the program's state as Load left it),
// then invokes entry with access to ports and marks the CPU halted on
// its return.
func Run(hdr loader.Header, mem *memory.Memory, c *cpu.State, ports *ioport.Dispatcher, entry Entry) {
	c.DS = loader.LoadSeg + dsOffset
	c.ES = c.DS
	c.SS = c.DS
	c.SP = initialSP

	copyInitData(mem, c.DS)
	clearBSS(mem, c.DS)
	latchCRTState(mem, c.DS, c.SP)

	c.BP = 0

	// Synthetic main(argc, argv, envp) parameter frame: all zero,
	// since the translator never consults argv/envp.
	c.Push16(mem, 0)
	c.Push16(mem, 0)
	c.Push16(mem, 0)

	entry(c, mem, ports)

	c.Halted = true
}

// copyInitData copies the CRT0 initialized-data block from
// (LoadSeg+crt0Seg):0 to ds:0, as crt0 does before calling main.
func copyInitData(mem *memory.Memory, ds uint16) {
	buf := make([]byte, copySize)
	mem.ReadBlock(memory.SegOff(loader.LoadSeg+crt0Seg, 0), buf)
	mem.WriteBlock(memory.SegOff(ds, 0), buf)
}

// clearBSS zeroes ds:[bssStart..bssEnd).
func clearBSS(mem *memory.Memory, ds uint16) {
	mem.Fill(memory.SegOff(ds, bssStart), bssEnd-bssStart, 0)
}

// latchCRTState writes the initial SP to the CRT's stack-top and
// stack-bottom words and stores DS at its saved-DS slot, the way
// crt0 records its own stack frame bounds before calling main.
func latchCRTState(mem *memory.Memory, ds, sp uint16) {
	mem.WriteWord(ds, crtStackTopOffset, sp)
	mem.WriteWord(ds, crtStackBottomOffset, sp)
	mem.WriteWord(ds, crtSavedDSOffset, ds)
}
